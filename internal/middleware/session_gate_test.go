package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightpath/site/internal/models"
)

type fakeResolver struct {
	session models.Session
	err     error
	calls   int
	lastHdr string
}

func (f *fakeResolver) ResolveSession(_ context.Context, cookieHeader string) (models.Session, error) {
	f.calls++
	f.lastHdr = cookieHeader
	if f.err != nil {
		return models.Session{}, f.err
	}
	return f.session, nil
}

func newGatedEngine(resolver *fakeResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SessionGate("/admin", "/sign-in", resolver))
	engine.GET("/careers", func(c *gin.Context) {
		c.String(http.StatusOK, "public")
	})
	engine.GET("/admin/dashboard", func(c *gin.Context) {
		session, exists := c.Get("session")
		if !exists {
			c.String(http.StatusInternalServerError, "no session in context")
			return
		}
		c.String(http.StatusOK, session.(models.Session).UserID)
	})
	return engine
}

func TestGatePublicPathSkipsLookup(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("must not be called")}
	engine := newGatedEngine(resolver)

	req := httptest.NewRequest(http.MethodGet, "/careers", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, resolver.calls, "public path must not trigger a session lookup")
}

func TestGatePublicPathIgnoresCookie(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("must not be called")}
	engine := newGatedEngine(resolver)

	req := httptest.NewRequest(http.MethodGet, "/careers", nil)
	req.Header.Set("Cookie", "bp_session=whatever")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, resolver.calls)
}

func TestGateForwardsValidSession(t *testing.T) {
	resolver := &fakeResolver{session: models.Session{ID: "s1", UserID: "u1"}}
	engine := newGatedEngine(resolver)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Cookie", "bp_session=tok")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "bp_session=tok", resolver.lastHdr, "cookie header must be passed verbatim")
}

func TestGateRedirectsWithoutCookie(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("no session")}
	engine := newGatedEngine(resolver)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	assert.Equal(t, 1, resolver.calls)
}

func TestGateFailsClosedOnResolverError(t *testing.T) {
	for _, cause := range []error{
		errors.New("store unreachable"),
		context.DeadlineExceeded,
	} {
		resolver := &fakeResolver{err: cause}
		engine := newGatedEngine(resolver)

		req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
		req.Header.Set("Cookie", "bp_session=tok")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, "error %v must deny access", cause)
		assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	}
}

func TestGateDoesNotCacheAcrossRequests(t *testing.T) {
	resolver := &fakeResolver{session: models.Session{ID: "s1", UserID: "u1"}}
	engine := newGatedEngine(resolver)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("Cookie", "bp_session=tok")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 3, resolver.calls, "each request must re-resolve")
}
