package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"brightpath/site/internal/auth"
)

// SessionGate guards every path under protectedPrefix. The request's Cookie
// header is handed verbatim to the resolver; a resolved session lets the
// request through with the session attached to the context, anything else,
// including resolver errors, redirects to the sign-in page. The gate fails
// closed: an unreachable store denies access, it never grants it. Requests
// outside the prefix pass through without a lookup.
func SessionGate(protectedPrefix string, signInPath string, resolver auth.SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, protectedPrefix) {
			c.Next()
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), c.GetHeader("Cookie"))
		if err != nil {
			c.Redirect(http.StatusSeeOther, signInPath)
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Next()
	}
}
