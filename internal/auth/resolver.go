package auth

import (
	"context"
	"errors"
	"net/http"

	"brightpath/site/internal/models"
	"brightpath/site/internal/security"
)

// ErrNoSession is returned when a cookie header does not resolve to a live
// session for an active user.
var ErrNoSession = errors.New("no session")

// SessionResolver resolves a raw Cookie header to a session or nothing. The
// gate treats the backend as opaque: cookie format, token scheme and storage
// all live behind this interface.
type SessionResolver interface {
	ResolveSession(ctx context.Context, cookieHeader string) (models.Session, error)
}

type SessionSource interface {
	FindByTokenHash(ctx context.Context, tokenHash []byte) (models.Session, error)
}

type UserSource interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

// StoreResolver resolves sessions against the credential store: it parses the
// session cookie, hashes the token and looks up a non-expired session row
// belonging to an active user.
type StoreResolver struct {
	sessions   SessionSource
	users      UserSource
	cookieName string
}

func NewStoreResolver(sessions SessionSource, users UserSource, cookieName string) *StoreResolver {
	return &StoreResolver{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
	}
}

func (r *StoreResolver) ResolveSession(ctx context.Context, cookieHeader string) (models.Session, error) {
	token := readCookie(cookieHeader, r.cookieName)
	if token == "" {
		return models.Session{}, ErrNoSession
	}

	session, err := r.sessions.FindByTokenHash(ctx, security.HashSessionToken(token))
	if err != nil {
		return models.Session{}, err
	}

	user, err := r.users.GetByID(ctx, session.UserID)
	if err != nil {
		return models.Session{}, err
	}
	if user.Status != models.UserStatusActive {
		return models.Session{}, ErrNoSession
	}

	return session, nil
}

func readCookie(cookieHeader string, name string) string {
	if cookieHeader == "" {
		return ""
	}
	request := http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
