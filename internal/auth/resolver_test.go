package auth

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

type fakeSessions struct {
	byHash map[string]models.Session
	err    error
}

func (f *fakeSessions) FindByTokenHash(_ context.Context, tokenHash []byte) (models.Session, error) {
	if f.err != nil {
		return models.Session{}, f.err
	}
	for _, session := range f.byHash {
		if bytes.Equal(session.TokenHash, tokenHash) {
			return session, nil
		}
	}
	return models.Session{}, repository.ErrSessionNotFound
}

type fakeUsers struct {
	byID map[string]models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func newResolverFixture(t *testing.T) (*StoreResolver, string) {
	t.Helper()

	token, hash, err := security.GenerateSessionToken(32)
	require.NoError(t, err)

	sessions := &fakeSessions{byHash: map[string]models.Session{
		"s1": {ID: "s1", UserID: "u1", TokenHash: hash},
	}}
	users := &fakeUsers{byID: map[string]models.User{
		"u1": {ID: "u1", Status: models.UserStatusActive},
	}}

	return NewStoreResolver(sessions, users, "bp_session"), token
}

func TestResolveSessionSuccess(t *testing.T) {
	resolver, token := newResolverFixture(t)

	session, err := resolver.ResolveSession(context.Background(), "bp_session="+token)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
	assert.Equal(t, "u1", session.UserID)
}

func TestResolveSessionExtraCookies(t *testing.T) {
	resolver, token := newResolverFixture(t)

	header := "theme=dark; bp_session=" + token + "; lang=en"
	session, err := resolver.ResolveSession(context.Background(), header)
	require.NoError(t, err)
	assert.Equal(t, "s1", session.ID)
}

func TestResolveSessionMissingCookie(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	for _, header := range []string{"", "theme=dark", "bp_session="} {
		_, err := resolver.ResolveSession(context.Background(), header)
		assert.ErrorIs(t, err, ErrNoSession, "header %q", header)
	}
}

func TestResolveSessionUnknownToken(t *testing.T) {
	resolver, _ := newResolverFixture(t)

	_, err := resolver.ResolveSession(context.Background(), "bp_session=forged")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestResolveSessionStoreError(t *testing.T) {
	sessions := &fakeSessions{err: errors.New("connection refused")}
	users := &fakeUsers{}
	resolver := NewStoreResolver(sessions, users, "bp_session")

	_, err := resolver.ResolveSession(context.Background(), "bp_session=tok")
	assert.Error(t, err)
}

func TestResolveSessionSuspendedUser(t *testing.T) {
	token, hash, err := security.GenerateSessionToken(32)
	require.NoError(t, err)

	sessions := &fakeSessions{byHash: map[string]models.Session{
		"s1": {ID: "s1", UserID: "u1", TokenHash: hash},
	}}
	users := &fakeUsers{byID: map[string]models.User{
		"u1": {ID: "u1", Status: models.UserStatusSuspended},
	}}
	resolver := NewStoreResolver(sessions, users, "bp_session")

	_, err = resolver.ResolveSession(context.Background(), "bp_session="+token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveSessionMissingUser(t *testing.T) {
	token, hash, err := security.GenerateSessionToken(32)
	require.NoError(t, err)

	sessions := &fakeSessions{byHash: map[string]models.Session{
		"s1": {ID: "s1", UserID: "gone", TokenHash: hash},
	}}
	users := &fakeUsers{byID: map[string]models.User{}}
	resolver := NewStoreResolver(sessions, users, "bp_session")

	_, err = resolver.ResolveSession(context.Background(), "bp_session="+token)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
