package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

type fakeAccounts struct {
	byEmail map[string]models.CredentialAccount
}

func (f *fakeAccounts) FindPasswordAccount(_ context.Context, email string) (models.CredentialAccount, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return models.CredentialAccount{}, repository.ErrAccountNotFound
	}
	return account, nil
}

type fakeSessionStore struct {
	created []models.Session
	deleted [][]byte
}

func (f *fakeSessionStore) Create(_ context.Context, session models.Session) error {
	f.created = append(f.created, session)
	return nil
}

func (f *fakeSessionStore) DeleteByTokenHash(_ context.Context, tokenHash []byte) error {
	f.deleted = append(f.deleted, tokenHash)
	return nil
}

func newServiceFixture(t *testing.T, status models.UserStatus) (*Service, *fakeSessionStore) {
	t.Helper()

	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)

	users := &fakeUsers{byID: map[string]models.User{
		"u1": {ID: "u1", Email: "ops@brightpath.example", Status: status},
	}}
	accounts := &fakeAccounts{byEmail: map[string]models.CredentialAccount{
		"ops@brightpath.example": {
			ID:           "a1",
			UserID:       "u1",
			ProviderID:   models.ProviderCredential,
			AccountID:    "ops@brightpath.example",
			PasswordHash: hash,
		},
	}}
	sessions := &fakeSessionStore{}

	return NewService(users, accounts, sessions, time.Hour, zerolog.Nop()), sessions
}

func TestSignInSuccess(t *testing.T) {
	svc, sessions := newServiceFixture(t, models.UserStatusActive)

	result, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "Ops@BrightPath.example",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "u1", result.User.ID)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, "u1", sessions.created[0].UserID)
	assert.Equal(t, security.HashSessionToken(result.Token), sessions.created[0].TokenHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sessions.created[0].ExpiresAt, 5*time.Second)
}

func TestSignInWrongPassword(t *testing.T) {
	svc, sessions := newServiceFixture(t, models.UserStatusActive)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "ops@brightpath.example",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, sessions.created)
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, _ := newServiceFixture(t, models.UserStatusActive)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "nobody@brightpath.example",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInSuspendedUser(t *testing.T) {
	svc, sessions := newServiceFixture(t, models.UserStatusSuspended)

	// Indistinguishable from a wrong password, so callers cannot probe for
	// suspended accounts.
	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "ops@brightpath.example",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, sessions.created)
}

func TestSignInAfterMixedCaseCreate(t *testing.T) {
	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)

	// The admin surface and the provisioner both store NormalizeEmail(input);
	// a sign-in with any casing of the same address must land on that key.
	stored := NormalizeEmail("  Bob.Smith@Example.com ")
	users := &fakeUsers{byID: map[string]models.User{
		"u2": {ID: "u2", Email: stored, Status: models.UserStatusActive},
	}}
	accounts := &fakeAccounts{byEmail: map[string]models.CredentialAccount{
		stored: {
			ID:           "a2",
			UserID:       "u2",
			ProviderID:   models.ProviderCredential,
			AccountID:    stored,
			PasswordHash: hash,
		},
	}}
	svc := NewService(users, accounts, &fakeSessionStore{}, time.Hour, zerolog.Nop())

	result, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "Bob.Smith@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", result.User.ID)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.example", NormalizeEmail("  A@B.Example\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestSignInEmptyInput(t *testing.T) {
	svc, _ := newServiceFixture(t, models.UserStatusActive)

	_, err := svc.SignIn(context.Background(), SignInInput{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	svc, sessions := newServiceFixture(t, models.UserStatusActive)

	require.NoError(t, svc.SignOut(context.Background(), "tok"))
	require.Len(t, sessions.deleted, 1)
	assert.Equal(t, security.HashSessionToken("tok"), sessions.deleted[0])

	// Empty token is a no-op, not an error.
	require.NoError(t, svc.SignOut(context.Background(), ""))
	assert.Len(t, sessions.deleted, 1)
}
