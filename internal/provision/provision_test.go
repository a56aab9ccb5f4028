package provision

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

type memUsers struct {
	byEmail map[string]models.User
	creates int
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) Create(_ context.Context, user models.User) error {
	m.creates++
	m.byEmail[user.Email] = user
	return nil
}

type memAccounts struct {
	byEmail map[string]models.CredentialAccount
	creates int
}

func (m *memAccounts) Create(_ context.Context, account models.CredentialAccount) error {
	m.creates++
	m.byEmail[account.AccountID] = account
	return nil
}

func (m *memAccounts) RepairProviderID(_ context.Context, email string) (int64, error) {
	account, ok := m.byEmail[email]
	if !ok || account.ProviderID == models.ProviderCredential {
		return 0, nil
	}
	account.ProviderID = models.ProviderCredential
	m.byEmail[email] = account
	return 1, nil
}

func (m *memAccounts) UpdatePasswordHash(_ context.Context, email string, hash []byte) error {
	account, ok := m.byEmail[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = hash
	m.byEmail[email] = account
	return nil
}

func newFixture() (*Service, *memUsers, *memAccounts) {
	users := &memUsers{byEmail: map[string]models.User{}}
	accounts := &memAccounts{byEmail: map[string]models.CredentialAccount{}}
	return NewService(users, accounts, zerolog.Nop()), users, accounts
}

func TestProvisionAdminCreatesUserAndAccount(t *testing.T) {
	svc, users, accounts := newFixture()

	user, err := svc.ProvisionAdmin(context.Background(), AdminInput{
		Email:       "Admin@BrightPath.example",
		Password:    "hunter2hunter2",
		DisplayName: "Ops",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@brightpath.example", user.Email)
	assert.Equal(t, models.UserRoleAdmin, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)

	account, ok := accounts.byEmail["admin@brightpath.example"]
	require.True(t, ok, "credential account must exist after provisioning")
	assert.Equal(t, models.ProviderCredential, account.ProviderID)
	assert.Equal(t, user.ID, account.UserID)
	assert.NotEmpty(t, account.PasswordHash)

	match, err := security.VerifyPassword("hunter2hunter2", account.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)

	assert.Equal(t, 1, users.creates)
	assert.Equal(t, 1, accounts.creates)
}

func TestProvisionAdminIdempotent(t *testing.T) {
	svc, users, accounts := newFixture()

	_, err := svc.ProvisionAdmin(context.Background(), AdminInput{
		Email:    "admin@brightpath.example",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.ProvisionAdmin(context.Background(), AdminInput{
			Email:    "admin@brightpath.example",
			Password: "different-password",
		})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	}

	assert.Equal(t, 1, users.creates, "repeat runs must make no further writes")
	assert.Equal(t, 1, accounts.creates)
}

func TestProvisionAdminRejectsMissingInput(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.ProvisionAdmin(context.Background(), AdminInput{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = svc.ProvisionAdmin(context.Background(), AdminInput{Password: "x"})
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestRepairProvider(t *testing.T) {
	svc, _, accounts := newFixture()
	accounts.byEmail["admin@brightpath.example"] = models.CredentialAccount{
		ID:         "a1",
		AccountID:  "admin@brightpath.example",
		ProviderID: "credentials", // the historical bad value
	}

	affected, err := svc.RepairProvider(context.Background(), "admin@brightpath.example")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, models.ProviderCredential, accounts.byEmail["admin@brightpath.example"].ProviderID)

	// Already correct: zero rows.
	affected, err = svc.RepairProvider(context.Background(), "admin@brightpath.example")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestResetPassword(t *testing.T) {
	svc, _, accounts := newFixture()
	accounts.byEmail["admin@brightpath.example"] = models.CredentialAccount{
		ID:         "a1",
		AccountID:  "admin@brightpath.example",
		ProviderID: models.ProviderCredential,
	}

	require.NoError(t, svc.ResetPassword(context.Background(), "admin@brightpath.example", "new-password-1"))

	match, err := security.VerifyPassword("new-password-1", accounts.byEmail["admin@brightpath.example"].PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	svc, _, _ := newFixture()

	err := svc.ResetPassword(context.Background(), "ghost@brightpath.example", "whatever1")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}
