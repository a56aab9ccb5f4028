package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"brightpath/site/internal/auth"
	"brightpath/site/internal/ids"
	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

// ErrAlreadyExists reports that provisioning was refused because the email is
// taken. Re-running the provisioner is expected to hit this.
var ErrAlreadyExists = errors.New("user already exists")

var ErrMissingInput = errors.New("email and password required")

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user models.User) error
}

type AccountStore interface {
	Create(ctx context.Context, account models.CredentialAccount) error
	RepairProviderID(ctx context.Context, email string) (int64, error)
	UpdatePasswordHash(ctx context.Context, email string, hash []byte) error
}

// Service holds the operator-invoked credential procedures: one-shot admin
// provisioning plus the repair and reset utilities.
type Service struct {
	users    UserStore
	accounts AccountStore
	log      zerolog.Logger
}

func NewService(users UserStore, accounts AccountStore, log zerolog.Logger) *Service {
	return &Service{
		users:    users,
		accounts: accounts,
		log:      log,
	}
}

type AdminInput struct {
	Email       string
	Password    string
	DisplayName string
}

// ProvisionAdmin creates an admin user with a password-provider credential
// account. It refuses if the email already exists, so repeated runs after the
// first success make no further writes.
func (s *Service) ProvisionAdmin(ctx context.Context, input AdminInput) (models.User, error) {
	email := auth.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return models.User{}, ErrMissingInput
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = "Site Admin"
	}

	user := models.User{
		ID:            ids.New(),
		Email:         email,
		DisplayName:   displayName,
		EmailVerified: true,
		Role:          models.UserRoleAdmin,
		Status:        models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	account := models.CredentialAccount{
		ID:           ids.New(),
		UserID:       user.ID,
		ProviderID:   models.ProviderCredential,
		AccountID:    email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return models.User{}, fmt.Errorf("create credential account: %w", err)
	}

	s.log.Info().Str("email", email).Msg("admin provisioned")
	return user, nil
}

// RepairProvider forces the credential account for email back to the password
// provider id. Returns the number of rows changed: 1 when a bad value was
// fixed, 0 when the account was already correct.
func (s *Service) RepairProvider(ctx context.Context, email string) (int64, error) {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return 0, ErrMissingInput
	}

	affected, err := s.accounts.RepairProviderID(ctx, email)
	if err != nil {
		return 0, err
	}

	s.log.Info().Str("email", email).Int64("rows", affected).Msg("provider id repair")
	return affected, nil
}

// ResetPassword rehashes and replaces the stored password for email's
// password-provider account.
func (s *Service) ResetPassword(ctx context.Context, email string, password string) error {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return ErrMissingInput
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePasswordHash(ctx, email, hash); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("password reset")
	return nil
}
