package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"brightpath/site/internal/ids"
	"brightpath/site/internal/models"
	"brightpath/site/internal/repository"
	"brightpath/site/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// NormalizeEmail lowers and trims an address. Every write to the credential
// store and every lookup against it must go through this, or a mixed-case
// signup can never be signed in to.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

type AccountSource interface {
	FindPasswordAccount(ctx context.Context, email string) (models.CredentialAccount, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	DeleteByTokenHash(ctx context.Context, tokenHash []byte) error
}

// Service owns the sign-in and sign-out flows around the credential store.
type Service struct {
	users      UserSource
	accounts   AccountSource
	sessions   SessionStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewService(users UserSource, accounts AccountSource, sessions SessionStore, sessionTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		users:      users,
		accounts:   accounts,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

type SignInInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.User
}

func (s *Service) SignIn(ctx context.Context, input SignInInput) (SignInResult, error) {
	input.Email = NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return SignInResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.FindPasswordAccount(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil || !ok {
		return SignInResult{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, account.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, err
	}
	if user.Status != models.UserStatusActive {
		// Same answer as a wrong password: the caller must not learn that the
		// account exists but is suspended.
		s.log.Warn().Str("user_id", user.ID).Msg("sign-in rejected for inactive user")
		return SignInResult{}, ErrInvalidCredentials
	}

	token, tokenHash, err := security.GenerateSessionToken(48)
	if err != nil {
		return SignInResult{}, err
	}

	session := models.Session{
		ID:        ids.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return SignInResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed in")

	return SignInResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByTokenHash(ctx, security.HashSessionToken(token))
}
