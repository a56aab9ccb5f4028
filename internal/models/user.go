package models

import "time"

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// ProviderCredential is the provider id the password sign-in flow expects on a
// credential account. Accounts recorded with any other value cannot sign in.
const ProviderCredential = "credential"

type User struct {
	ID            string
	Email         string
	DisplayName   string
	EmailVerified bool
	Role          UserRole
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CredentialAccount binds a user to one authentication provider and holds the
// secret material for it. For the password provider there is exactly one
// account per user and PasswordHash is non-null.
type CredentialAccount struct {
	ID           string
	UserID       string
	ProviderID   string
	AccountID    string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    string
	TokenHash []byte
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
}
