package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightpath/site/internal/models"
)

var ErrAccountNotFound = errors.New("credential account not found")

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account models.CredentialAccount) error {
	const query = `
		INSERT INTO credential_accounts (
			id, user_id, provider_id, account_id, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.ProviderID,
		account.AccountID,
		account.PasswordHash,
	)
	return err
}

// FindPasswordAccount returns the password-provider account for an email.
func (r *AccountRepository) FindPasswordAccount(ctx context.Context, email string) (models.CredentialAccount, error) {
	const query = `
		SELECT id, user_id, provider_id, account_id, password_hash, created_at, updated_at
		FROM credential_accounts
		WHERE account_id = $1 AND provider_id = $2
	`

	row := r.pool.QueryRow(ctx, query, email, models.ProviderCredential)
	var account models.CredentialAccount
	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.ProviderID,
		&account.AccountID,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CredentialAccount{}, ErrAccountNotFound
		}
		return models.CredentialAccount{}, err
	}
	return account, nil
}

// RepairProviderID forces the provider id for an email's account to the
// password-provider constant. Returns the number of rows changed so operators
// can see whether the repair did anything.
func (r *AccountRepository) RepairProviderID(ctx context.Context, email string) (int64, error) {
	const query = `
		UPDATE credential_accounts
		SET provider_id = $2, updated_at = NOW()
		WHERE account_id = $1 AND provider_id != $2
	`
	cmd, err := r.pool.Exec(ctx, query, email, models.ProviderCredential)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, email string, hash []byte) error {
	const query = `
		UPDATE credential_accounts
		SET password_hash = $2, updated_at = NOW()
		WHERE account_id = $1 AND provider_id = $3
	`
	cmd, err := r.pool.Exec(ctx, query, email, hash, models.ProviderCredential)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) CountByUser(ctx context.Context, userID string, providerID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM credential_accounts WHERE user_id = $1 AND provider_id = $2
	`
	row := r.pool.QueryRow(ctx, query, userID, providerID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
