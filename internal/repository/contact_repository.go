package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"brightpath/site/internal/models"
)

var ErrContactNotFound = errors.New("contact submission not found")

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, submission models.ContactSubmission) error {
	const query = `
		INSERT INTO contact_submissions (
			id, name, email, company, message, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Company,
		submission.Message,
		submission.Status,
	)
	return err
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int) ([]models.ContactSubmission, error) {
	const query = `
		SELECT id, name, email, company, message, status, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []models.ContactSubmission
	for rows.Next() {
		var submission models.ContactSubmission
		if err := rows.Scan(
			&submission.ID,
			&submission.Name,
			&submission.Email,
			&submission.Company,
			&submission.Message,
			&submission.Status,
			&submission.CreatedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	const query = `UPDATE contact_submissions SET status = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contact_submissions WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
