package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightpath/site/internal/models"
)

var ErrApplicationNotFound = errors.New("career application not found")

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(ctx context.Context, application models.CareerApplication) error {
	const query = `
		INSERT INTO career_applications (
			id, posting_id, name, email, phone, cover_note,
			resume_bucket, resume_key, resume_format, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		application.ID,
		application.PostingID,
		application.Name,
		application.Email,
		application.Phone,
		application.CoverNote,
		application.ResumeBucket,
		application.ResumeKey,
		application.ResumeFormat,
		application.Status,
	)
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (models.CareerApplication, error) {
	const query = `
		SELECT id, posting_id, name, email, phone, cover_note,
		       resume_bucket, resume_key, resume_format, status, created_at
		FROM career_applications
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var application models.CareerApplication
	if err := row.Scan(
		&application.ID,
		&application.PostingID,
		&application.Name,
		&application.Email,
		&application.Phone,
		&application.CoverNote,
		&application.ResumeBucket,
		&application.ResumeKey,
		&application.ResumeFormat,
		&application.Status,
		&application.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CareerApplication{}, ErrApplicationNotFound
		}
		return models.CareerApplication{}, err
	}
	return application, nil
}

func (r *ApplicationRepository) List(ctx context.Context, limit, offset int) ([]models.CareerApplication, error) {
	const query = `
		SELECT id, posting_id, name, email, phone, cover_note,
		       resume_bucket, resume_key, resume_format, status, created_at
		FROM career_applications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []models.CareerApplication
	for rows.Next() {
		var application models.CareerApplication
		if err := rows.Scan(
			&application.ID,
			&application.PostingID,
			&application.Name,
			&application.Email,
			&application.Phone,
			&application.CoverNote,
			&application.ResumeBucket,
			&application.ResumeKey,
			&application.ResumeFormat,
			&application.Status,
			&application.CreatedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	const query = `UPDATE career_applications SET status = $2 WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM career_applications WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
