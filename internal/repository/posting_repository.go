package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightpath/site/internal/models"
)

var ErrPostingNotFound = errors.New("job posting not found")

type PostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

const postingColumns = `
	id, title, slug, department, location, employment_type, description,
	status, closes_at, created_at, updated_at
`

func (r *PostingRepository) Create(ctx context.Context, posting models.JobPosting) error {
	const query = `
		INSERT INTO job_postings (
			id, title, slug, department, location, employment_type, description,
			status, closes_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		posting.ID,
		posting.Title,
		posting.Slug,
		posting.Department,
		posting.Location,
		posting.EmploymentType,
		posting.Description,
		posting.Status,
		posting.ClosesAt,
	)
	return err
}

func (r *PostingRepository) Update(ctx context.Context, posting models.JobPosting) error {
	const query = `
		UPDATE job_postings
		SET title = $2, slug = $3, department = $4, location = $5,
		    employment_type = $6, description = $7, status = $8, closes_at = $9,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		posting.ID,
		posting.Title,
		posting.Slug,
		posting.Department,
		posting.Location,
		posting.EmploymentType,
		posting.Description,
		posting.Status,
		posting.ClosesAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostingNotFound
	}
	return nil
}

func (r *PostingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM job_postings WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPostingNotFound
	}
	return nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id string) (models.JobPosting, error) {
	const query = `SELECT` + postingColumns + `FROM job_postings WHERE id = $1`
	return scanPosting(r.pool.QueryRow(ctx, query, id))
}

func (r *PostingRepository) GetBySlug(ctx context.Context, slug string) (models.JobPosting, error) {
	const query = `SELECT` + postingColumns + `FROM job_postings WHERE slug = $1`
	return scanPosting(r.pool.QueryRow(ctx, query, slug))
}

func (r *PostingRepository) List(ctx context.Context, onlyActive bool) ([]models.JobPosting, error) {
	query := `SELECT` + postingColumns + `FROM job_postings ORDER BY created_at DESC`
	if onlyActive {
		query = `SELECT` + postingColumns + `FROM job_postings WHERE status = 'active' ORDER BY created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		var posting models.JobPosting
		if err := rows.Scan(
			&posting.ID,
			&posting.Title,
			&posting.Slug,
			&posting.Department,
			&posting.Location,
			&posting.EmploymentType,
			&posting.Description,
			&posting.Status,
			&posting.ClosesAt,
			&posting.CreatedAt,
			&posting.UpdatedAt,
		); err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}
	return postings, rows.Err()
}

// CloseExpired deactivates postings whose closing date has passed.
func (r *PostingRepository) CloseExpired(ctx context.Context) (int64, error) {
	const query = `
		UPDATE job_postings
		SET status = 'inactive', updated_at = NOW()
		WHERE status = 'active' AND closes_at IS NOT NULL AND closes_at <= NOW()
	`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanPosting(row pgx.Row) (models.JobPosting, error) {
	var posting models.JobPosting
	if err := row.Scan(
		&posting.ID,
		&posting.Title,
		&posting.Slug,
		&posting.Department,
		&posting.Location,
		&posting.EmploymentType,
		&posting.Description,
		&posting.Status,
		&posting.ClosesAt,
		&posting.CreatedAt,
		&posting.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.JobPosting{}, ErrPostingNotFound
		}
		return models.JobPosting{}, err
	}
	return posting, nil
}
