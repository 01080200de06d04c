package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// SubmissionRepository defines the persistence interface for contact
// submissions. It is defined here (in repository) to avoid an import cycle
// with service.
//
// Submissions are append-only: there is no update or delete.
type SubmissionRepository interface {
	Save(ctx context.Context, sub *model.ContactSubmission) error
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error)
}

// PgSubmissionRepository is the PostgreSQL implementation of SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Save inserts a new contact_submissions row and populates sub.ID and
// sub.CreatedAt from the database RETURNING clause.
func (r *PgSubmissionRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, message, source)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Message, sub.Source,
	).Scan(&sub.ID, &sub.CreatedAt)
}

// List returns submissions newest first, paginated by limit/offset.
func (r *PgSubmissionRepository) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, message, source, created_at
		 FROM contact_submissions
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}
