package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ResponseRepository manages the append-only comment thread of complaints.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository constructs repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO responses (complaint_id, user_id, content)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		response.ComplaintID,
		response.UserID,
		response.Content,
	).Scan(&response.ID, &response.CreatedAt)
}

// ListByComplaint returns the thread newest first, author summary included.
func (r *responseRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Response, error) {
	const query = `
        SELECT r.id, r.complaint_id, r.user_id, r.content, r.created_at, u.name, u.role
        FROM responses r
        JOIN users u ON u.id = r.user_id
        WHERE r.complaint_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []domain.Response{}
	for rows.Next() {
		var resp domain.Response
		var author domain.UserSummary
		if err := rows.Scan(
			&resp.ID,
			&resp.ComplaintID,
			&resp.UserID,
			&resp.Content,
			&resp.CreatedAt,
			&author.Name,
			&author.Role,
		); err != nil {
			return nil, err
		}
		author.ID = resp.UserID
		resp.Author = &author
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
