package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AgencyFilter captures listing parameters for agency queries.
type AgencyFilter struct {
	Search *string
	Limit  int
	Offset int
}

// AgencyRepository encapsulates agency persistence.
type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	Update(ctx context.Context, agency *domain.Agency) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
	GetByName(ctx context.Context, name string) (*domain.Agency, error)
	ListWithFilter(ctx context.Context, filter AgencyFilter) ([]domain.Agency, int, error)
}

type agencyRepository struct {
	pool *pgxpool.Pool
}

// NewAgencyRepository instantiates repository.
func NewAgencyRepository(pool *pgxpool.Pool) AgencyRepository {
	return &agencyRepository{pool: pool}
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	const query = `
        INSERT INTO agencies (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		agency.Name,
		agency.Description,
	).Scan(&agency.ID, &agency.CreatedAt, &agency.UpdatedAt)
}

func (r *agencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	const query = `
        UPDATE agencies SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, agency.Name, agency.Description, agency.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agencyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM agencies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM agencies WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *agencyRepository) GetByName(ctx context.Context, name string) (*domain.Agency, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM agencies WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *agencyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Agency, error) {
	var agency domain.Agency
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&agency.ID,
		&agency.Name,
		&agency.Description,
		&agency.CreatedAt,
		&agency.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *agencyRepository) ListWithFilter(ctx context.Context, filter AgencyFilter) ([]domain.Agency, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agencies WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, description, created_at, updated_at FROM agencies WHERE ` + where + ` ORDER BY name`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	agencies := []domain.Agency{}
	for rows.Next() {
		var agency domain.Agency
		if err := rows.Scan(
			&agency.ID,
			&agency.Name,
			&agency.Description,
			&agency.CreatedAt,
			&agency.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		agencies = append(agencies, agency)
	}
	return agencies, total, rows.Err()
}
