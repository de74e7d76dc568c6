package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintFilter captures search parameters. Role scoping is expressed
// through UserID/AgencyID set by the service layer.
type ComplaintFilter struct {
	UserID     *string
	AgencyID   *string
	CategoryID *string
	Status     *domain.ComplaintStatus
	Priority   *domain.ComplaintPriority
	Search     *string
	Limit      int
	Offset     int
}

// ComplaintRecord is a complaint row joined with its reference summaries.
type ComplaintRecord struct {
	domain.Complaint
	Category domain.CategorySummary
	Agency   domain.AgencySummary
	Creator  domain.UserSummary
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	GetRecord(ctx context.Context, id string) (*ComplaintRecord, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]ComplaintRecord, int, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (title, description, category_id, agency_id, user_id, status, priority, location, contact_phone, contact_email)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.CategoryID,
		complaint.AgencyID,
		complaint.UserID,
		complaint.Status,
		complaint.Priority,
		complaint.Location,
		complaint.ContactPhone,
		complaint.ContactEmail,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET title=$1, description=$2, category_id=$3, status=$4, priority=$5,
            location=$6, contact_phone=$7, contact_email=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.CategoryID,
		complaint.Status,
		complaint.Priority,
		complaint.Location,
		complaint.ContactPhone,
		complaint.ContactEmail,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `
        SELECT id, title, description, category_id, agency_id, user_id, status, priority,
               location, contact_phone, contact_email, created_at, updated_at
        FROM complaints WHERE id=$1`
	var c domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.CategoryID,
		&c.AgencyID,
		&c.UserID,
		&c.Status,
		&c.Priority,
		&c.Location,
		&c.ContactPhone,
		&c.ContactEmail,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

const recordSelect = `
    SELECT c.id, c.title, c.description, c.category_id, c.agency_id, c.user_id, c.status, c.priority,
           c.location, c.contact_phone, c.contact_email, c.created_at, c.updated_at,
           cat.name, ag.name, u.name, u.email
    FROM complaints c
    JOIN categories cat ON cat.id = c.category_id
    JOIN agencies ag ON ag.id = c.agency_id
    JOIN users u ON u.id = c.user_id`

func scanRecord(row pgx.Row) (*ComplaintRecord, error) {
	var rec ComplaintRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.CategoryID,
		&rec.AgencyID,
		&rec.UserID,
		&rec.Status,
		&rec.Priority,
		&rec.Location,
		&rec.ContactPhone,
		&rec.ContactEmail,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.Category.Name,
		&rec.Agency.Name,
		&rec.Creator.Name,
		&rec.Creator.Email,
	); err != nil {
		return nil, err
	}
	rec.Category.ID = rec.CategoryID
	rec.Agency.ID = rec.AgencyID
	rec.Creator.ID = rec.UserID
	return &rec, nil
}

func (r *complaintRepository) GetRecord(ctx context.Context, id string) (*ComplaintRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx, recordSelect+` WHERE c.id=$1`, id))
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]ComplaintRecord, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("c.user_id=$%d", len(args)))
	}
	if filter.AgencyID != nil {
		args = append(args, *filter.AgencyID)
		clauses = append(clauses, fmt.Sprintf("c.agency_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("c.category_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("c.status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("c.priority=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
		clauses = append(clauses, fmt.Sprintf("(LOWER(c.title) LIKE $%d OR LOWER(c.description) LIKE $%d)", len(args), len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints c WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := recordSelect + ` WHERE ` + where + ` ORDER BY c.created_at DESC`
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

	records := []ComplaintRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, total, rows.Err()
}
