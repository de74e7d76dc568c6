package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PasswordReset represents a stored reset token. A token is valid while
// used=false and the expiry has not passed; redemption is exactly-once.
type PasswordReset struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *PasswordReset) error
	// Redeem atomically consumes a valid token and rewrites the owning
	// user's password hash in a single transaction. Returns the user id,
	// or pgx.ErrNoRows when the token is unknown, used or expired.
	Redeem(ctx context.Context, token, newPasswordHash string) (string, error)
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *PasswordReset) error {
	const query = `
        INSERT INTO password_resets (user_id, token, expires_at)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		reset.UserID,
		reset.Token,
		reset.ExpiresAt,
	).Scan(&reset.ID, &reset.CreatedAt)
}

func (r *passwordResetRepository) Redeem(ctx context.Context, token, newPasswordHash string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// The conditional update is the race arbiter: concurrent redemptions
	// of the same token see used=true and fall through to ErrNoRows.
	const consume = `
        UPDATE password_resets SET used=TRUE
        WHERE token=$1 AND used=FALSE AND expires_at > NOW()
        RETURNING user_id`
	var userID string
	if err := tx.QueryRow(ctx, consume, token).Scan(&userID); err != nil {
		return "", err
	}

	const rewrite = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := tx.Exec(ctx, rewrite, newPasswordHash, userID)
	if err != nil {
		return "", err
	}
	if cmd.RowsAffected() == 0 {
		return "", pgx.ErrNoRows
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return userID, nil
}
