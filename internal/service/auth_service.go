package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/mail"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const minPasswordLength = 8

// AuthService coordinates registration, login and the password-reset
// workflow.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	mailer     mail.Sender
	audit      *observability.Audit
	logger     *zap.Logger
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Mailer            mail.Sender
	Audit             *observability.Audit
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		mailer:     deps.Mailer,
		audit:      deps.Audit,
		logger:     deps.Logger,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates a new account. The role defaults to CITIZEN; the
// plaintext password is never stored.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role domain.UserRole) (*domain.User, string, time.Time, error) {
	if role == "" {
		role = domain.RoleCitizen
	}
	if !role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. Unknown email and wrong password produce
// the identical error, to avoid account enumeration over this path.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Profile returns the account for the authenticated caller.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset issues a single-use, time-boxed reset token and
// emails it. An unknown email is deliberately silent towards the caller;
// a failed email dispatch is not.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string, meta observability.RequestMeta) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.audit.PasswordResetAttempt(meta, false, "password reset requested for non-existent email", "")
			return nil
		}
		s.audit.SuspiciousActivity(meta, "password reset lookup failed", err)
		return apperrors.NewInternalError(err)
	}

	token, err := generateResetToken()
	if err != nil {
		s.audit.SuspiciousActivity(meta, "reset token generation failed", err)
		return apperrors.NewInternalError(err)
	}

	reset := &repository.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		s.audit.SuspiciousActivity(meta, "reset token persistence failed", err)
		return apperrors.NewInternalError(err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		s.audit.PasswordResetAttempt(meta, false, "failed to send reset email", user.ID)
		return apperrors.NewDomainError("INTERNAL_ERROR", "unable to send password reset email", http.StatusInternalServerError, nil)
	}

	s.audit.PasswordResetAttempt(meta, true, "password reset email sent", user.ID)
	return nil
}

// ResetPassword redeems a reset token. The token consumption and the
// password rewrite commit atomically; a second redemption of the same
// token observes an invalid token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string, meta observability.RequestMeta) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	userID, err := s.resets.Redeem(ctx, token, hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.audit.PasswordResetAttempt(meta, false, "invalid or expired reset token", "")
			return apperrors.NewInvalidResetToken()
		}
		s.audit.SuspiciousActivity(meta, "reset token redemption failed", err)
		return apperrors.NewInternalError(err)
	}

	s.audit.PasswordResetAttempt(meta, true, "password reset successful", userID)
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
