package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/observability"
)

type authFixture struct {
	service *AuthService
	users   *fakeUserRepo
	resets  *fakeResetRepo
	mailer  *fakeMailer
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	resets := newFakeResetRepo(users)
	mailer := &fakeMailer{}
	logger := zap.NewNop()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLHours:     24,
			PasswordResetTTLMinutes: 60,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	service := NewAuthService(cfg, AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: resets,
		Mailer:            mailer,
		Audit:             observability.NewAudit(logger),
		Logger:            logger,
	})
	return &authFixture{service: service, users: users, resets: resets, mailer: mailer}
}

func noMeta() observability.RequestMeta {
	return observability.RequestMeta{IP: "203.0.113.7", UserAgent: "test", Endpoint: "/api/auth"}
}

func TestRegister(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	user, token, expiresAt, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, user.Role, "role defaults to CITIZEN")
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	claims, err := fx.service.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)

	_, _, _, err = fx.service.Register(ctx, "ada@example.com", "different-pass", "Ada Again", "")
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestRegister_InvalidRole(t *testing.T) {
	fx := newAuthFixture()

	_, _, _, err := fx.service.Register(context.Background(), "x@example.com", "hunter2hunter2", "X", domain.UserRole("OVERLORD"))
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestLogin(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	registered, _, _, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)

	user, token, _, err := fx.service.Login(ctx, "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)

	_, _, _, unknownErr := fx.service.Login(ctx, "nobody@example.com", "hunter2hunter2")
	_, _, _, wrongErr := fx.service.Login(ctx, "ada@example.com", "wrong-password")

	// Same code and message for unknown email and wrong password, so the
	// login path leaks no account existence signal.
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, unknownErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestRequestPasswordReset(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)

	require.NoError(t, fx.service.RequestPasswordReset(ctx, "ada@example.com", noMeta()))
	require.Len(t, fx.mailer.resetSends, 1)

	token := fx.mailer.resetSends[0]
	assert.Len(t, token, 64, "32 random bytes, hex encoded")
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.RequestPasswordReset(context.Background(), "ghost@example.com", noMeta())
	assert.NoError(t, err)
	assert.Empty(t, fx.mailer.resetSends)
}

func TestRequestPasswordReset_MailFailureSurfaces(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada", "")
	require.NoError(t, err)

	fx.mailer.failNext = true
	err = fx.service.RequestPasswordReset(ctx, "ada@example.com", noMeta())
	assert.Equal(t, "INTERNAL_ERROR", domainCode(t, err))
}

func TestResetPassword(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "old-password-1", "Ada", "")
	require.NoError(t, err)
	require.NoError(t, fx.service.RequestPasswordReset(ctx, "ada@example.com", noMeta()))
	token := fx.mailer.resetSends[0]

	require.NoError(t, fx.service.ResetPassword(ctx, token, "new-password-1", noMeta()))

	_, _, _, err = fx.service.Login(ctx, "ada@example.com", "new-password-1")
	assert.NoError(t, err)
	_, _, _, err = fx.service.Login(ctx, "ada@example.com", "old-password-1")
	assert.Error(t, err)

	// Single use: the same token cannot be redeemed twice.
	err = fx.service.ResetPassword(ctx, token, "another-pass-1", noMeta())
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", domainCode(t, err))
}

func TestResetPassword_ShortPassword(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.ResetPassword(context.Background(), "whatever", "short", noMeta())
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := fx.service.Register(ctx, "ada@example.com", "old-password-1", "Ada", "")
	require.NoError(t, err)
	require.NoError(t, fx.service.RequestPasswordReset(ctx, "ada@example.com", noMeta()))
	token := fx.mailer.resetSends[0]

	fx.resets.resets[token].ExpiresAt = time.Now().Add(-time.Minute)

	err = fx.service.ResetPassword(ctx, token, "new-password-1", noMeta())
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", domainCode(t, err))
}

func TestResetPassword_UnknownToken(t *testing.T) {
	fx := newAuthFixture()

	err := fx.service.ResetPassword(context.Background(), "deadbeef", "new-password-1", noMeta())
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", domainCode(t, err))
}
