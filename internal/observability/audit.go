package observability

import "go.uber.org/zap"

// RequestMeta carries the caller context attached to audit events.
type RequestMeta struct {
	IP        string
	UserAgent string
	Endpoint  string
}

// Audit records security-relevant events, currently the password-reset
// trail. Every attempt is logged, success or failure.
type Audit struct {
	logger *zap.Logger
}

// NewAudit wraps a logger for audit output.
func NewAudit(logger *zap.Logger) *Audit {
	return &Audit{logger: logger.Named("audit")}
}

// PasswordResetAttempt logs a reset request or redemption outcome.
func (a *Audit) PasswordResetAttempt(meta RequestMeta, success bool, message, userID string) {
	fields := []zap.Field{
		zap.String("ip", meta.IP),
		zap.String("user_agent", meta.UserAgent),
		zap.String("endpoint", meta.Endpoint),
		zap.Bool("success", success),
		zap.String("message", message),
	}
	if userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	if success {
		a.logger.Info("password reset attempt", fields...)
	} else {
		a.logger.Warn("failed password reset attempt", fields...)
	}
}

// SuspiciousActivity flags attempts that failed for unexpected reasons.
func (a *Audit) SuspiciousActivity(meta RequestMeta, activity string, err error) {
	a.logger.Error("suspicious activity detected",
		zap.String("ip", meta.IP),
		zap.String("user_agent", meta.UserAgent),
		zap.String("endpoint", meta.Endpoint),
		zap.String("activity", activity),
		zap.Error(err),
	)
}
