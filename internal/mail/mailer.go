package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/spec-kit/complaint-service/internal/config"
)

// Sender delivers HTML email. Satisfied by Mailer; services depend on the
// interface so tests can substitute a fake.
type Sender interface {
	Send(to, subject, htmlBody string) error
	SendPasswordReset(to, token string) error
	SendStatusUpdate(to, complaintTitle, newStatus string) error
}

// Mailer sends mail over SMTP. Built once at startup and shared; the
// dialer itself opens a connection per send.
type Mailer struct {
	cfg         config.MailConfig
	frontendURL string
	dialer      *gomail.Dialer
}

// NewMailer constructs the mailer from config.
func NewMailer(cfg config.MailConfig, frontendURL string) *Mailer {
	return &Mailer{
		cfg:         cfg,
		frontendURL: frontendURL,
		dialer:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// Send delivers a single HTML message.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// SendPasswordReset emails a reset link embedding the token.
func (m *Mailer) SendPasswordReset(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
        <h2>Reset Your Password</h2>
        <p>We received a request to reset your password. Click the link below to choose a new one:</p>
        <p><a href="%s">Reset Password</a></p>
        <p>This link expires in one hour. If you did not request a reset, you can ignore this email.</p>`,
		resetURL)
	return m.Send(to, "Reset Your Password", body)
}

// SendStatusUpdate notifies a complaint creator about a status change.
func (m *Mailer) SendStatusUpdate(to, complaintTitle, newStatus string) error {
	body := fmt.Sprintf(`
        <h2>Complaint Update</h2>
        <p>The status of your complaint "%s" changed to <strong>%s</strong>.</p>`,
		complaintTitle, newStatus)
	return m.Send(to, "Your complaint was updated", body)
}
