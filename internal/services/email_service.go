package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"

	"memberhub/internal/models"
)

type EmailService interface {
	SendOTP(ctx context.Context, to, code string, purpose models.OTPPurpose, ttl time.Duration) error
	SendAdminApproved(ctx context.Context, to, username, organization string) error
	SendAdminRejected(ctx context.Context, to, reason string) error
	SendMemberStatus(ctx context.Context, to, membershipID string, status models.MemberStatus) error
}

type emailService struct {
	from string
	send func(m *gomail.Message) error
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		from: fromEmail,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// newEmailServiceWithSender is used by tests to capture outgoing mail.
func newEmailServiceWithSender(from string, s gomail.Sender) *emailService {
	return &emailService{
		from: from,
		send: func(m *gomail.Message) error { return gomail.Send(s, m) },
	}
}

// deliver runs the SMTP exchange but gives up when ctx is done.
func (s *emailService) deliver(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- s.send(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *emailService) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func purposeTitle(p models.OTPPurpose) string {
	switch p {
	case models.PurposeAdminRegistration:
		return "admin registration"
	case models.PurposeMemberRegistration:
		return "membership registration"
	case models.PurposeMemberLogin:
		return "sign-in"
	}
	return "verification"
}

func (s *emailService) SendOTP(ctx context.Context, to, code string, purpose models.OTPPurpose, ttl time.Duration) error {
	body := fmt.Sprintf(`
		<h3>Your %s code</h3>
		<p>Use this code to continue: <strong>%s</strong></p>
		<p>It expires in %d minutes and can be used once.</p>
		<p>If you did not request it, you can ignore this email.</p>
	`, purposeTitle(purpose), code, int(ttl.Minutes()))

	if err := s.deliver(ctx, s.message(to, "Your verification code", body)); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *emailService) SendAdminApproved(ctx context.Context, to, username, organization string) error {
	body := fmt.Sprintf(`
		<h3>Your admin account is ready</h3>
		<p>Your request to administer <strong>%s</strong> was approved.</p>
		<p>Sign in with the username you chose: <strong>%s</strong> and your password.</p>
	`, html.EscapeString(organization), html.EscapeString(username))

	if err := s.deliver(ctx, s.message(to, "Admin request approved", body)); err != nil {
		return fmt.Errorf("failed to send approval email: %w", err)
	}
	return nil
}

func (s *emailService) SendAdminRejected(ctx context.Context, to, reason string) error {
	if reason == "" {
		reason = "No reason was given."
	}
	body := fmt.Sprintf(`
		<h3>Your admin request was not approved</h3>
		<p>%s</p>
	`, html.EscapeString(reason))

	if err := s.deliver(ctx, s.message(to, "Admin request rejected", body)); err != nil {
		return fmt.Errorf("failed to send rejection email: %w", err)
	}
	return nil
}

func (s *emailService) SendMemberStatus(ctx context.Context, to, membershipID string, status models.MemberStatus) error {
	body := fmt.Sprintf(`
		<h3>Membership update</h3>
		<p>Your membership <strong>%s</strong> is now <strong>%s</strong>.</p>
	`, html.EscapeString(membershipID), status)

	if err := s.deliver(ctx, s.message(to, "Membership "+string(status), body)); err != nil {
		return fmt.Errorf("failed to send membership email: %w", err)
	}
	return nil
}
