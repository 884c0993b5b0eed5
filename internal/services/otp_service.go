package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"memberhub/internal/models"
	"memberhub/internal/repositories"
	"memberhub/internal/utils"
)

// SMSSender is the phone transport. The Mobizon client in dry-run mode only logs.
type SMSSender interface {
	SendSMS(ctx context.Context, to, text string) error
}

type OTPService interface {
	Issue(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose) error
	Verify(ctx context.Context, contact, code string, channel models.OTPChannel, purpose models.OTPPurpose) error
}

type OTPOptions struct {
	TTL         time.Duration
	MaxAttempts int
	MaxSends    int
	SendWindow  time.Duration
}

func (o OTPOptions) withDefaults() OTPOptions {
	if o.TTL <= 0 {
		o.TTL = 10 * time.Minute
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.MaxSends <= 0 {
		o.MaxSends = 3
	}
	if o.SendWindow <= 0 {
		o.SendWindow = 10 * time.Minute
	}
	return o
}

type otpService struct {
	repo  repositories.OTPRepository
	email EmailService
	sms   SMSSender
	opts  OTPOptions
	now   func() time.Time
}

func NewOTPService(repo repositories.OTPRepository, email EmailService, sms SMSSender, opts OTPOptions) OTPService {
	return &otpService{
		repo:  repo,
		email: email,
		sms:   sms,
		opts:  opts.withDefaults(),
		now:   time.Now,
	}
}

// GenerateCode returns a 6-digit code uniform over [100000, 999999].
func GenerateCode() (string, error) {
	return utils.RandomDigits(6)
}

// NormalizeContact trims and validates a contact for its channel.
// Emails are lower-cased; phones lose spaces, dashes and parentheses.
func NormalizeContact(channel models.OTPChannel, contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	switch channel {
	case models.ChannelEmail:
		if contact == "" {
			return "", required("email")
		}
		addr, err := mail.ParseAddress(contact)
		if err != nil || addr.Address != contact {
			return "", &FieldError{Field: "email", Reason: "is not a valid email address"}
		}
		return strings.ToLower(contact), nil
	case models.ChannelPhone:
		p := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(contact)
		if p == "" {
			return "", required("phone")
		}
		digits := strings.TrimPrefix(p, "+")
		if len(digits) < 7 || len(digits) > 15 || strings.Trim(digits, "0123456789") != "" {
			return "", &FieldError{Field: "phone", Reason: "is not a valid phone number"}
		}
		return p, nil
	}
	return "", &FieldError{Field: "verificationType", Reason: "must be email or phone"}
}

// Issue stores a fresh code and then dispatches it. The row is written first, so
// a transport failure leaves a valid code behind and surfaces as ErrDependency.
func (s *otpService) Issue(ctx context.Context, contact string, channel models.OTPChannel, purpose models.OTPPurpose) error {
	if !channel.Valid() {
		return &FieldError{Field: "verificationType", Reason: "must be email or phone"}
	}
	if purpose == "" {
		return required("purpose")
	}
	contact, err := NormalizeContact(channel, contact)
	if err != nil {
		return err
	}

	now := s.now()
	cnt, err := s.repo.CountRecentSends(ctx, contact, purpose, now.Add(-s.opts.SendWindow))
	if err != nil {
		return dependency("otp throttle", err)
	}
	if cnt >= s.opts.MaxSends {
		return ErrResendThrottled
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt generate: %w", err)
	}

	entry := &models.OTPEntry{
		Contact:   contact,
		Channel:   channel,
		Purpose:   purpose,
		CodeHash:  string(hash),
		ExpiresAt: now.Add(s.opts.TTL),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return dependency("otp store", err)
	}

	switch channel {
	case models.ChannelEmail:
		err = s.email.SendOTP(ctx, contact, code, purpose, s.opts.TTL)
	case models.ChannelPhone:
		err = s.sms.SendSMS(ctx, contact, fmt.Sprintf("Verification code: %s", code))
	}
	if err != nil {
		slog.ErrorContext(ctx, "[otp][issue] dispatch failed", "otp_id", entry.ID, "channel", channel, "purpose", purpose, "contact", maskContact(channel, contact), "err", err)
		return dependency("otp dispatch", err)
	}

	slog.InfoContext(ctx, "[otp][issue] sent", "otp_id", entry.ID, "channel", channel, "purpose", purpose, "contact", maskContact(channel, contact))
	return nil
}

// Verify succeeds iff some unused, unexpired code for exactly (contact, channel,
// purpose) matches; that code is consumed. Failed guesses count against every
// active code and, past the limit, expire them all.
func (s *otpService) Verify(ctx context.Context, contact, code string, channel models.OTPChannel, purpose models.OTPPurpose) error {
	if !channel.Valid() {
		return &FieldError{Field: "verificationType", Reason: "must be email or phone"}
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return required("otp")
	}
	contact, err := NormalizeContact(channel, contact)
	if err != nil {
		return err
	}

	now := s.now()
	entries, err := s.repo.ListActive(ctx, contact, channel, purpose, now)
	if err != nil {
		return dependency("otp lookup", err)
	}

	for _, e := range entries {
		if e.Expired(now) || e.Attempts >= s.opts.MaxAttempts {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(e.CodeHash), []byte(code)) != nil {
			continue
		}
		ok, err := s.repo.MarkUsed(ctx, e.ID)
		if err != nil {
			return dependency("otp consume", err)
		}
		if !ok {
			// consumed concurrently
			return ErrInvalidOrExpiredOTP
		}
		slog.InfoContext(ctx, "[otp][verify] ok", "otp_id", e.ID, "channel", channel, "purpose", purpose, "contact", maskContact(channel, contact))
		return nil
	}

	if len(entries) == 0 {
		return ErrInvalidOrExpiredOTP
	}
	attempts, err := s.repo.RegisterFailure(ctx, contact, channel, purpose, now)
	if err != nil {
		return dependency("otp attempts", err)
	}
	if attempts >= s.opts.MaxAttempts {
		if err := s.repo.ExpireActive(ctx, contact, channel, purpose, now); err != nil {
			return dependency("otp expire", err)
		}
		slog.WarnContext(ctx, "[otp][verify] locked out", "channel", channel, "purpose", purpose, "contact", maskContact(channel, contact), "attempts", attempts)
		return ErrTooManyAttempts
	}
	return ErrInvalidOrExpiredOTP
}

func maskContact(channel models.OTPChannel, contact string) string {
	if channel == models.ChannelEmail {
		return utils.MaskEmail(contact)
	}
	return utils.MaskPhone(contact)
}
