package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"memberhub/internal/models"
	"memberhub/internal/repositories"
)

type SendOTPInput struct {
	VerificationType string
	Email            string
	Phone            string
}

type VerifyOTPInput struct {
	OTP              string
	VerificationType string
	Email            string
	Phone            string
}

type CompleteRegistrationInput struct {
	OrganizationID    int64
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Username          string
	Password          string
	Experience        string
	Level             string
	Appointer         string
	VerificationType  string
	VerifiedContact   string
	HasOTP            bool
	VerificationToken string
}

type AdminRegistrationService interface {
	SendOTP(ctx context.Context, in SendOTPInput) error
	VerifyOTP(ctx context.Context, in VerifyOTPInput) (string, error)
	CompleteRegistration(ctx context.Context, in CompleteRegistrationInput) (*models.AdminRequest, error)
}

type adminRegistrationService struct {
	otp      OTPService
	auth     AuthService
	requests repositories.AdminRequestRepository
	admins   repositories.AdminRepository
	orgs     repositories.OrganizationRepository
	notifier Notifier
}

func NewAdminRegistrationService(
	otp OTPService,
	auth AuthService,
	requests repositories.AdminRequestRepository,
	admins repositories.AdminRepository,
	orgs repositories.OrganizationRepository,
	notifier Notifier,
) AdminRegistrationService {
	return &adminRegistrationService{
		otp:      otp,
		auth:     auth,
		requests: requests,
		admins:   admins,
		orgs:     orgs,
		notifier: notifier,
	}
}

// resolveContact picks the contact field matching verificationType.
func resolveContact(verificationType, email, phone string) (models.OTPChannel, string, error) {
	channel := models.OTPChannel(strings.ToLower(strings.TrimSpace(verificationType)))
	switch channel {
	case "":
		return "", "", required("verificationType")
	case models.ChannelEmail:
		c, err := NormalizeContact(channel, email)
		return channel, c, err
	case models.ChannelPhone:
		c, err := NormalizeContact(channel, phone)
		return channel, c, err
	}
	return "", "", &FieldError{Field: "verificationType", Reason: "must be email or phone"}
}

func (s *adminRegistrationService) SendOTP(ctx context.Context, in SendOTPInput) error {
	channel, contact, err := resolveContact(in.VerificationType, in.Email, in.Phone)
	if err != nil {
		return err
	}
	return s.otp.Issue(ctx, contact, channel, models.PurposeAdminRegistration)
}

// VerifyOTP consumes the code and returns a short-lived token proving the contact was verified.
func (s *adminRegistrationService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (string, error) {
	channel, contact, err := resolveContact(in.VerificationType, in.Email, in.Phone)
	if err != nil {
		return "", err
	}
	if err := s.otp.Verify(ctx, contact, in.OTP, channel, models.PurposeAdminRegistration); err != nil {
		return "", err
	}
	return s.auth.IssueVerificationToken(contact, channel, models.PurposeAdminRegistration)
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

const minPasswordLen = 8

func validateRegistration(in *CompleteRegistrationInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	// username first: it is the field older clients forgot to send
	if in.Username == "" {
		return required("username")
	}
	switch {
	case in.OrganizationID <= 0:
		return required("organization")
	case in.FirstName == "":
		return required("firstName")
	case in.LastName == "":
		return required("lastName")
	case in.Email == "":
		return required("email")
	case in.Phone == "":
		return required("phone")
	case strings.TrimSpace(in.Password) == "":
		return required("password")
	}
	if !usernamePattern.MatchString(in.Username) {
		return &FieldError{Field: "username", Reason: "must be 3-50 letters, digits, '.', '_' or '-'"}
	}
	if len(in.Password) < minPasswordLen {
		return &FieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	email, err := NormalizeContact(models.ChannelEmail, in.Email)
	if err != nil {
		return err
	}
	phone, err := NormalizeContact(models.ChannelPhone, in.Phone)
	if err != nil {
		return err
	}
	in.Email, in.Phone = email, phone
	return nil
}

// checkVerification accepts the request only when the server-issued token covers
// the submitted email or phone. hasOTP/verifiedContact are cross-checked, never trusted.
func checkVerification(auth AuthService, purpose models.OTPPurpose, token, verificationType, verifiedContact, email, phone string) error {
	claims, err := auth.ParseVerificationToken(strings.TrimSpace(token), purpose)
	if err != nil {
		return err
	}
	var want string
	switch models.OTPChannel(claims.Channel) {
	case models.ChannelEmail:
		want = email
	case models.ChannelPhone:
		want = phone
	default:
		return ErrVerificationRequired
	}
	if claims.Contact != want {
		return fmt.Errorf("%w: verified contact does not match the submitted %s", ErrVerificationRequired, claims.Channel)
	}
	if vt := strings.TrimSpace(verificationType); vt != "" && !strings.EqualFold(vt, claims.Channel) {
		return fmt.Errorf("%w: verificationType does not match the verified channel", ErrVerificationRequired)
	}
	if vc := strings.TrimSpace(verifiedContact); vc != "" {
		norm, err := NormalizeContact(models.OTPChannel(claims.Channel), vc)
		if err != nil || norm != claims.Contact {
			return fmt.Errorf("%w: verifiedContact does not match the verified contact", ErrVerificationRequired)
		}
	}
	return nil
}

func (s *adminRegistrationService) CompleteRegistration(ctx context.Context, in CompleteRegistrationInput) (*models.AdminRequest, error) {
	if err := validateRegistration(&in); err != nil {
		return nil, err
	}
	if err := checkVerification(s.auth, models.PurposeAdminRegistration, in.VerificationToken,
		in.VerificationType, in.VerifiedContact, in.Email, in.Phone); err != nil {
		slog.WarnContext(ctx, "[admin-registration][complete] verification rejected", "email", in.Email, "err", err)
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, in.OrganizationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("organization %d: %w", in.OrganizationID, ErrNotFound)
		}
		return nil, dependency("load organization", err)
	}

	taken, err := s.admins.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, dependency("check admins", err)
	}
	if taken {
		return nil, &ConflictError{Field: "username or email"}
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	req := &models.AdminRequest{
		Email:            in.Email,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Username:         in.Username,
		PasswordHash:     hash,
		Phone:            in.Phone,
		Experience:       strings.TrimSpace(in.Experience),
		Level:            strings.TrimSpace(in.Level),
		Appointer:        strings.TrimSpace(in.Appointer),
	}
	submitted := req.Username
	if err := s.requests.Create(ctx, req); err != nil {
		slog.ErrorContext(ctx, "[admin-registration][complete] insert failed", "email", in.Email, "username", in.Username, "err", err)
		return nil, fromRepo("create admin request", err)
	}
	if req.Username != submitted {
		// the schema owns this column; a mismatch means the row is unusable for approval
		return nil, fmt.Errorf("admin request %d stored username %q, submitted %q", req.ID, req.Username, submitted)
	}

	slog.InfoContext(ctx, "[admin-registration][complete] request created", "request_id", req.ID, "username", req.Username, "organization_id", req.OrganizationID)
	if s.notifier != nil {
		s.notifier.AdminRequestCreated(ctx, req)
	}
	return req, nil
}
