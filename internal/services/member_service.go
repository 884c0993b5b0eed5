package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"memberhub/internal/authz"
	"memberhub/internal/models"
	"memberhub/internal/pdf"
	"memberhub/internal/repositories"
	"memberhub/internal/utils"
)

type MemberRegistrationInput struct {
	OrganizationID    int64
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Password          string
	Designation       string
	Experience        string
	Achievements      string
	PaymentMethod     string
	VerificationType  string
	VerifiedContact   string
	VerificationToken string
}

type MemberSession struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Dashboard string         `json:"dashboard"`
	Member    *models.Member `json:"member"`
}

// LoginResult either carries a session or asks for the OTP sent to MaskedPhone.
type LoginResult struct {
	OTPRequired bool           `json:"otp_required"`
	MaskedPhone string         `json:"masked_phone,omitempty"`
	Session     *MemberSession `json:"session,omitempty"`
}

type MemberService interface {
	SendOTP(ctx context.Context, in SendOTPInput) error
	VerifyOTP(ctx context.Context, in VerifyOTPInput) (string, error)
	Register(ctx context.Context, in MemberRegistrationInput) (*models.Member, error)
	Login(ctx context.Context, membershipID, password string) (*LoginResult, error)
	VerifyLogin(ctx context.Context, membershipID, code string) (*MemberSession, error)
	Get(ctx context.Context, id int64) (*models.Member, error)
	ListForOrganization(ctx context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error)
	Review(ctx context.Context, reviewer authz.Principal, memberID int64, approve bool) (*models.Member, error)
	Card(ctx context.Context, memberID int64) ([]byte, error)
}

type MemberOptions struct {
	LoginOTP bool
}

type memberService struct {
	members repositories.MemberRepository
	orgs    repositories.OrganizationRepository
	otp     OTPService
	auth    AuthService
	email   EmailService
	cards   pdf.Generator
	opts    MemberOptions
	now     func() time.Time
}

func NewMemberService(
	members repositories.MemberRepository,
	orgs repositories.OrganizationRepository,
	otp OTPService,
	auth AuthService,
	email EmailService,
	cards pdf.Generator,
	opts MemberOptions,
) MemberService {
	return &memberService{
		members: members,
		orgs:    orgs,
		otp:     otp,
		auth:    auth,
		email:   email,
		cards:   cards,
		opts:    opts,
		now:     time.Now,
	}
}

func (s *memberService) SendOTP(ctx context.Context, in SendOTPInput) error {
	channel, contact, err := resolveContact(in.VerificationType, in.Email, in.Phone)
	if err != nil {
		return err
	}
	return s.otp.Issue(ctx, contact, channel, models.PurposeMemberRegistration)
}

func (s *memberService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (string, error) {
	channel, contact, err := resolveContact(in.VerificationType, in.Email, in.Phone)
	if err != nil {
		return "", err
	}
	if err := s.otp.Verify(ctx, contact, in.OTP, channel, models.PurposeMemberRegistration); err != nil {
		return "", err
	}
	return s.auth.IssueVerificationToken(contact, channel, models.PurposeMemberRegistration)
}

const membershipIDAttempts = 5

// membershipPrefix builds "ORG3-FL": three letters of the organization and the name initials.
func membershipPrefix(orgName, firstName, lastName string) string {
	var org []rune
	for _, r := range orgName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			org = append(org, unicode.ToUpper(r))
			if len(org) == 3 {
				break
			}
		}
	}
	for len(org) < 3 {
		org = append(org, 'X')
	}
	return fmt.Sprintf("%s-%s%s", string(org), initial(firstName), initial(lastName))
}

func initial(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return string(unicode.ToUpper(r))
	}
	return "X"
}

// NewMembershipID returns PREFIX-<unix>-<4 random digits>.
func NewMembershipID(prefix string, at time.Time) (string, error) {
	n, err := utils.RandomInt(0, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, at.Unix(), n), nil
}

func validateMember(in *MemberRegistrationInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	switch {
	case in.OrganizationID <= 0:
		return required("organization")
	case in.FirstName == "":
		return required("firstName")
	case in.LastName == "":
		return required("lastName")
	case strings.TrimSpace(in.Email) == "":
		return required("email")
	case strings.TrimSpace(in.Password) == "":
		return required("password")
	}
	if len(in.Password) < minPasswordLen {
		return &FieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	email, err := NormalizeContact(models.ChannelEmail, in.Email)
	if err != nil {
		return err
	}
	in.Email = email
	if strings.TrimSpace(in.Phone) != "" {
		phone, err := NormalizeContact(models.ChannelPhone, in.Phone)
		if err != nil {
			return err
		}
		in.Phone = phone
	}
	return nil
}

func (s *memberService) Register(ctx context.Context, in MemberRegistrationInput) (*models.Member, error) {
	if err := validateMember(&in); err != nil {
		return nil, err
	}
	if err := checkVerification(s.auth, models.PurposeMemberRegistration, in.VerificationToken,
		in.VerificationType, in.VerifiedContact, in.Email, in.Phone); err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, in.OrganizationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("organization %d: %w", in.OrganizationID, ErrNotFound)
		}
		return nil, dependency("load organization", err)
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	m := &models.Member{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		PasswordHash:     hash,
		Designation:      strings.TrimSpace(in.Designation),
		Experience:       strings.TrimSpace(in.Experience),
		Achievements:     strings.TrimSpace(in.Achievements),
		PaymentMethod:    strings.TrimSpace(in.PaymentMethod),
		Status:           models.MemberPending,
	}
	prefix := membershipPrefix(org.Name, in.FirstName, in.LastName)

	for attempt := 1; ; attempt++ {
		id, err := NewMembershipID(prefix, s.now())
		if err != nil {
			return nil, err
		}
		m.MembershipID = id
		err = s.members.Create(ctx, m)
		if err == nil {
			break
		}
		var dup *repositories.DuplicateError
		if errors.As(err, &dup) && dup.Field == "membership_id" && attempt < membershipIDAttempts {
			slog.WarnContext(ctx, "[member][register] membership id collision", "membership_id", id, "attempt", attempt)
			continue
		}
		return nil, fromRepo("create member", err)
	}

	slog.InfoContext(ctx, "[member][register] created", "member_id", m.ID, "membership_id", m.MembershipID, "organization_id", m.OrganizationID)
	return m, nil
}

func (s *memberService) session(m *models.Member) (*MemberSession, error) {
	dash := authz.DashboardPending
	if m.FullAccess() {
		dash = authz.DashboardFull
	}
	token, exp, err := s.auth.IssueAccessToken(authz.Principal{
		ID:             m.ID,
		Role:           authz.RoleMember,
		OrganizationID: m.OrganizationID,
		Dashboard:      dash,
	})
	if err != nil {
		return nil, err
	}
	return &MemberSession{Token: token, ExpiresAt: exp, Dashboard: dash, Member: m}, nil
}

func (s *memberService) loadForLogin(ctx context.Context, membershipID string) (*models.Member, error) {
	membershipID = strings.ToUpper(strings.TrimSpace(membershipID))
	if membershipID == "" {
		return nil, required("membershipId")
	}
	m, err := s.members.GetByMembershipID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dependency("load member", err)
	}
	return m, nil
}

func (s *memberService) Login(ctx context.Context, membershipID, password string) (*LoginResult, error) {
	if password == "" {
		return nil, required("password")
	}
	m, err := s.loadForLogin(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if !s.auth.CheckPassword(m.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if m.Status == models.MemberRejected {
		return nil, fmt.Errorf("membership rejected: %w", ErrForbidden)
	}

	if s.opts.LoginOTP && m.Phone != "" {
		if err := s.otp.Issue(ctx, m.Phone, models.ChannelPhone, models.PurposeMemberLogin); err != nil {
			return nil, err
		}
		return &LoginResult{OTPRequired: true, MaskedPhone: utils.MaskPhone(m.Phone)}, nil
	}

	sess, err := s.session(m)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: sess}, nil
}

func (s *memberService) VerifyLogin(ctx context.Context, membershipID, code string) (*MemberSession, error) {
	m, err := s.loadForLogin(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m.Status == models.MemberRejected {
		return nil, fmt.Errorf("membership rejected: %w", ErrForbidden)
	}
	if m.Phone == "" {
		return nil, ErrInvalidOrExpiredOTP
	}
	if err := s.otp.Verify(ctx, m.Phone, code, models.ChannelPhone, models.PurposeMemberLogin); err != nil {
		return nil, err
	}
	return s.session(m)
}

func (s *memberService) Get(ctx context.Context, id int64) (*models.Member, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepo("get member", err)
	}
	return m, nil
}

func (s *memberService) ListForOrganization(ctx context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error) {
	if orgID <= 0 {
		return nil, ErrForbidden
	}
	switch status {
	case "", models.MemberPending, models.MemberApproved, models.MemberRejected, models.MemberActive:
	default:
		return nil, &FieldError{Field: "status", Reason: "must be pending, approved, rejected or active"}
	}
	list, err := s.members.ListByOrganization(ctx, orgID, status)
	if err != nil {
		return nil, dependency("list members", err)
	}
	return list, nil
}

// Review approves or rejects a pending member of the reviewer's own organization.
func (s *memberService) Review(ctx context.Context, reviewer authz.Principal, memberID int64, approve bool) (*models.Member, error) {
	if !authz.IsStaff(reviewer.Role) || reviewer.OrganizationID <= 0 {
		return nil, ErrForbidden
	}
	status := models.MemberRejected
	if approve {
		status = models.MemberApproved
	}
	m, err := s.members.Review(ctx, memberID, reviewer.OrganizationID, reviewer.ID, status, s.now())
	if err != nil {
		return nil, fromRepo("review member", err)
	}
	slog.InfoContext(ctx, "[member][review] status changed", "member_id", m.ID, "status", m.Status, "reviewer_id", reviewer.ID)

	if s.email != nil {
		if err := s.email.SendMemberStatus(ctx, m.Email, m.MembershipID, m.Status); err != nil {
			slog.WarnContext(ctx, "[member][review] notice not sent", "member_id", m.ID, "err", err)
		}
	}
	return m, nil
}

func (s *memberService) Card(ctx context.Context, memberID int64) ([]byte, error) {
	m, err := s.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.FullAccess() {
		return nil, fmt.Errorf("card is issued to approved members only: %w", ErrForbidden)
	}
	issued := m.CreatedAt
	if m.ReviewedAt != nil {
		issued = *m.ReviewedAt
	}
	out, err := s.cards.MemberCard(pdf.CardData{
		MembershipID: m.MembershipID,
		FullName:     m.FirstName + " " + m.LastName,
		Organization: m.OrganizationName,
		Designation:  m.Designation,
		Status:       string(m.Status),
		IssuedAt:     issued,
	})
	if err != nil {
		return nil, dependency("render member card", err)
	}
	return out, nil
}
