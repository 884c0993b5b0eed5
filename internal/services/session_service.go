package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"memberhub/internal/authz"
	"memberhub/internal/models"
	"memberhub/internal/repositories"
)

type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"admin"`
}

type SuperadminSeed struct {
	Username string
	Email    string
	Password string
}

type SessionService interface {
	LoginAdmin(ctx context.Context, login, password string) (*Session, error)
	EnsureSuperadmin(ctx context.Context, seed SuperadminSeed) error
}

type sessionService struct {
	admins repositories.AdminRepository
	auth   AuthService
}

func NewSessionService(admins repositories.AdminRepository, auth AuthService) SessionService {
	return &sessionService{admins: admins, auth: auth}
}

// LoginAdmin accepts either the username or the email as login.
func (s *sessionService) LoginAdmin(ctx context.Context, login, password string) (*Session, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, required("login")
	}
	if password == "" {
		return nil, required("password")
	}

	admin, err := s.admins.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, dependency("load admin", err)
	}
	if !s.auth.CheckPassword(admin.PasswordHash, password) {
		slog.WarnContext(ctx, "[session][login] bad password", "login", login)
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, ErrForbidden
	}

	p := authz.Principal{ID: admin.ID, Role: admin.Role, Dashboard: authz.DashboardFull}
	if admin.OrganizationID != nil {
		p.OrganizationID = *admin.OrganizationID
	}
	token, exp, err := s.auth.IssueAccessToken(p)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "[session][login] ok", "admin_id", admin.ID, "role", admin.Role)
	return &Session{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

// EnsureSuperadmin creates the configured superadmin when none exists yet.
func (s *sessionService) EnsureSuperadmin(ctx context.Context, seed SuperadminSeed) error {
	n, err := s.admins.CountByRole(ctx, authz.RoleSuperadmin)
	if err != nil {
		return dependency("count superadmins", err)
	}
	if n > 0 {
		return nil
	}
	if seed.Username == "" || seed.Password == "" {
		slog.WarnContext(ctx, "[session][bootstrap] no superadmin and no seed configured")
		return nil
	}
	hash, err := s.auth.HashPassword(seed.Password)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Username:     seed.Username,
		Email:        strings.ToLower(strings.TrimSpace(seed.Email)),
		PasswordHash: hash,
		FirstName:    "Super",
		LastName:     "Admin",
		Role:         authz.RoleSuperadmin,
		Status:       models.AdminStatusApproved,
		IsActive:     true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return fromRepo("create superadmin", err)
	}
	slog.InfoContext(ctx, "[session][bootstrap] superadmin created", "admin_id", admin.ID, "username", admin.Username)
	return nil
}
