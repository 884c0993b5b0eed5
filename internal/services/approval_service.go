package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"memberhub/internal/authz"
	"memberhub/internal/models"
	"memberhub/internal/repositories"
)

const credentialsPreservedMessage = "original credentials preserved"

// ApprovalResult is what the superadmin console shows after an approval.
type ApprovalResult struct {
	Admin            *models.Admin        `json:"admin"`
	Request          *models.AdminRequest `json:"request"`
	OrganizationName string               `json:"organization_name"`
	Message          string               `json:"message"`
}

type ApprovalService interface {
	Approve(ctx context.Context, requestID, reviewerID int64) (*ApprovalResult, error)
	Reject(ctx context.Context, requestID, reviewerID int64, reason string) (*models.AdminRequest, error)
	ListRequests(ctx context.Context, status models.RequestStatus) ([]*models.AdminRequest, error)
	GetRequest(ctx context.Context, requestID int64) (*models.AdminRequest, error)
}

type approvalService struct {
	requests repositories.AdminRequestRepository
	email    EmailService
	now      func() time.Time
}

func NewApprovalService(requests repositories.AdminRequestRepository, email EmailService) ApprovalService {
	return &approvalService{requests: requests, email: email, now: time.Now}
}

// adminFromRequest carries the applicant's username and password hash over verbatim.
func adminFromRequest(req *models.AdminRequest) (*models.Admin, error) {
	if !req.HasCredentials() {
		return nil, ErrMissingCredentials
	}
	orgID := req.OrganizationID
	reqID := req.ID
	return &models.Admin{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   req.PasswordHash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           authz.RoleAdmin,
		OrganizationID: &orgID,
		Status:         models.AdminStatusApproved,
		IsActive:       true,
		RequestID:      &reqID,
	}, nil
}

func (s *approvalService) Approve(ctx context.Context, requestID, reviewerID int64) (*ApprovalResult, error) {
	if requestID <= 0 {
		return nil, &FieldError{Field: "id", Reason: "must be a positive integer"}
	}
	req, admin, err := s.requests.Approve(ctx, requestID, reviewerID, s.now(), adminFromRequest)
	if err != nil {
		if errors.Is(err, ErrMissingCredentials) {
			slog.ErrorContext(ctx, "[approval][approve] request has no credentials", "request_id", requestID)
			return nil, fmt.Errorf("admin request %d: %w", requestID, ErrMissingCredentials)
		}
		if !errors.Is(err, repositories.ErrNotFound) && !errors.Is(err, repositories.ErrNotPending) {
			slog.ErrorContext(ctx, "[approval][approve] transaction failed", "request_id", requestID, "reviewer_id", reviewerID, "err", err)
		}
		return nil, fromRepo("approve admin request", err)
	}

	slog.InfoContext(ctx, "[approval][approve] admin created",
		"request_id", req.ID, "admin_id", admin.ID, "username", admin.Username, "reviewer_id", reviewerID)

	if s.email != nil {
		if err := s.email.SendAdminApproved(ctx, admin.Email, admin.Username, req.OrganizationName); err != nil {
			// the approval is committed; a lost notice does not undo it
			slog.WarnContext(ctx, "[approval][approve] notice not sent", "request_id", req.ID, "email", admin.Email, "err", err)
		}
	}

	return &ApprovalResult{
		Admin:            admin,
		Request:          req,
		OrganizationName: req.OrganizationName,
		Message:          credentialsPreservedMessage,
	}, nil
}

func (s *approvalService) Reject(ctx context.Context, requestID, reviewerID int64, reason string) (*models.AdminRequest, error) {
	if requestID <= 0 {
		return nil, &FieldError{Field: "id", Reason: "must be a positive integer"}
	}
	reason = strings.TrimSpace(reason)
	req, err := s.requests.Reject(ctx, requestID, reviewerID, reason, s.now())
	if err != nil {
		return nil, fromRepo("reject admin request", err)
	}
	slog.InfoContext(ctx, "[approval][reject] request rejected", "request_id", req.ID, "reviewer_id", reviewerID)

	if s.email != nil {
		if err := s.email.SendAdminRejected(ctx, req.Email, reason); err != nil {
			slog.WarnContext(ctx, "[approval][reject] notice not sent", "request_id", req.ID, "err", err)
		}
	}
	return req, nil
}

func (s *approvalService) ListRequests(ctx context.Context, status models.RequestStatus) ([]*models.AdminRequest, error) {
	switch status {
	case "", models.RequestPending, models.RequestApproved, models.RequestRejected:
	default:
		return nil, &FieldError{Field: "status", Reason: "must be pending, approved or rejected"}
	}
	list, err := s.requests.List(ctx, status)
	if err != nil {
		return nil, dependency("list admin requests", err)
	}
	return list, nil
}

func (s *approvalService) GetRequest(ctx context.Context, requestID int64) (*models.AdminRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fromRepo("get admin request", err)
	}
	return req, nil
}
