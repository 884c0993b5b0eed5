package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"memberhub/internal/authz"
	"memberhub/internal/models"
	"memberhub/internal/services"
)

type mockAdminRegistration struct{ mock.Mock }

func (m *mockAdminRegistration) SendOTP(ctx context.Context, in services.SendOTPInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockAdminRegistration) VerifyOTP(ctx context.Context, in services.VerifyOTPInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockAdminRegistration) CompleteRegistration(ctx context.Context, in services.CompleteRegistrationInput) (*models.AdminRequest, error) {
	args := m.Called(ctx, in)
	req, _ := args.Get(0).(*models.AdminRequest)
	return req, args.Error(1)
}

type mockApproval struct{ mock.Mock }

func (m *mockApproval) Approve(ctx context.Context, requestID, reviewerID int64) (*services.ApprovalResult, error) {
	args := m.Called(ctx, requestID, reviewerID)
	res, _ := args.Get(0).(*services.ApprovalResult)
	return res, args.Error(1)
}

func (m *mockApproval) Reject(ctx context.Context, requestID, reviewerID int64, reason string) (*models.AdminRequest, error) {
	args := m.Called(ctx, requestID, reviewerID, reason)
	req, _ := args.Get(0).(*models.AdminRequest)
	return req, args.Error(1)
}

func (m *mockApproval) ListRequests(ctx context.Context, status models.RequestStatus) ([]*models.AdminRequest, error) {
	args := m.Called(ctx, status)
	list, _ := args.Get(0).([]*models.AdminRequest)
	return list, args.Error(1)
}

func (m *mockApproval) GetRequest(ctx context.Context, requestID int64) (*models.AdminRequest, error) {
	args := m.Called(ctx, requestID)
	req, _ := args.Get(0).(*models.AdminRequest)
	return req, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) LoginAdmin(ctx context.Context, login, password string) (*services.Session, error) {
	args := m.Called(ctx, login, password)
	s, _ := args.Get(0).(*services.Session)
	return s, args.Error(1)
}

func (m *mockSessions) EnsureSuperadmin(ctx context.Context, seed services.SuperadminSeed) error {
	return m.Called(ctx, seed).Error(0)
}

type mockMembers struct{ mock.Mock }

func (m *mockMembers) SendOTP(ctx context.Context, in services.SendOTPInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockMembers) VerifyOTP(ctx context.Context, in services.VerifyOTPInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockMembers) Register(ctx context.Context, in services.MemberRegistrationInput) (*models.Member, error) {
	args := m.Called(ctx, in)
	mem, _ := args.Get(0).(*models.Member)
	return mem, args.Error(1)
}

func (m *mockMembers) Login(ctx context.Context, membershipID, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, membershipID, password)
	res, _ := args.Get(0).(*services.LoginResult)
	return res, args.Error(1)
}

func (m *mockMembers) VerifyLogin(ctx context.Context, membershipID, code string) (*services.MemberSession, error) {
	args := m.Called(ctx, membershipID, code)
	s, _ := args.Get(0).(*services.MemberSession)
	return s, args.Error(1)
}

func (m *mockMembers) Get(ctx context.Context, id int64) (*models.Member, error) {
	args := m.Called(ctx, id)
	mem, _ := args.Get(0).(*models.Member)
	return mem, args.Error(1)
}

func (m *mockMembers) ListForOrganization(ctx context.Context, orgID int64, status models.MemberStatus) ([]*models.Member, error) {
	args := m.Called(ctx, orgID, status)
	list, _ := args.Get(0).([]*models.Member)
	return list, args.Error(1)
}

func (m *mockMembers) Review(ctx context.Context, reviewer authz.Principal, memberID int64, approve bool) (*models.Member, error) {
	args := m.Called(ctx, reviewer, memberID, approve)
	mem, _ := args.Get(0).(*models.Member)
	return mem, args.Error(1)
}

func (m *mockMembers) Card(ctx context.Context, memberID int64) ([]byte, error) {
	args := m.Called(ctx, memberID)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type mockOrganizations struct{ mock.Mock }

func (m *mockOrganizations) List(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Organization)
	return list, args.Error(1)
}

func (m *mockOrganizations) Get(ctx context.Context, id int64) (*models.Organization, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Organization)
	return o, args.Error(1)
}

func (m *mockOrganizations) Create(ctx context.Context, in services.OrganizationInput) (*models.Organization, error) {
	args := m.Called(ctx, in)
	o, _ := args.Get(0).(*models.Organization)
	return o, args.Error(1)
}
