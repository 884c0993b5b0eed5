package models

import "time"

type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberApproved MemberStatus = "approved"
	MemberRejected MemberStatus = "rejected"
	MemberActive   MemberStatus = "active"
)

type Member struct {
	ID               int64        `json:"id"`
	MembershipID     string       `json:"membership_id"`
	OrganizationID   int64        `json:"organization_id"`
	OrganizationName string       `json:"organization_name,omitempty"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	PasswordHash     string       `json:"-"`
	Designation      string       `json:"designation,omitempty"`
	Experience       string       `json:"experience,omitempty"`
	Achievements     string       `json:"achievements,omitempty"`
	PaymentMethod    string       `json:"payment_method,omitempty"`
	Status           MemberStatus `json:"status"`
	ReviewedAt       *time.Time   `json:"reviewed_at,omitempty"`
	ReviewedBy       *int64       `json:"reviewed_by,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// FullAccess: approved/active members get the full dashboard, everyone else the pending one.
func (m *Member) FullAccess() bool {
	return m.Status == MemberApproved || m.Status == MemberActive
}

type MemberLoginRequest struct {
	MembershipID string `json:"membership_id" binding:"required"`
	Password     string `json:"password" binding:"required"`
}
