package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// AdminRequest is an application for an admin account. It is not a login.
type AdminRequest struct {
	ID               int64         `json:"id"`
	Email            string        `json:"email"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	OrganizationID   int64         `json:"organization_id"`
	OrganizationName string        `json:"organization_name,omitempty"`
	Username         string        `json:"username"`
	PasswordHash     string        `json:"-"`
	Phone            string        `json:"phone"`
	Experience       string        `json:"experience,omitempty"`
	Level            string        `json:"level,omitempty"`
	Appointer        string        `json:"appointer,omitempty"`
	Status           RequestStatus `json:"status"`
	RejectionReason  string        `json:"rejection_reason,omitempty"`
	RequestedAt      time.Time     `json:"requested_at"`
	ReviewedAt       *time.Time    `json:"reviewed_at,omitempty"`
	ReviewedBy       *int64        `json:"reviewed_by,omitempty"`
}

// HasCredentials reports whether the applicant-chosen login survived on the row.
func (r *AdminRequest) HasCredentials() bool {
	return r.Username != "" && r.PasswordHash != ""
}
