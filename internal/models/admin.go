package models

import "time"

type Admin struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // не отдаём наружу
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           string    `json:"role"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	Status         string    `json:"status"`
	IsActive       bool      `json:"is_active"`
	RequestID      *int64    `json:"request_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

const AdminStatusApproved = "approved"

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
