package models

import "time"

type OTPChannel string

const (
	ChannelEmail OTPChannel = "email"
	ChannelPhone OTPChannel = "phone"
)

func (c OTPChannel) Valid() bool {
	return c == ChannelEmail || c == ChannelPhone
}

// OTPPurpose keeps registration and login codes for the same contact apart.
type OTPPurpose string

const (
	PurposeAdminRegistration  OTPPurpose = "admin_registration"
	PurposeMemberRegistration OTPPurpose = "member_registration"
	PurposeMemberLogin        OTPPurpose = "member_login"
)

// OTPEntry: one row per issued code. Only the bcrypt hash of the code is stored.
type OTPEntry struct {
	ID        int64      `json:"id"`
	Contact   string     `json:"contact"`
	Channel   OTPChannel `json:"channel"`
	Purpose   OTPPurpose `json:"purpose"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	Used      bool       `json:"used"`
	Attempts  int        `json:"attempts"`
	CreatedAt time.Time  `json:"created_at"`
}

func (e *OTPEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
