package authz

import "github.com/golang-jwt/jwt/v5"

const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

const (
	DashboardFull    = "full"
	DashboardPending = "pending"
)

func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleSuperadmin
}

// Principal is whoever a session token was issued to.
type Principal struct {
	ID             int64  `json:"uid"`
	Role           string `json:"role"`
	OrganizationID int64  `json:"org,omitempty"`
	Dashboard      string `json:"dash,omitempty"`
}

type Claims struct {
	Principal
	jwt.RegisteredClaims
}

// VerificationClaims prove that contact passed OTP verification for purpose.
type VerificationClaims struct {
	Contact string `json:"contact"`
	Channel string `json:"channel"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}
