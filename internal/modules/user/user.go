package user

import (
	"github.com/google/uuid"
)

// Roles a user can hold.
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
)

// User is an account that can log in: either an admin working the
// approval queue or a partner walking the onboarding wizard.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CompanyName  string    `json:"companyName,omitempty"`
}
