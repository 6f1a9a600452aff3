package auth

import (
	"context"

	"github.com/partnergate/onboarding-backend/internal/modules/user"
)

// Service defines the interface for authentication business logic.
type Service interface {
	// Login verifies the credentials and returns a signed token plus
	// the authenticated user.
	Login(ctx context.Context, username, password string) (string, *user.User, error)

	// CurrentUser resolves the user a request context was
	// authenticated as, or false when the request is anonymous.
	CurrentUser(ctx context.Context) (*user.User, bool)
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
