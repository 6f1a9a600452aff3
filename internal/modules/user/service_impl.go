package user

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	vErr := &apperr.ValidationError{}
	if req.Username == "" {
		vErr.Add("username", "Username is required")
	}
	if req.Password == "" {
		vErr.Add("password", "Password is required")
	}
	if req.Email == "" {
		vErr.Add("email", "Email is required")
	}
	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	role := req.Role
	if role != RoleAdmin {
		role = RolePartner
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hashed),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         role,
		CompanyName:  req.CompanyName,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("user", id)
	}
	return s.repo.GetUserByID(ctx, uid)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// SeedDefaults creates the default admin and partner accounts when
// they are absent. Run behind SEED_DEFAULT_USERS.
func SeedDefaults(ctx context.Context, svc Service) {
	defaults := []RegisterRequest{
		{Username: "admin", Password: "admin123", FullName: "Admin User",
			Email: "admin@example.com", Role: RoleAdmin, CompanyName: "Admin Company"},
		{Username: "partner", Password: "partner123", FullName: "Partner User",
			Email: "partner@example.com", Role: RolePartner, CompanyName: "Acme Corporation"},
	}
	for _, req := range defaults {
		if _, err := svc.GetByUsername(ctx, req.Username); err == nil {
			continue
		}
		if _, err := svc.Register(ctx, req); err != nil {
			log.Printf("[WARN] seed user %s: %v", req.Username, err)
		}
	}
}
