package certificate

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for certificates.
type Repository interface {
	Create(ctx context.Context, c *Certificate) error
	GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certificate, error)
	ListAll(ctx context.Context) ([]*Certificate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
