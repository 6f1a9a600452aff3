package document

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for documents.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Document, error)
	ListAll(ctx context.Context) ([]*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
