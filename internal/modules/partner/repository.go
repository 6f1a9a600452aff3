package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Decision is the applied outcome of an admin decision, written to the
// approval record and mirrored onto the partner row.
type Decision struct {
	Status     ApprovalStatus
	Comments   string
	ApproverID *uuid.UUID
	DecidedAt  time.Time
}

// Repository defines data access for partners. Create and Decide touch
// the partner and its approval together and must apply atomically.
type Repository interface {
	// Create persists a new partner and its PENDING approval record
	// in one transaction.
	Create(ctx context.Context, p *Partner, a *Approval) error

	GetByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// GetByUserID returns the partner owned by a user, or NotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Partner, error)

	List(ctx context.Context) ([]*Partner, error)

	// Update applies the non-nil fields of upd and returns the updated
	// partner.
	Update(ctx context.Context, id uuid.UUID, upd UpdatePartnerRequest) (*Partner, error)

	// Delete removes the partner and its approval records. Documents
	// are cascaded by the service so their stored objects go too.
	Delete(ctx context.Context, id uuid.UUID) error

	// Decide applies an admin decision: the partner's approval record
	// is updated in place (created if somehow absent), the partner's
	// status and the matching decision timestamp are set. Returns the
	// updated approval, or NotFound if the partner is absent.
	Decide(ctx context.Context, partnerID uuid.UUID, d Decision) (*Approval, error)

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

// ApprovalRepository defines read access to approval records.
type ApprovalRepository interface {
	ListAll(ctx context.Context) ([]*Approval, error)
	ListByStatus(ctx context.Context, status ApprovalStatus) ([]*Approval, error)

	// ListApprovedSince returns APPROVED approvals whose updatedAt is
	// at or after the given instant.
	ListApprovedSince(ctx context.Context, since time.Time) ([]*Approval, error)
	CountApprovedSince(ctx context.Context, since time.Time) (int, error)
}
