package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/modules/document"
	"github.com/partnergate/onboarding-backend/internal/modules/onboarding"
)

// DocumentStore is the slice of the document service this package
// needs: listing a partner's documents for the admin queues and
// cascading deletes (which also remove the stored objects).
type DocumentStore interface {
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*document.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the partner onboarding business logic.
type Service interface {
	// Create registers a partner from the aggregated wizard payload.
	// The status is forced to PENDING_APPROVAL and a PENDING approval
	// record is created atomically with the partner.
	Create(ctx context.Context, req CreatePartnerRequest) (*Partner, error)

	Get(ctx context.Context, id string) (*Partner, error)

	// List returns all partners, or the owning user's partner when
	// userID is non-empty. An unparsable userID yields an empty list
	// rather than an error; query parameters are handled leniently.
	List(ctx context.Context, userID string) ([]*Partner, error)

	// Update applies a partial update of the partner's editable fields.
	Update(ctx context.Context, id string, req UpdatePartnerRequest) (*Partner, error)

	// Delete removes the partner, its approvals, and its documents
	// together with their stored objects.
	Delete(ctx context.Context, id string) error

	// Decide applies an admin approve/reject decision per partner:
	// the single approval record is updated in place (or created if
	// absent) and the partner's status and decision timestamp are set.
	// Terminal partners may be re-decided; the latest decision wins
	// and the other timestamp is left as it was.
	Decide(ctx context.Context, partnerID string, approverID *uuid.UUID, req DecisionRequest) (*Approval, error)

	ListApprovals(ctx context.Context) ([]*Approval, error)
	PendingApprovals(ctx context.Context) ([]*EnrichedApproval, error)
	CompletedThisMonth(ctx context.Context) ([]*EnrichedApproval, error)

	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo      Repository
	approvals ApprovalRepository
	docs      DocumentStore
}

// NewService creates a new partner service.
func NewService(repo Repository, approvals ApprovalRepository, docs DocumentStore) Service {
	return &service{repo: repo, approvals: approvals, docs: docs}
}

func (s *service) Create(ctx context.Context, req CreatePartnerRequest) (*Partner, error) {
	vErr := &apperr.ValidationError{}
	if req.CompanyName == "" {
		vErr.Add("companyName", "Company name is required")
	}
	if req.ContactName == "" {
		vErr.Add("contactName", "Contact name is required")
	}
	if req.ContactEmail == "" {
		vErr.Add("contactEmail", "Contact email is required")
	}
	if req.ContactPhone == "" {
		vErr.Add("contactPhone", "Contact phone is required")
	}
	partnerType := onboarding.PartnerType(req.PartnerType)
	if !partnerType.Valid() {
		vErr.Add("partnerType", "Partner type must be B2B_EDI or GENERIC")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		vErr.Add("userId", "A valid user id is required")
	}

	var iface onboarding.InterfaceConfig
	if req.InterfaceConfig != nil && req.InterfaceConfig.Interface != nil {
		iface = *req.InterfaceConfig.Interface
		if err := onboarding.ValidateInterfaceConfig(iface); err != nil {
			if ifaceErr, ok := err.(*apperr.ValidationError); ok {
				vErr.Fields = append(vErr.Fields, ifaceErr.Fields...)
			} else {
				return nil, err
			}
		}
	}
	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Partner{
		ID:           uuid.New(),
		UserID:       userID,
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		Industry:     req.Industry,
		Website:      req.Website,
		PartnerType:  partnerType,
		Status:       StatusPendingApproval,
		Notes:        req.Notes,
		Interface:    iface,
		CurrentStep:  onboarding.TotalSteps(partnerType),
		TotalSteps:   onboarding.TotalSteps(partnerType),
		SubmittedAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.InterfaceConfig != nil && req.InterfaceConfig.Security != nil {
		// Copy-on-select: the snapshot never follows later certificate
		// edits.
		p.CertificateSnapshot = req.InterfaceConfig.Security.SelectedCertificate
	}

	a := &Approval{
		ID:        uuid.New(),
		PartnerID: p.ID,
		Status:    ApprovalPending,
		Comments:  "Pending review by admin",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p, a); err != nil {
		return nil, fmt.Errorf("persist partner: %w", err)
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*Partner, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("partner", id)
	}
	return s.repo.GetByID(ctx, pid)
}

func (s *service) List(ctx context.Context, userID string) ([]*Partner, error) {
	if userID != "" {
		uid, err := uuid.Parse(userID)
		if err != nil {
			return []*Partner{}, nil
		}
		p, err := s.repo.GetByUserID(ctx, uid)
		if err != nil {
			var nf *apperr.NotFoundError
			if errors.As(err, &nf) {
				return []*Partner{}, nil
			}
			return nil, err
		}
		return []*Partner{p}, nil
	}
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdatePartnerRequest) (*Partner, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("partner", id)
	}
	vErr := &apperr.ValidationError{}
	if req.Status != nil {
		switch Status(*req.Status) {
		case StatusDraft, StatusSubmitted, StatusPendingApproval, StatusApproved, StatusRejected:
		default:
			vErr.Add("status", "Unknown onboarding status")
		}
	}
	if req.PartnerType != nil && !onboarding.PartnerType(*req.PartnerType).Valid() {
		vErr.Add("partnerType", "Partner type must be B2B_EDI or GENERIC")
	}
	if req.UserID != nil {
		if _, err := uuid.Parse(*req.UserID); err != nil {
			vErr.Add("userId", "A valid user id is required")
		}
	}
	if err := vErr.OrNil(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, pid, req)
}

func (s *service) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return apperr.NotFound("partner", id)
	}
	if _, err := s.repo.GetByID(ctx, pid); err != nil {
		return err
	}
	docs, err := s.docs.ListByPartner(ctx, pid)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if err := s.docs.Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("cascade document %s: %w", d.ID, err)
		}
	}
	return s.repo.Delete(ctx, pid)
}

func (s *service) Decide(ctx context.Context, partnerID string, approverID *uuid.UUID, req DecisionRequest) (*Approval, error) {
	pid, err := uuid.Parse(partnerID)
	if err != nil {
		return nil, apperr.NotFound("partner", partnerID)
	}

	status := ApprovalStatus(req.Status)
	if status != ApprovalApproved && status != ApprovalRejected {
		vErr := &apperr.ValidationError{}
		vErr.Add("status", "Status must be APPROVED or REJECTED")
		return nil, vErr
	}

	return s.repo.Decide(ctx, pid, Decision{
		Status:     status,
		Comments:   req.Comments,
		ApproverID: approverID,
		DecidedAt:  time.Now(),
	})
}

func (s *service) ListApprovals(ctx context.Context) ([]*Approval, error) {
	return s.approvals.ListAll(ctx)
}

func (s *service) PendingApprovals(ctx context.Context) ([]*EnrichedApproval, error) {
	pending, err := s.approvals.ListByStatus(ctx, ApprovalPending)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, pending, true)
}

func (s *service) CompletedThisMonth(ctx context.Context) ([]*EnrichedApproval, error) {
	completed, err := s.approvals.ListApprovedSince(ctx, firstOfCurrentMonth())
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, completed, false)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountByStatus(ctx, StatusPendingApproval)
	if err != nil {
		return nil, err
	}
	approved, err := s.repo.CountByStatus(ctx, StatusApproved)
	if err != nil {
		return nil, err
	}
	completed, err := s.approvals.CountApprovedSince(ctx, firstOfCurrentMonth())
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalPartners:      total,
		PendingApprovals:   pending,
		ApprovedPartners:   approved,
		CompletedThisMonth: completed,
	}, nil
}

// Directory adapts a Repository to the existence check dependent
// modules declare for themselves.
type Directory struct{ repo Repository }

func NewDirectory(repo Repository) *Directory { return &Directory{repo: repo} }

func (d *Directory) Exists(ctx context.Context, id uuid.UUID) error {
	_, err := d.repo.GetByID(ctx, id)
	return err
}

// enrich denormalizes approvals with partner fields and documents for
// the admin queue tables. An approval whose partner has vanished is
// returned bare rather than dropped.
func (s *service) enrich(ctx context.Context, approvals []*Approval, includeInterface bool) ([]*EnrichedApproval, error) {
	enriched := make([]*EnrichedApproval, 0, len(approvals))
	for _, a := range approvals {
		e := &EnrichedApproval{Approval: *a, Documents: []*document.Document{}}
		p, err := s.repo.GetByID(ctx, a.PartnerID)
		if err == nil {
			e.CompanyName = p.CompanyName
			e.ContactName = p.ContactName
			e.ContactEmail = p.ContactEmail
			e.ContactPhone = p.ContactPhone
			e.PartnerType = p.PartnerType
			e.PartnerStatus = p.Status
			e.SubmittedAt = p.SubmittedAt
			e.ApprovedAt = p.ApprovedAt
			if includeInterface {
				iface := p.Interface
				e.Interface = &iface
			}
			if docs, err := s.docs.ListByPartner(ctx, a.PartnerID); err == nil && docs != nil {
				e.Documents = docs
			}
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

func firstOfCurrentMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
}
