package partner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/modules/onboarding"
)

// MemoryStore is the map-backed variant of the partner and approval
// repositories, sharing one mutex so partner+approval operations stay
// atomic the way the postgres transactions are.
type MemoryStore struct {
	mu        sync.Mutex
	partners  map[uuid.UUID]*Partner
	approvals map[uuid.UUID]*Approval
}

// NewMemoryStore creates an empty store. It implements both Repository
// and ApprovalRepository.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partners:  make(map[uuid.UUID]*Partner),
		approvals: make(map[uuid.UUID]*Approval),
	}
}

var _ Repository = (*MemoryStore)(nil)
var _ ApprovalRepository = (*MemoryStore)(nil)

func (m *MemoryStore) Create(ctx context.Context, p *Partner, a *Approval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pc, ac := *p, *a
	m.partners[p.ID] = &pc
	m.approvals[a.ID] = &ac
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.partners[id]
	if !ok {
		return nil, apperr.NotFound("partner", id.String())
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *Partner
	for _, p := range m.partners {
		if p.UserID == userID && (found == nil || p.CreatedAt.Before(found.CreatedAt)) {
			found = p
		}
	}
	if found == nil {
		return nil, apperr.NotFound("partner for user", userID.String())
	}
	cp := *found
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	partners := make([]*Partner, 0, len(m.partners))
	for _, p := range m.partners {
		cp := *p
		partners = append(partners, &cp)
	}
	sort.Slice(partners, func(i, j int) bool {
		return partners[i].CreatedAt.After(partners[j].CreatedAt)
	})
	return partners, nil
}

func (m *MemoryStore) Update(ctx context.Context, id uuid.UUID, upd UpdatePartnerRequest) (*Partner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.partners[id]
	if !ok {
		return nil, apperr.NotFound("partner", id.String())
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&p.CompanyName, upd.CompanyName)
	apply(&p.ContactName, upd.ContactName)
	apply(&p.ContactEmail, upd.ContactEmail)
	apply(&p.ContactPhone, upd.ContactPhone)
	apply(&p.Address, upd.Address)
	apply(&p.City, upd.City)
	apply(&p.State, upd.State)
	apply(&p.ZipCode, upd.ZipCode)
	apply(&p.Country, upd.Country)
	apply(&p.Industry, upd.Industry)
	apply(&p.Website, upd.Website)
	apply(&p.Notes, upd.Notes)
	apply(&p.Interface.Protocol, upd.Protocol)
	apply(&p.Interface.AuthType, upd.AuthType)
	apply(&p.Interface.Direction, upd.Direction)
	apply(&p.Interface.Username, upd.Username)
	apply(&p.Interface.Password, upd.Password)
	apply(&p.Interface.HTTPHeaderName, upd.HTTPHeaderName)
	apply(&p.Interface.APIKeyValue, upd.APIKeyValue)
	apply(&p.Interface.IdentityKeyID, upd.IdentityKeyID)
	apply(&p.Interface.Host, upd.Host)
	apply(&p.Interface.Port, upd.Port)
	apply(&p.Interface.CharacterEncoding, upd.CharacterEncoding)
	apply(&p.Interface.SourcePath, upd.SourcePath)
	apply(&p.Interface.SupportFormatType, upd.SupportFormatType)
	apply(&p.Interface.FileNamePattern, upd.FileNamePattern)
	apply(&p.Interface.ArchivalPath, upd.ArchivalPath)
	if upd.Status != nil {
		p.Status = Status(*upd.Status)
	}
	if upd.PartnerType != nil {
		p.PartnerType = onboarding.PartnerType(*upd.PartnerType)
	}
	if upd.UserID != nil {
		if uid, err := uuid.Parse(*upd.UserID); err == nil {
			p.UserID = uid
		}
	}
	if upd.Endpoints != nil {
		p.Interface.Endpoints = append([]onboarding.Endpoint(nil), (*upd.Endpoints)...)
	}
	if upd.AdditionalSettings != nil {
		p.Interface.AdditionalSettings = *upd.AdditionalSettings
	}
	if len(upd.CertificateSnapshot) > 0 {
		p.CertificateSnapshot = upd.CertificateSnapshot
	}
	if upd.CurrentStep != nil {
		p.CurrentStep = *upd.CurrentStep
	}
	if upd.TotalSteps != nil {
		p.TotalSteps = *upd.TotalSteps
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.partners[id]; !ok {
		return apperr.NotFound("partner", id.String())
	}
	for aid, a := range m.approvals {
		if a.PartnerID == id {
			delete(m.approvals, aid)
		}
	}
	delete(m.partners, id)
	return nil
}

func (m *MemoryStore) Decide(ctx context.Context, partnerID uuid.UUID, d Decision) (*Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.partners[partnerID]
	if !ok {
		return nil, apperr.NotFound("partner", partnerID.String())
	}

	var a *Approval
	for _, candidate := range m.approvals {
		if candidate.PartnerID != partnerID {
			continue
		}
		if a == nil || candidate.CreatedAt.Before(a.CreatedAt) {
			a = candidate
		}
	}
	if a == nil {
		a = &Approval{
			ID:        uuid.New(),
			PartnerID: partnerID,
			CreatedAt: d.DecidedAt,
		}
		m.approvals[a.ID] = a
	}
	a.Status = d.Status
	a.Comments = d.Comments
	a.ApproverID = d.ApproverID
	a.UpdatedAt = d.DecidedAt

	decidedAt := d.DecidedAt
	if d.Status == ApprovalRejected {
		p.Status = StatusRejected
		p.RejectedAt = &decidedAt
	} else {
		p.Status = StatusApproved
		p.ApprovedAt = &decidedAt
	}
	p.UpdatedAt = d.DecidedAt

	cp := *a
	return &cp, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.partners), nil
}

func (m *MemoryStore) CountByStatus(ctx context.Context, status Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.partners {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]*Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	approvals := make([]*Approval, 0, len(m.approvals))
	for _, a := range m.approvals {
		cp := *a
		approvals = append(approvals, &cp)
	}
	sort.Slice(approvals, func(i, j int) bool {
		return approvals[i].CreatedAt.After(approvals[j].CreatedAt)
	})
	return approvals, nil
}

func (m *MemoryStore) ListByStatus(ctx context.Context, status ApprovalStatus) ([]*Approval, error) {
	all, _ := m.ListAll(ctx)
	var filtered []*Approval
	for _, a := range all {
		if a.Status == status {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (m *MemoryStore) ListApprovedSince(ctx context.Context, since time.Time) ([]*Approval, error) {
	all, _ := m.ListAll(ctx)
	var filtered []*Approval
	for _, a := range all {
		if a.Status == ApprovalApproved && !a.UpdatedAt.Before(since) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (m *MemoryStore) CountApprovedSince(ctx context.Context, since time.Time) (int, error) {
	approved, _ := m.ListApprovedSince(ctx, since)
	return len(approved), nil
}
