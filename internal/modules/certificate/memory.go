package certificate

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
)

type memoryRepo struct {
	mu    sync.RWMutex
	certs map[uuid.UUID]*Certificate
}

func NewMemoryRepository() Repository {
	return &memoryRepo{certs: make(map[uuid.UUID]*Certificate)}
}

func (r *memoryRepo) Create(ctx context.Context, c *Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.certs[c.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.certs[id]
	if !ok {
		return nil, apperr.NotFound("certificate", id.String())
	}
	cp := *c
	return &cp, nil
}

func (r *memoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var certs []*Certificate
	for _, c := range r.certs {
		if c.UserID == userID {
			cp := *c
			certs = append(certs, &cp)
		}
	}
	sortByUploadedAt(certs)
	return certs, nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var certs []*Certificate
	for _, c := range r.certs {
		cp := *c
		certs = append(certs, &cp)
	}
	sortByUploadedAt(certs)
	return certs, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.certs[id]; !ok {
		return apperr.NotFound("certificate", id.String())
	}
	delete(r.certs, id)
	return nil
}

func sortByUploadedAt(certs []*Certificate) {
	sort.Slice(certs, func(i, j int) bool {
		return certs[i].UploadedAt.After(certs[j].UploadedAt)
	})
}
