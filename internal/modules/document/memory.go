package document

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
)

// memoryRepo is the map-backed Repository used by tests and the
// memory storage driver.
type memoryRepo struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*Document
}

func NewMemoryRepository() Repository {
	return &memoryRepo{docs: make(map[uuid.UUID]*Document)}
}

func (r *memoryRepo) Create(ctx context.Context, d *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, apperr.NotFound("document", id.String())
	}
	cp := *d
	return &cp, nil
}

func (r *memoryRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []*Document
	for _, d := range r.docs {
		if d.PartnerID == partnerID {
			cp := *d
			docs = append(docs, &cp)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.Before(docs[j].UploadedAt) })
	return docs, nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var docs []*Document
	for _, d := range r.docs {
		cp := *d
		docs = append(docs, &cp)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return apperr.NotFound("document", id.String())
	}
	delete(r.docs, id)
	return nil
}
