package document

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/storage"
)

// PartnerDirectory answers whether a partner exists. Satisfied by the
// partner service; declared here to keep this package free of a
// dependency on it.
type PartnerDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

// Service defines document business logic.
type Service interface {
	// Upload stores the file bytes in the object store and persists
	// the document record. The partner must exist.
	Upload(ctx context.Context, partnerID uuid.UUID, req UploadRequest) (*Document, error)

	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Document, error)
	ListAll(ctx context.Context) ([]*Document, error)

	// Delete removes the stored object and the document record.
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	store    storage.ObjectStore
	partners PartnerDirectory
}

// NewService creates a new document service.
func NewService(repo Repository, store storage.ObjectStore, partners PartnerDirectory) Service {
	return &service{repo: repo, store: store, partners: partners}
}

func (s *service) Upload(ctx context.Context, partnerID uuid.UUID, req UploadRequest) (*Document, error) {
	if err := s.partners.Exists(ctx, partnerID); err != nil {
		return nil, err
	}
	if len(req.Content) == 0 {
		return nil, &apperr.UploadError{Reason: "No file uploaded"}
	}

	docType := req.DocumentType
	if docType == "" {
		docType = "certificate"
	}

	objectPath := storage.ObjectPath(req.FileName, req.Content)
	if _, err := s.store.Upload(ctx, objectPath, req.ContentType,
		bytes.NewReader(req.Content), int64(len(req.Content))); err != nil {
		return nil, &apperr.StorageError{Op: "upload", Err: err}
	}

	d := &Document{
		ID:           uuid.New(),
		PartnerID:    partnerID,
		FileName:     req.FileName,
		FileType:     req.ContentType,
		FileSize:     int64(len(req.Content)),
		DocumentType: docType,
		StoragePath:  objectPath,
		UploadedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("persist document: %w", err)
	}
	return d, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Document, error) {
	return s.repo.ListByPartner(ctx, partnerID)
}

func (s *service) ListAll(ctx context.Context) ([]*Document, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// A dangling storage object is preferable to a dangling record.
	if err := s.store.Remove(ctx, d.StoragePath); err != nil {
		log.Printf("[WARN] delete object %s: %v", d.StoragePath, err)
	}
	return s.repo.Delete(ctx, id)
}
