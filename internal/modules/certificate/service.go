package certificate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/storage"
)

// Service defines certificate business logic.
type Service interface {
	// Upload stores the file bytes in the object store and persists a
	// certificate row referencing the returned URL and path.
	Upload(ctx context.Context, req UploadRequest) (*Certificate, error)

	Get(ctx context.Context, id uuid.UUID) (*Certificate, error)

	// Snapshot returns the certificate's metadata as a raw blob, ready
	// to be embedded in a partner record at submission time. The blob is
	// a copy; later edits or deletion of the certificate do not touch it.
	Snapshot(ctx context.Context, id uuid.UUID) (json.RawMessage, error)

	// List returns the user's certificates when userID is non-empty,
	// otherwise all certificates. An unparsable userID yields an empty
	// list rather than an error; query parameters are handled leniently.
	List(ctx context.Context, userID string) ([]*Certificate, error)

	// Delete removes the stored object and the certificate record.
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	store storage.ObjectStore
}

// NewService creates a new certificate service.
func NewService(repo Repository, store storage.ObjectStore) Service {
	return &service{repo: repo, store: store}
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*Certificate, error) {
	if len(req.Content) == 0 {
		return nil, &apperr.UploadError{Reason: "No file uploaded"}
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		vErr := &apperr.ValidationError{}
		vErr.Add("userId", "A valid user id is required")
		return nil, vErr
	}

	docType := req.DocumentType
	if docType == "" {
		docType = "certificate"
	}

	objectPath := storage.ObjectPath(req.FileName, req.Content)
	url, err := s.store.Upload(ctx, objectPath, req.ContentType,
		bytes.NewReader(req.Content), int64(len(req.Content)))
	if err != nil {
		return nil, &apperr.StorageError{Op: "upload", Err: err}
	}

	c := &Certificate{
		ID:           uuid.New(),
		UserID:       userID,
		FileName:     req.FileName,
		FileType:     req.ContentType,
		FileSize:     int64(len(req.Content)),
		DocumentType: docType,
		Alias:        req.Alias,
		Description:  req.Description,
		StoragePath:  objectPath,
		StorageURL:   url,
		UploadedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("persist certificate: %w", err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Snapshot(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return json.Marshal(c)
}

func (s *service) List(ctx context.Context, userID string) ([]*Certificate, error) {
	if userID != "" {
		uid, err := uuid.Parse(userID)
		if err != nil {
			return []*Certificate{}, nil
		}
		return s.repo.ListByUser(ctx, uid)
	}
	return s.repo.ListAll(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.StoragePath != "" {
		if err := s.store.Remove(ctx, c.StoragePath); err != nil {
			log.Printf("[WARN] delete object %s: %v", c.StoragePath, err)
		}
	}
	return s.repo.Delete(ctx, id)
}
