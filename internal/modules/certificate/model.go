package certificate

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is a user-owned credential file, uploaded independently
// of any partner and selectable during the onboarding security step.
// When selected, its metadata is copied into the partner record as a
// snapshot; the partner never references this row live.
type Certificate struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	FileName     string    `json:"fileName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	DocumentType string    `json:"documentType"`
	Alias        string    `json:"alias,omitempty"`
	Description  string    `json:"description,omitempty"`
	StoragePath  string    `json:"storagePath"`
	StorageURL   string    `json:"storageUrl,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadRequest carries a fully-buffered certificate upload with its
// form fields.
type UploadRequest struct {
	UserID       string
	FileName     string
	ContentType  string
	DocumentType string
	Alias        string
	Description  string
	Content      []byte
}
