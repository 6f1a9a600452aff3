package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file attached to a partner, distinct from
// the user-owned certificates.
type Document struct {
	ID           uuid.UUID `json:"id"`
	PartnerID    uuid.UUID `json:"partnerId"`
	FileName     string    `json:"fileName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	DocumentType string    `json:"documentType"`
	StoragePath  string    `json:"storagePath"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadRequest carries one fully-buffered file upload. Content is
// held in memory; the 10 MB ceiling is enforced before this is built.
type UploadRequest struct {
	FileName     string
	ContentType  string
	DocumentType string
	Content      []byte
}
