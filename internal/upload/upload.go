// Package upload reads fully-buffered multipart file uploads with a
// size ceiling.
package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/partnergate/onboarding-backend/internal/apperr"
)

// MaxFileSize is the upload ceiling. Larger requests are rejected
// synchronously with a client-visible error.
const MaxFileSize = 10 << 20 // 10 MB

// File is one uploaded file, buffered in memory.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ReadFile parses the request's multipart body and returns the named
// file part. There is no streaming and no resumability; bytes are held
// in memory until forwarded to the object store.
func ReadFile(r *http.Request, field string) (*File, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxFileSize+4096)
	if err := r.ParseMultipartForm(MaxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &apperr.UploadError{Reason: "File exceeds the 10MB limit"}
		}
		return nil, &apperr.UploadError{Reason: "failed to parse form data"}
	}

	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, &apperr.UploadError{Reason: "No file uploaded"}
	}
	defer f.Close()

	if header.Size > MaxFileSize {
		return nil, &apperr.UploadError{Reason: "File exceeds the 10MB limit"}
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &apperr.UploadError{Reason: "failed to read uploaded file"}
	}

	return &File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
