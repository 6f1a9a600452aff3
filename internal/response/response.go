// Package response writes JSON responses and maps application errors
// to HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/partnergate/onboarding-backend/internal/apperr"
)

// JSON writes body as JSON with the given status. A nil body writes
// only the status line and headers.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error writes a plain error message envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// FromError maps an error from the service layer to an HTTP response:
// ValidationError -> 400 with every field path, NotFoundError -> 404,
// UploadError -> 400, StorageError -> 400 with backend detail,
// anything else -> 500 with a generic message.
func FromError(w http.ResponseWriter, err error) {
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation error",
			"errors":  vErr.Fields,
		})
		return
	}
	var nfErr *apperr.NotFoundError
	if errors.As(err, &nfErr) {
		Error(w, http.StatusNotFound, nfErr.Error())
		return
	}
	var upErr *apperr.UploadError
	if errors.As(err, &upErr) {
		Error(w, http.StatusBadRequest, upErr.Error())
		return
	}
	var stErr *apperr.StorageError
	if errors.As(err, &stErr) {
		JSON(w, http.StatusBadRequest, map[string]string{
			"message": "Upload failed",
			"details": stErr.Error(),
		})
		return
	}
	log.Printf("[ERROR] unhandled: %v", err)
	Error(w, http.StatusInternalServerError, "Internal server error")
}
