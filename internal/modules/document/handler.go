package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/response"
	"github.com/partnergate/onboarding-backend/internal/upload"
)

// Handler exposes document HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/documents", h.listAll)                               // GET    /api/documents
	r.Delete("/api/documents/{id}", h.delete)                        // DELETE /api/documents/{id}
	r.Get("/api/partners/{partnerId}/documents", h.listByPartner)    // GET    /api/partners/{partnerId}/documents
	r.Post("/api/partners/{partnerId}/documents", h.uploadToPartner) // POST   /api/partners/{partnerId}/documents
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if docs == nil {
		docs = []*Document{}
	}
	response.JSON(w, http.StatusOK, docs)
}

func (h *Handler) listByPartner(w http.ResponseWriter, r *http.Request) {
	partnerID, err := uuid.Parse(chi.URLParam(r, "partnerId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid partner id")
		return
	}
	docs, err := h.service.ListByPartner(r.Context(), partnerID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if docs == nil {
		docs = []*Document{}
	}
	response.JSON(w, http.StatusOK, docs)
}

func (h *Handler) uploadToPartner(w http.ResponseWriter, r *http.Request) {
	partnerID, err := uuid.Parse(chi.URLParam(r, "partnerId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	file, err := upload.ReadFile(r, "file")
	if err != nil {
		response.FromError(w, err)
		return
	}

	d, err := h.service.Upload(r.Context(), partnerID, UploadRequest{
		FileName:     file.Name,
		ContentType:  file.ContentType,
		DocumentType: r.FormValue("documentType"),
		Content:      file.Content,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, d)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid document id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
