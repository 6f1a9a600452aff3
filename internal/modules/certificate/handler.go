package certificate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/response"
	"github.com/partnergate/onboarding-backend/internal/upload"
)

// Handler exposes certificate HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/certificates", func(r chi.Router) {
		r.Get("/", h.list)          // GET    /api/certificates?userId=
		r.Post("/", h.upload)       // POST   /api/certificates
		r.Get("/{id}", h.get)       // GET    /api/certificates/{id}
		r.Delete("/{id}", h.delete) // DELETE /api/certificates/{id}
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	certs, err := h.service.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if certs == nil {
		certs = []*Certificate{}
	}
	response.JSON(w, http.StatusOK, certs)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid certificate id")
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, c)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	file, err := upload.ReadFile(r, "file")
	if err != nil {
		response.FromError(w, err)
		return
	}

	c, err := h.service.Upload(r.Context(), UploadRequest{
		UserID:       r.FormValue("userId"),
		FileName:     file.Name,
		ContentType:  file.ContentType,
		DocumentType: r.FormValue("documentType"),
		Alias:        r.FormValue("alias"),
		Description:  r.FormValue("description"),
		Content:      file.Content,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid certificate id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}
