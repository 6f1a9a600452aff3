package partner

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/modules/auth"
	"github.com/partnergate/onboarding-backend/internal/response"
)

// Handler exposes partner, approval and stats HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/partners", func(r chi.Router) {
		r.Get("/", h.list)          // GET    /api/partners?userId=
		r.Post("/", h.create)       // POST   /api/partners
		r.Get("/{id}", h.get)       // GET    /api/partners/{id}
		r.Patch("/{id}", h.update)  // PATCH  /api/partners/{id}
		r.Delete("/{id}", h.delete) // DELETE /api/partners/{id}
	})
	r.Route("/api/approvals", func(r chi.Router) {
		r.Get("/", h.listApprovals)                          // GET  /api/approvals
		r.Get("/pending", h.pendingApprovals)                // GET  /api/approvals/pending
		r.Get("/completed-this-month", h.completedThisMonth) // GET  /api/approvals/completed-this-month
		r.Post("/{partnerId}", h.decide)                     // POST /api/approvals/{partnerId}
	})
	r.Get("/api/stats", h.stats) // GET /api/stats
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	partners, err := h.service.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if partners == nil {
		partners = []*Partner{}
	}
	response.JSON(w, http.StatusOK, partners)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	// A submission made by a logged-in user is owned by that user.
	if req.UserID == "" {
		if uid, ok := auth.UserIDFromContext(r.Context()); ok {
			req.UserID = uid.String()
		}
	}
	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	var approverID *uuid.UUID
	if uid, ok := auth.UserIDFromContext(r.Context()); ok {
		approverID = &uid
	}
	a, err := h.service.Decide(r.Context(), chi.URLParam(r, "partnerId"), approverID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

func (h *Handler) listApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := h.service.ListApprovals(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if approvals == nil {
		approvals = []*Approval{}
	}
	response.JSON(w, http.StatusOK, approvals)
}

func (h *Handler) pendingApprovals(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.service.PendingApprovals(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, enriched)
}

func (h *Handler) completedThisMonth(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.service.CompletedThisMonth(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, enriched)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
