package performancehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/performance"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance-reviews", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/employee/{employeeID}", h.handleListForEmployee)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	reviews, err := h.Service.List(r.Context())
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(reviews))
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	reviews, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(reviews))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload performance.Input
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(w, r, reqID, "id")
	if !ok {
		return
	}
	var payload performance.Input
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	updated, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(w, r, reqID, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		fail(w, reqID, err)
		return
	}
	api.NoContent(w)
}

func nonNil(reviews []performance.Review) []performance.Review {
	if reviews == nil {
		return []performance.Review{}
	}
	return reviews
}

func fail(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, performance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "performance review not found", reqID)
	case errors.Is(err, performance.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	default:
		slog.Error("performance review request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "performance_review_failed", "failed to process performance review", reqID)
	}
}
