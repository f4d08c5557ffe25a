package assethandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/asset"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *asset.Service
}

func NewHandler(service *asset.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/employee/{employeeID}", h.handleListForEmployee)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	assets, err := h.Service.List(r.Context())
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(assets))
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	assets, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(assets))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload asset.Input
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
	var payload asset.Input
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

func nonNil(assets []asset.Asset) []asset.Asset {
	if assets == nil {
		return []asset.Asset{}
	}
	return assets
}

func fail(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, asset.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "asset not found", reqID)
	case errors.Is(err, asset.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "duplicate", "serial number already registered", reqID)
	case errors.Is(err, asset.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	default:
		slog.Error("asset request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "asset_failed", "failed to process asset", reqID)
	}
}
