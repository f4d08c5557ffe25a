package attendancehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/attendance"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/employee/{employeeID}", h.handleList)
		r.Post("/mark", h.handleMark)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	records, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	api.Success(w, records)
}

func (h *Handler) handleMark(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload attendance.Mark
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	if !shared.AllowEmployee(w, r, payload.EmployeeID) {
		return
	}
	record, err := h.Service.Mark(r.Context(), payload)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, record)
}

func fail(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", reqID)
	case errors.Is(err, attendance.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	case errors.Is(err, attendance.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	default:
		slog.Error("attendance request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to process attendance", reqID)
	}
}
