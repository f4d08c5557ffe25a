package leavehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/leave"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave-requests", func(r chi.Router) {
		r.Get("/employee/{employeeID}", h.handleListForEmployee)
		r.Post("/employee", h.handleSubmit)
		r.Get("/hr/all", h.handleListAll)
		r.Put("/{id}/status", h.handleDecide)
	})
	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.handleListHolidays)
		r.Post("/", h.handleCreateHoliday)
		r.Put("/{id}", h.handleUpdateHoliday)
		r.Delete("/{id}", h.handleDeleteHoliday)
	})
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	requests, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		fail(w, reqID, "leave_requests_failed", err)
		return
	}
	api.Success(w, nonNil(requests))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload leave.RequestInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	if !shared.AllowEmployee(w, r, payload.EmployeeID) {
		return
	}
	created, err := h.Service.Submit(r.Context(), payload)
	if err != nil {
		fail(w, reqID, "leave_request_failed", err)
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	requests, err := h.Service.ListAll(r.Context())
	if err != nil {
		fail(w, reqID, "leave_requests_failed", err)
		return
	}
	api.Success(w, nonNil(requests))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(w, r, reqID, "id")
	if !ok {
		return
	}
	var payload leave.Decision
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	updated, err := h.Service.Decide(r.Context(), id, payload)
	if err != nil {
		fail(w, reqID, "leave_decision_failed", err)
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		slog.Info("leave request decided", "id", id, "status", updated.Status, "by", user.Email)
	}
	api.Success(w, updated)
}

func (h *Handler) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	holidays, err := h.Service.ListHolidays(r.Context())
	if err != nil {
		fail(w, reqID, "holidays_failed", err)
		return
	}
	if holidays == nil {
		holidays = []leave.Holiday{}
	}
	api.Success(w, holidays)
}

func (h *Handler) handleCreateHoliday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload leave.HolidayInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	created, err := h.Service.CreateHoliday(r.Context(), payload)
	if err != nil {
		fail(w, reqID, "holiday_create_failed", err)
		return
	}
	api.Created(w, created)
}

func (h *Handler) handleUpdateHoliday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(w, r, reqID, "id")
	if !ok {
		return
	}
	var payload leave.HolidayInput
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	updated, err := h.Service.UpdateHoliday(r.Context(), id, payload)
	if err != nil {
		fail(w, reqID, "holiday_update_failed", err)
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleDeleteHoliday(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.ParseID(w, r, reqID, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteHoliday(r.Context(), id); err != nil {
		fail(w, reqID, "holiday_delete_failed", err)
		return
	}
	api.NoContent(w)
}

func nonNil(requests []leave.Request) []leave.Request {
	if requests == nil {
		return []leave.Request{}
	}
	return requests
}

func fail(w http.ResponseWriter, reqID, code string, err error) {
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave record not found", reqID)
	case errors.Is(err, leave.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), reqID)
	default:
		slog.Error("leave request failed", "code", code, "err", err)
		api.Fail(w, http.StatusInternalServerError, code, "failed to process leave request", reqID)
	}
}
