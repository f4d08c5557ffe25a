package financehandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/finance"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *finance.Service
}

func NewHandler(service *finance.Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts one CRUD collection per expense resource.
func (h *Handler) RegisterRoutes(r chi.Router) {
	for _, res := range finance.Resources {
		r.Route("/"+res.Name, func(r chi.Router) {
			r.Get("/", h.handleList(res))
			r.Post("/", h.handleCreate(res))
			r.Get("/export/pdf", h.handleExport(res))
			r.Put("/{id}", h.handleUpdate(res))
			r.Delete("/{id}", h.handleDelete(res))
		})
	}
}

func (h *Handler) handleList(res finance.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		items, err := h.Service.List(r.Context(), res)
		if err != nil {
			fail(w, reqID, res, err)
			return
		}
		body, err := finance.MarshalExpenses(res, items)
		if err != nil {
			fail(w, reqID, res, err)
			return
		}
		api.WriteRaw(w, http.StatusOK, body)
	}
}

func (h *Handler) handleCreate(res finance.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		in, ok := decodeInput(w, r, reqID, res)
		if !ok {
			return
		}
		created, err := h.Service.Create(r.Context(), res, in)
		if err != nil {
			fail(w, reqID, res, err)
			return
		}
		writeExpense(w, reqID, res, http.StatusCreated, created)
	}
}

func (h *Handler) handleUpdate(res finance.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		id, ok := shared.ParseID(w, r, reqID, "id")
		if !ok {
			return
		}
		in, ok := decodeInput(w, r, reqID, res)
		if !ok {
			return
		}
		updated, err := h.Service.Update(r.Context(), res, id, in)
		if err != nil {
			fail(w, reqID, res, err)
			return
		}
		writeExpense(w, reqID, res, http.StatusOK, updated)
	}
}

func (h *Handler) handleDelete(res finance.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		id, ok := shared.ParseID(w, r, reqID, "id")
		if !ok {
			return
		}
		if err := h.Service.Delete(r.Context(), res, id); err != nil {
			fail(w, reqID, res, err)
			return
		}
		api.NoContent(w)
	}
}

func (h *Handler) handleExport(res finance.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.Name+`.pdf"`)
		if err := h.Service.Report(r.Context(), res, w); err != nil {
			slog.Error("finance export failed", "resource", res.Name, "err", err)
			w.Header().Del("Content-Disposition")
			api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		}
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request, reqID string, res finance.Resource) (finance.ExpenseInput, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
			return finance.ExpenseInput{}, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return finance.ExpenseInput{}, false
	}
	in, err := finance.UnmarshalInput(res, raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
		return finance.ExpenseInput{}, false
	}
	if !shared.Validate(w, reqID, in) {
		return finance.ExpenseInput{}, false
	}
	return in, true
}

func writeExpense(w http.ResponseWriter, reqID string, res finance.Resource, status int, e finance.Expense) {
	body, err := finance.MarshalExpense(res, e)
	if err != nil {
		fail(w, reqID, res, err)
		return
	}
	api.WriteRaw(w, status, body)
}

func fail(w http.ResponseWriter, reqID string, res finance.Resource, err error) {
	switch {
	case errors.Is(err, finance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", res.Label+" entry not found", reqID)
	case errors.Is(err, finance.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	default:
		slog.Error("finance request failed", "resource", res.Name, "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to process "+res.Label, reqID)
	}
}
