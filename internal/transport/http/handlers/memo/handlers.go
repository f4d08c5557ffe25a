package memohandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/memo"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

type Handler struct {
	Service *memo.Service
}

func NewHandler(service *memo.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/memos", func(r chi.Router) {
		r.Get("/employee/{employeeID}", h.handleFeed)
		r.Post("/", h.handleSend)
	})
}

// handleFeed lists the memos addressed to one employee. The optional
// department query widens the feed to department-wide memos.
func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	memos, err := h.Service.Feed(r.Context(), memo.Audience{
		EmployeeID: employeeID,
		Department: strings.TrimSpace(r.URL.Query().Get("department")),
	})
	if err != nil {
		fail(w, reqID, err)
		return
	}
	if memos == nil {
		memos = []memo.Memo{}
	}
	api.Success(w, memos)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload memo.Input
	if !shared.DecodeJSON(w, r, reqID, &payload) {
		return
	}
	if !shared.Validate(w, reqID, payload) {
		return
	}
	if payload.SentBy == "" {
		if user, ok := middleware.GetUser(r.Context()); ok {
			payload.SentBy = user.EmployeeID
			if payload.SentByName == "" {
				payload.SentByName = user.Email
			}
		}
	}
	created, err := h.Service.Send(r.Context(), payload)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Created(w, created)
}

func fail(w http.ResponseWriter, reqID string, err error) {
	if errors.Is(err, memo.ErrInvalidInput) {
		shared.FailInvalid(w, reqID, err)
		return
	}
	slog.Error("memo request failed", "err", err)
	api.Fail(w, http.StatusInternalServerError, "memo_failed", "failed to process memo", reqID)
}
