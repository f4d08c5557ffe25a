package documenthandler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"idms/internal/domain/document"
	"idms/internal/transport/http/api"
	"idms/internal/transport/http/middleware"
	"idms/internal/transport/http/shared"
)

const fileField = "file"

type Handler struct {
	Service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/hr", func(r chi.Router) {
		r.Get("/documents", h.handleList)
		r.Get("/documents/employee/{employeeID}", h.handleListForEmployee)
		r.Delete("/documents/{id}", h.handleDelete)
		r.Post("/upload/{docType}/{employeeID}", h.handleUpload)
		r.Put("/upload/{docType}/{employeeID}", h.handleUpload)
		r.Get("/download/{employeeID}/{docType}", h.handleDownload)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	docs, err := h.Service.List(r.Context())
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(docs))
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	docs, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		fail(w, reqID, err)
		return
	}
	api.Success(w, nonNil(docs))
}

// handleUpload takes a multipart body with the file under "file".
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
			return
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "multipart field \"file\" is required", reqID)
		return
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, document.MaxFileBytes+1))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "failed to read upload", reqID)
		return
	}
	doc, err := h.Service.Upload(r.Context(), document.Upload{
		EmployeeID:   employeeID,
		DocumentType: chi.URLParam(r, "docType"),
		FileName:     header.Filename,
		FileType:     header.Header.Get("Content-Type"),
		Content:      content,
	})
	if err != nil {
		fail(w, reqID, err)
		return
	}
	slog.Info("document uploaded", "employee_id", doc.EmployeeID, "type", doc.DocumentType, "size", doc.Size)
	api.Success(w, doc)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.AllowEmployee(w, r, employeeID) {
		return
	}
	f, err := h.Service.Download(r.Context(), employeeID, chi.URLParam(r, "docType"))
	if err != nil {
		fail(w, reqID, err)
		return
	}
	w.Header().Set("Content-Type", f.FileType)
	w.Header().Set("Content-Length", strconv.FormatInt(int64(len(f.Content)), 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.OriginalFileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Content)
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

func nonNil(docs []document.Document) []document.Document {
	if docs == nil {
		return []document.Document{}
	}
	return docs
}

func fail(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, document.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "document not found", reqID)
	case errors.Is(err, document.ErrTooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "file too large", reqID)
	case errors.Is(err, document.ErrInvalidInput):
		shared.FailInvalid(w, reqID, err)
	default:
		slog.Error("document request failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "document_failed", "failed to process document", reqID)
	}
}
