package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"idms/internal/transport/http/api"
)

// DecodeJSON reads one JSON value into dst. On failure it writes the 400
// and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
	case errors.Is(err, io.EOF):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body is empty", requestID)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload: "+err.Error(), requestID)
	}
	return false
}

// ParseID reads a positive integer URL parameter. On failure it writes the
// 400 and returns false.
func ParseID(w http.ResponseWriter, r *http.Request, requestID, name string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid "+name, requestID)
		return 0, false
	}
	return id, true
}
