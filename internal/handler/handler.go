// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/handler/dto"
	"github.com/plazonkr-creator/github-actions-demo-day2/internal/middleware"
)

// Handler serves the router-level fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles requests that match no route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found", "Route "+r.URL.RequestURI()+" not found")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Warn("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError writes the failure envelope.
func writeError(w http.ResponseWriter, status int, errMsg, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// errTrailingData rejects bodies carrying more than one JSON value.
var errTrailingData = errors.New("request body must contain a single JSON object")

// decodeJSON decodes a request body into dst. It reports whether the body was
// usable; on failure the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// Anything after the first value, other than whitespace, is an error.
		var extra json.RawMessage
		if tailErr := dec.Decode(&extra); !errors.Is(tailErr, io.EOF) {
			if middleware.IsBodyTooLarge(tailErr) {
				err = tailErr
			} else {
				err = errTrailingData
			}
		}
	}
	switch {
	case err == nil:
		return true
	case middleware.IsBodyTooLarge(err):
		writeError(w, http.StatusRequestEntityTooLarge, "Payload Too Large", err.Error())
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "Invalid request body", "request body is empty")
	default:
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
	}
	return false
}
