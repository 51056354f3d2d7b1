// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// InternalErrorMessage replaces the message of any 5xx response so storage
// and driver details never reach the client.
const InternalErrorMessage = "internal server error"

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body written for successful commands that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage writes a {"message": ...} body with the given status code.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// RespondError logs err and writes an {"error": ...} body. Server errors are
// logged at error level and reported with a generic message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		RespondJSON(w, status, ErrorResponse{Error: InternalErrorMessage})
		return
	}

	logger.Debug("request rejected", "status", status, "error", err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}
