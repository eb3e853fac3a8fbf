package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"app/internal/service"
)

// errorResponse is the error body every endpoint returns: a machine-stable
// code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}

// quotaMessage renders the 429 message with the user's actual monthly cap.
func quotaMessage(err error, action string) string {
	var quotaErr *service.QuotaExceededError
	if errors.As(err, &quotaErr) {
		return fmt.Sprintf("Monthly %s limit of %d reached", action, quotaErr.Cap)
	}
	return fmt.Sprintf("Monthly %s limit reached", action)
}
