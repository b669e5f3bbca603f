package middleware

import (
	"encoding/json"
	"net/http"
)

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeFailure emits the API error envelope for responses produced by the
// middleware itself, before a handler runs.
func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureBody{Success: false, Message: message})
}
