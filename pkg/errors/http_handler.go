package errors

import (
	"encoding/json"
	"net/http"
)

// WriteError translates err and writes the failure envelope.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := Translate(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	return json.NewEncoder(w).Encode(appErr.Response())
}
