package http

import (
	"encoding/json"
	"net/http"

	apperrors "carwash/pkg/errors"
	"carwash/pkg/model"
)

// Response is the success envelope. Data is omitted only for bodies that
// carry none, such as a delete confirmation.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// DataResponse always renders data, so an empty result is "[]" rather than
// a missing key.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type PaginatedResponse struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	return apperrors.WriteError(w, err)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, DataResponse{Success: true, Data: data})
}

func WriteCreated(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func WriteMessage(w http.ResponseWriter, message string, data any) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func WritePaginated(w http.ResponseWriter, data any, pagination model.Pagination) error {
	return WriteJSON(w, http.StatusOK, PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}
