package errors

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Token failures are reported by any authenticating middleware placed in
// front of the API. They always map to 401.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Translate maps an arbitrary error onto the client-facing taxonomy.
// Errors that are already *AppError pass through unchanged.
func Translate(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return Wrap(err, CodeConflict, "Duplicate entry found", http.StatusConflict)
	case errors.Is(err, ErrInvalidToken):
		return Unauthorized("Invalid token")
	case errors.Is(err, ErrTokenExpired):
		return Unauthorized("Token expired")
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout("Request timed out")
	default:
		return Internal("Something went wrong!", err)
	}
}
