package rest

import (
	"errors"
	"net/http"

	"solestride/domain"
)

type ResponseError struct {
	Message string `json:"message"`
}

// errorStatus maps the domain error classes onto HTTP status codes so
// every handler reports service failures the same way.
func errorStatus(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
