package middleware

import (
	"errors"
	"net/http"

	"solestride/domain"
	"solestride/pkg/logger"
	jsonres "solestride/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler of last resort. Handlers map
// service errors themselves; anything that still escapes (panics
// recovered by echo, unhandled routes, stray domain errors) lands here.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	case domain.IsValidationError(err):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrInsufficientStock):
		code = http.StatusConflict
		message = err.Error()
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err, "path", c.Request().URL.Path)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
