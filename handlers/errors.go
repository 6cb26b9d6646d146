package handlers

import (
	"errors"
	"log"
	"net/http"

	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the error code + human message pair every failed
// request resolves to.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps the service error taxonomy onto HTTP responses. The
// fallback hides internal detail behind a generic message; the real
// error is logged server-side only.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, services.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
	case errors.Is(err, services.ErrNoColumns):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "no_columns", Message: err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()})
	default:
		log.Printf("Unexpected error handling %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An unexpected error occurred",
		})
	}
}
