package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/logging"
	"github.com/avdeenko/aromashop/internal/service"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeDomainError maps the service taxonomy onto HTTP statuses. Anything
// outside the taxonomy becomes an opaque 500: internals never reach the
// client.
func writeDomainError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	default:
		logging.FromContext(c.Request().Context()).Error("internal error", "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody{
			Status:  "error",
			Message: "internal error",
		})
	}
	return c.JSON(code, errorBody{Status: "error", Message: err.Error()})
}

// HTTPErrorHandler keeps unexpected errors opaque while preserving echo's
// HTTPError semantics for the middleware-generated ones.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, errorBody{Status: "error", Message: msg})
		return
	}
	logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	_ = c.JSON(http.StatusInternalServerError, errorBody{Status: "error", Message: "internal error"})
}
