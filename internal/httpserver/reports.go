package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avdeenko/aromashop/internal/service"
)

type ReportHandler struct {
	Svc *service.ReportService
}

// Sales returns the admin dashboard aggregates. `from` and `to` are optional
// RFC 3339 dates; the service fills in the default 30-day window.
func (h *ReportHandler) Sales(c echo.Context) error {
	var from, to time.Time
	var err error

	if raw := c.QueryParam("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be RFC 3339")
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be RFC 3339")
		}
	}

	report, err := h.Svc.Sales(c.Request().Context(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
