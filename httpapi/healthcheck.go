package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) HealthCheck(c echo.Context) error {
	if !a.svc.IsHealthy(c.Request().Context()) {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
