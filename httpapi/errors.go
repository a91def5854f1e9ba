package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/postlyhq/postly"
)

// er writes the denial or failure as a JSON body. Permission and validation
// errors carry their client-facing message in the detail field; anything we
// don't recognize becomes a 500 with a generic body so internals stay hidden.
func (a *App) er(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch {
	case postly.IsUnauthenticated(err):
		status = http.StatusUnauthorized
		detail = "authentication required"
	case postly.IsForbidden(err):
		status = http.StatusForbidden
		detail = postly.Detail(err)
	case postly.IsValidation(err):
		status = http.StatusBadRequest
		detail = postly.Detail(err)
	case postly.IsNotFound(err):
		status = http.StatusNotFound
		detail = postly.Detail(err)
	default:
		a.l.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(status, echo.Map{"detail": detail})
}

// badRequest reports a binding or input problem before the service is reached.
func badRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"detail": detail})
}
