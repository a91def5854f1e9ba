package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postlyhq/postly"
)

// AuditLog returns moderation audit entries, newest first. Filters come in
// as query parameters; the service enforces who may read the log.
func (a *App) AuditLog(c echo.Context) error {
	filter := postly.AuditLogFilter{}

	if v := c.QueryParam("actor_id"); v != "" {
		filter = filter.WithActor(v)
	}
	if v := c.QueryParam("target_user_id"); v != "" {
		filter = filter.WithTargetUser(v)
	}
	if v := c.QueryParam("subforum_id"); v != "" {
		filter = filter.WithSubForum(v)
	}
	if v := c.QueryParam("action"); v != "" {
		filter = filter.WithAction(v)
	}
	limit, offset := 0, 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return badRequest(c, "offset must be a non-negative integer")
		}
		offset = n
	}
	if limit > 0 || offset > 0 {
		filter = filter.WithPagination(limit, offset)
	}

	entries, err := a.svc.GetAuditLog(a.actor(c), filter)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, entries)
}
