package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type assignmentRequest struct {
	UserID string `json:"user_id"`
}

func (a *App) ModeratorList(c echo.Context) error {
	assignments, err := a.svc.GetSubForumModerators(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, assignments)
}

func (a *App) ModeratorAssign(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	subForumID := c.Param("id")
	if err := a.svc.AssignModerator(a.actor(c), subForumID, req.UserID); err != nil {
		return a.er(c, err)
	}

	a.l.Info("moderator assigned",
		zap.String("subforum_id", subForumID),
		zap.String("user_id", req.UserID),
	)

	return c.NoContent(http.StatusOK)
}

func (a *App) AdminAssign(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	subForumID := c.Param("id")
	if err := a.svc.AssignAdmin(a.actor(c), subForumID, req.UserID); err != nil {
		return a.er(c, err)
	}

	a.l.Info("admin assigned",
		zap.String("subforum_id", subForumID),
		zap.String("user_id", req.UserID),
	)

	return c.NoContent(http.StatusOK)
}

func (a *App) ModeratorRemove(c echo.Context) error {
	var req assignmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	subForumID := c.Param("id")
	if err := a.svc.RemoveAssignment(a.actor(c), subForumID, req.UserID); err != nil {
		return a.er(c, err)
	}

	a.l.Info("assignment removed",
		zap.String("subforum_id", subForumID),
		zap.String("user_id", req.UserID),
	)

	return c.NoContent(http.StatusOK)
}
