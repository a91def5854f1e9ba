package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type globalBanRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"` // ban or unban
	Reason string `json:"reason"`
}

func (a *App) GlobalBan(c echo.Context) error {
	var req globalBanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}

	ctx := a.actor(c)
	switch req.Action {
	case "ban":
		if err := a.svc.GlobalBan(ctx, req.UserID, req.Reason); err != nil {
			return a.er(c, err)
		}
	case "unban":
		if err := a.svc.GlobalUnban(ctx, req.UserID); err != nil {
			return a.er(c, err)
		}
	default:
		return badRequest(c, "action must be ban or unban")
	}

	a.l.Info("global ban updated",
		zap.String("user_id", req.UserID),
		zap.String("action", req.Action),
	)

	return c.NoContent(http.StatusOK)
}

type subForumBanRequest struct {
	UserID       string `json:"user_id"`
	SubForumID   string `json:"subforum_id"`
	DurationDays int    `json:"duration_days"`
	Reason       string `json:"reason"`
}

func (a *App) SubForumBan(c echo.Context) error {
	var req subForumBanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}
	if req.SubForumID == "" {
		return badRequest(c, "subforum_id is required")
	}

	ban, err := a.svc.SubForumBanUser(a.actor(c), req.SubForumID, req.UserID, req.DurationDays, req.Reason)
	if err != nil {
		return a.er(c, err)
	}

	a.l.Info("subforum ban placed",
		zap.String("subforum_id", req.SubForumID),
		zap.String("user_id", req.UserID),
		zap.Time("expires_at", ban.ExpiresAt),
	)

	return c.JSON(http.StatusOK, ban)
}

type subForumUnbanRequest struct {
	UserID     string `json:"user_id"`
	SubForumID string `json:"subforum_id"`
}

func (a *App) SubForumUnban(c echo.Context) error {
	var req subForumUnbanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" {
		return badRequest(c, "user_id is required")
	}
	if req.SubForumID == "" {
		return badRequest(c, "subforum_id is required")
	}

	if err := a.svc.SubForumUnbanUser(a.actor(c), req.SubForumID, req.UserID); err != nil {
		return a.er(c, err)
	}

	a.l.Info("subforum ban lifted",
		zap.String("subforum_id", req.SubForumID),
		zap.String("user_id", req.UserID),
	)

	return c.NoContent(http.StatusOK)
}
