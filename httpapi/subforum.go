package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type subForumCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
}

func (a *App) SubForumCreate(c echo.Context) error {
	var req subForumCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	sf, err := a.svc.CreateSubForum(a.actor(c), req.Name, req.Description, req.Rules)
	if err != nil {
		return a.er(c, err)
	}

	a.l.Info("subforum created",
		zap.String("subforum_id", sf.ID),
		zap.String("name", sf.Name),
	)

	return c.JSON(http.StatusCreated, sf)
}

func (a *App) SubForumList(c echo.Context) error {
	subforums, err := a.svc.ListSubForums(c.Request().Context())
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, subforums)
}

func (a *App) SubForumGet(c echo.Context) error {
	sf, err := a.svc.GetSubForum(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, sf)
}

// SubForumMine lists the subforums the caller administers.
func (a *App) SubForumMine(c echo.Context) error {
	subforums, err := a.svc.GetAdministeredSubForums(a.actor(c))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, subforums)
}

func (a *App) SubForumPosts(c echo.Context) error {
	posts, err := a.svc.ListPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, posts)
}

func (a *App) SubForumBans(c echo.Context) error {
	bans, err := a.svc.GetActiveBans(a.actor(c), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, bans)
}
