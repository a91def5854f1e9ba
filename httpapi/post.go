package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postlyhq/postly"
)

type postCreateRequest struct {
	SubForumID string `json:"subforum_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Format     string `json:"format"`
}

func (a *App) PostCreate(c echo.Context) error {
	var req postCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.SubForumID == "" {
		return badRequest(c, "subforum_id is required")
	}

	format := postly.PostFormat(req.Format)
	if req.Format == "" {
		format = postly.FormatMarkdown
	}

	post, err := a.svc.CreatePost(a.actor(c), req.SubForumID, req.Title, req.Content, format)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusCreated, post)
}

func (a *App) PostGet(c echo.Context) error {
	post, err := a.svc.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

type postUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *App) PostUpdate(c echo.Context) error {
	var req postUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	post, err := a.svc.UpdatePost(a.actor(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

func (a *App) PostDelete(c echo.Context) error {
	if err := a.svc.DeletePost(a.actor(c), c.Param("id")); err != nil {
		return a.er(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (a *App) PostComments(c echo.Context) error {
	comments, err := a.svc.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, comments)
}
