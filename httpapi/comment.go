package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type commentCreateRequest struct {
	PostID        string  `json:"post_id"`
	Content       string  `json:"content"`
	ReplyToUserID *string `json:"reply_to_user_id"`
}

func (a *App) CommentCreate(c echo.Context) error {
	var req commentCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.PostID == "" {
		return badRequest(c, "post_id is required")
	}

	comment, err := a.svc.CreateComment(a.actor(c), req.PostID, req.Content, req.ReplyToUserID)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (a *App) CommentDelete(c echo.Context) error {
	if err := a.svc.DeleteComment(a.actor(c), c.Param("id")); err != nil {
		return a.er(c, err)
	}

	return c.NoContent(http.StatusOK)
}
