package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postlyhq/postly"
)

type voteRequest struct {
	TargetType string `json:"target_type"` // post or comment
	TargetID   string `json:"target_id"`
}

type voteResponse struct {
	Vote  *postly.Vote `json:"vote"`
	Count int          `json:"count"`
}

// VoteCreate records a like on a post or comment. A first vote answers 201;
// repeating it answers 200 with the existing vote.
func (a *App) VoteCreate(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.TargetID == "" {
		return badRequest(c, "target_id is required")
	}

	ctx := a.actor(c)
	kind := postly.ContentKind(req.TargetType)

	vote, created, err := a.svc.CreateVote(ctx, kind, req.TargetID)
	if err != nil {
		return a.er(c, err)
	}

	count, err := a.svc.CountVotes(ctx, kind, req.TargetID)
	if err != nil {
		return a.er(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return c.JSON(status, voteResponse{Vote: vote, Count: count})
}
