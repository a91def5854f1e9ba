package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/postlyhq/postly"
)

// auditContext stamps every request with the metadata the moderation audit
// log records: a request ID, the caller's IP, and the user agent.
func (a *App) auditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = postly.WithRequestID(ctx, uuid.NewString())
			ctx = postly.WithIPAddress(ctx, c.RealIP())
			ctx = postly.WithUserAgent(ctx, c.Request().UserAgent())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// actor resolves the bearer token to a user ID and returns a context carrying
// it. Requests without a valid, unrevoked token get an anonymous context; the
// service decides whether the operation requires an actor.
func (a *App) actor(c echo.Context) context.Context {
	ctx := c.Request().Context()

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(auth, "bearer ")
	if !found {
		token, found = strings.CutPrefix(auth, "Bearer ")
	}
	if !found || token == "" {
		return ctx
	}

	session, err := a.jwt.ParseSession(token)
	if err != nil {
		return ctx
	}
	if session.Expires < time.Now().Unix() {
		return ctx
	}

	// Tokens revoked by logout sit in redis until they expire on their own.
	if n, err := a.rdb.Exists(ctx, revokedKey(session.TokenID)).Result(); err == nil && n > 0 {
		return ctx
	}

	return postly.WithActorID(ctx, session.UserID)
}

func revokedKey(tokenID string) string {
	return "postly:revoked:" + tokenID
}
