// Package httpapi exposes the forum over HTTP. Handlers bind requests,
// resolve the acting user from the bearer token, and delegate every decision
// to the postly service; denial errors map onto 401/403/400/404 responses.
package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/postlyhq/postly"
	"github.com/postlyhq/postly/jwt"
)

type App struct {
	l   *zap.Logger
	svc *postly.Service
	rdb *redis.Client // revoked-token list
	jwt *jwt.JWT
}

func NewApp(l *zap.Logger, svc *postly.Service, rdb *redis.Client, j *jwt.JWT) *App {
	return &App{
		l:   l,
		svc: svc,
		rdb: rdb,
		jwt: j,
	}
}

// Register binds all routes onto the echo instance.
func (a *App) Register(e *echo.Echo) {
	e.Use(a.auditContext())

	e.GET("/healthz", a.HealthCheck)

	api := e.Group("/api")

	api.POST("/auth/register", a.AuthRegister)
	api.POST("/auth/login", a.AuthLogin)
	api.POST("/auth/logout", a.AuthLogout)

	api.GET("/users/:id", a.UserGet)

	api.GET("/subforums", a.SubForumList)
	api.POST("/subforums", a.SubForumCreate)
	api.GET("/subforums/mine", a.SubForumMine)
	api.GET("/subforums/:id", a.SubForumGet)
	api.GET("/subforums/:id/posts", a.SubForumPosts)
	api.GET("/subforums/:id/moderators", a.ModeratorList)
	api.POST("/subforums/:id/moderators", a.ModeratorAssign)
	api.POST("/subforums/:id/admins", a.AdminAssign)
	api.POST("/subforums/:id/moderators/remove", a.ModeratorRemove)
	api.GET("/subforums/:id/bans", a.SubForumBans)

	api.POST("/bans/global", a.GlobalBan)
	api.POST("/bans/subforum", a.SubForumBan)
	api.POST("/bans/subforum/unban", a.SubForumUnban)

	api.POST("/posts", a.PostCreate)
	api.GET("/posts/:id", a.PostGet)
	api.PUT("/posts/:id", a.PostUpdate)
	api.DELETE("/posts/:id", a.PostDelete)
	api.GET("/posts/:id/comments", a.PostComments)

	api.POST("/comments", a.CommentCreate)
	api.DELETE("/comments/:id", a.CommentDelete)

	api.POST("/votes", a.VoteCreate)

	api.GET("/audit", a.AuditLog)
}
