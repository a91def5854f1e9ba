package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/postlyhq/postly"
	"github.com/postlyhq/postly/jwt"
)

const sessionTTL = 7 * 24 * time.Hour

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IsBanned bool   `json:"is_banned"`
}

func toUserResponse(u *postly.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		IsBanned: u.IsBanned,
	}
}

func (a *App) AuthRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := a.svc.RegisterUser(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return a.er(c, err)
	}

	a.l.Info("user registered", zap.String("user_id", user.ID))

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (a *App) AuthLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := a.svc.AuthenticateUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return a.er(c, err)
	}

	session := &jwt.Session{
		UserID:  user.ID,
		TokenID: uuid.NewString(),
		Expires: time.Now().Add(sessionTTL).Unix(),
	}
	token, err := a.jwt.SignSession(session)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (a *App) UserGet(c echo.Context) error {
	user, err := a.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// AuthLogout revokes the presented token. The jti is kept in redis for the
// token's remaining lifetime; expired entries fall out on their own.
func (a *App) AuthLogout(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token := auth
	if len(auth) > 7 && (auth[:7] == "bearer " || auth[:7] == "Bearer ") {
		token = auth[7:]
	}

	session, err := a.jwt.ParseSession(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "authentication required"})
	}

	ttl := time.Until(time.Unix(session.Expires, 0))
	if ttl > 0 {
		if err := a.rdb.Set(c.Request().Context(), revokedKey(session.TokenID), 1, ttl).Err(); err != nil {
			return a.er(c, err)
		}
	}

	return c.NoContent(http.StatusOK)
}
