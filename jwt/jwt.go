// Package jwt signs and parses the stateless session tokens used by the HTTP
// layer. Authorization state (role, bans) is never embedded in the token; it
// is loaded fresh per request so moderation takes effect immediately.
package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key []byte
}

// Session identifies an authenticated user. TokenID is the jti claim,
// recorded in the revocation list on logout.
type Session struct {
	UserID  string
	TokenID string
	Expires int64 // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseSession(tokenString string) (*Session, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	session := &Session{}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub claim")
	}
	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, errors.New("invalid jti claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("invalid exp claim")
	}

	session.UserID = sub
	session.TokenID = jti
	session.Expires = int64(exp)

	return session, nil
}

func (j *JWT) SignSession(session *Session) (string, error) {
	claims := jwt.MapClaims{
		"sub": session.UserID,
		"jti": session.TokenID,
		"exp": session.Expires,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(j.key)
}
