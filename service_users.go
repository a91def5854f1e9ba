package postly

import (
	"context"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// USERS
// ============================================================================

// RegisterUser creates a platform account with the default rank. The password
// is stored as an argon2id hash.
func (s *Service) RegisterUser(ctx context.Context, username, email, password string) (*User, error) {
	s = s.inTx(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, NewError(ErrValidation, "username and password are required")
	}
	if len(password) < 8 {
		return nil, NewError(ErrValidation, "password must be at least 8 characters")
	}

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to hash password")
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
	}

	result, err := s.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err = dbkit.WithErr(result, err, "CreateUser").Err(); err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrValidation, "username already taken")
		}
		return nil, NewError(ErrDatabaseError, "failed to create user")
	}

	return user, nil
}

// AuthenticateUser verifies a username/password pair and returns the account.
// Banned users still authenticate; the ban surfaces when they try to mutate
// content.
func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (*User, error) {
	s = s.inTx(ctx)

	user, err := s.getUserByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			return nil, NewError(ErrUnauthenticated, "invalid credentials")
		}
		return nil, err
	}

	match, _, err := argon2id.CheckHash(password, user.PasswordHash)
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to check password")
	}
	if !match {
		return nil, NewError(ErrUnauthenticated, "invalid credentials")
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.getUser(ctx, userID)
}
