package postly

import (
	"errors"
	"fmt"
)

// Sentinel errors for Postly operations. The HTTP layer maps these onto
// status codes: ErrUnauthenticated=401, ErrForbidden=403, ErrValidation=400,
// ErrNotFound=404.
var (
	// ErrUnauthenticated is returned when an operation requires an actor and
	// none is present in the context.
	ErrUnauthenticated = errors.New("postly: unauthenticated")

	// ErrForbidden is returned when the actor lacks the authority for an
	// action (rank, assignment, or ban state).
	ErrForbidden = errors.New("postly: forbidden")

	// ErrValidation is returned on malformed input or a business-rule
	// violation such as a rank-hierarchy failure.
	ErrValidation = errors.New("postly: validation failed")

	// ErrNotFound is returned when a referenced user, subforum, post,
	// comment, or ban does not exist.
	ErrNotFound = errors.New("postly: not found")

	// ErrAlreadyAssigned is returned when assigning a moderator or admin to a
	// (user, subforum) pair that already has an assignment.
	ErrAlreadyAssigned = errors.New("postly: already assigned")

	// ErrNotAssigned is returned when removing an assignment that does not exist.
	ErrNotAssigned = errors.New("postly: not assigned")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("postly: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err        error  // Underlying sentinel error
	Message    string // Additional context, surfaced as the HTTP detail string
	SubForumID string // Subforum involved (if applicable)
	UserID     string // Target user involved (if applicable)
	ActorID    string // Actor who triggered the error (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithSubForum adds subforum information to the error.
func (e *Error) WithSubForum(subForumID string) *Error {
	e.SubForumID = subForumID
	return e
}

// WithUser adds target user information to the error.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithActor adds actor information to the error.
func (e *Error) WithActor(actorID string) *Error {
	e.ActorID = actorID
	return e
}

// Detail returns the message intended for API clients, falling back to the
// sentinel text when no message was attached.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// IsForbidden checks if an error is an authorization failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if an error is a validation or business-rule failure.
// Duplicate-assignment and missing-assignment failures count as validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrAlreadyAssigned) ||
		errors.Is(err, ErrNotAssigned)
}

// IsNotFound checks if an error refers to a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthenticated checks if an error is due to a missing actor.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
