package postly

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// TransactionManager defines the transaction management interface
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PermissionEvaluator defines the permission-evaluation surface used by the
// content gateway and the HTTP layer.
type PermissionEvaluator interface {
	CanMutate(ctx context.Context, userID, subForumID string) (Decision, error)
	CanModerateContent(ctx context.Context, userID string, ref ContentRef) (bool, error)
}

// BanLedger defines the ban subsystem surface.
type BanLedger interface {
	GlobalBan(ctx context.Context, targetUserID, reason string) error
	GlobalUnban(ctx context.Context, targetUserID string) error
	SubForumBanUser(ctx context.Context, subForumID, targetUserID string, durationDays int, reason string) (*SubForumBan, error)
	SubForumUnbanUser(ctx context.Context, subForumID, targetUserID string) error
}

// AssignmentRegistry defines the moderator-assignment surface.
type AssignmentRegistry interface {
	AssignModerator(ctx context.Context, subForumID, targetUserID string) error
	AssignAdmin(ctx context.Context, subForumID, targetUserID string) error
	RemoveAssignment(ctx context.Context, subForumID, targetUserID string) error
}

// HealthMonitor defines the health monitoring interface
type HealthMonitor interface {
	Health(ctx context.Context) dbkit.HealthStatus
	IsHealthy(ctx context.Context) bool
}

// Compile-time checks that Service satisfies the declared surfaces.
var (
	_ TransactionManager  = (*Service)(nil)
	_ PermissionEvaluator = (*Service)(nil)
	_ BanLedger           = (*Service)(nil)
	_ AssignmentRegistry  = (*Service)(nil)
	_ HealthMonitor       = (*Service)(nil)
)
