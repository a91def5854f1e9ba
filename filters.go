package postly

import "time"

// AuditLogFilter provides options for filtering moderation audit queries.
type AuditLogFilter struct {
	// Filter by actor who performed the action
	ActorID string

	// Filter by target user of the action
	TargetUserID string

	// Filter by subforum
	SubForumID string

	// Filter by action name (e.g. AuditSubForumBan)
	Action string

	// Filter by time range
	Since time.Time
	Until time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewAuditLogFilter creates a new AuditLogFilter with default values.
func NewAuditLogFilter() AuditLogFilter {
	return AuditLogFilter{
		Limit: 100,
	}
}

// WithActor sets the actor ID filter.
func (f AuditLogFilter) WithActor(actorID string) AuditLogFilter {
	f.ActorID = actorID
	return f
}

// WithTargetUser sets the target user ID filter.
func (f AuditLogFilter) WithTargetUser(userID string) AuditLogFilter {
	f.TargetUserID = userID
	return f
}

// WithSubForum sets the subforum filter.
func (f AuditLogFilter) WithSubForum(subForumID string) AuditLogFilter {
	f.SubForumID = subForumID
	return f
}

// WithAction sets the action filter.
func (f AuditLogFilter) WithAction(action string) AuditLogFilter {
	f.Action = action
	return f
}

// WithTimeRange sets the time range filter.
func (f AuditLogFilter) WithTimeRange(since, until time.Time) AuditLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithPagination sets both limit and offset.
func (f AuditLogFilter) WithPagination(limit, offset int) AuditLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
