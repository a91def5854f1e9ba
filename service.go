package postly

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Service implements the forum's authorization and moderation model over a
// dbkit database handle: the role hierarchy, per-subforum assignments, the
// ban ledger, the permission evaluator, and the content mutation gateway.
//
// Error Handling:
// Database operations use dbkit's chainable error wrapping; constraint
// violations are classified with dbkit.IsDuplicate / dbkit.IsNotFound and
// translated into the package's sentinel errors, e.g.:
//
//	_, err := service.SubForumBanUser(ctx, subForumID, userID, 7, "spam")
//	if err != nil {
//	    switch {
//	    case postly.IsForbidden(err):     // 403
//	    case postly.IsValidation(err):    // 400
//	    case postly.IsNotFound(err):      // 404
//	    }
//	}
type Service struct {
	db        dbkit.IDB
	now       func() time.Time
	txMonitor *transactionMonitor
}

// NewService creates a new Postly service.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := postly.NewService(db)
func NewService(db dbkit.IDB) *Service {
	return &Service{
		db:        db,
		now:       time.Now,
		txMonitor: newTransactionMonitor(),
	}
}

// ============================================================================
// AUDIT LOG
// ============================================================================

// GetAuditLog retrieves moderation audit entries with optional filters.
// Only super admins may read the log.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditLogFilter) ([]ModerationAudit, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}
	if actor.User.Role != RoleSuperAdmin {
		return nil, NewError(ErrForbidden, "only super admins may read the audit log").WithActor(actor.User.ID)
	}

	var logs []ModerationAudit
	q := s.db.NewSelect().Model(&logs)
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.TargetUserID != "" {
		q = q.Where("target_user_id = ?", filter.TargetUserID)
	}
	if filter.SubForumID != "" {
		q = q.Where("sub_forum_id = ?", filter.SubForumID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	if err := dbkit.WithErr1(q.Scan(ctx), "GetAuditLog").Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (s *Service) logAudit(ctx context.Context, entry *AuditEntry) error {
	audit := GetAuditContext(ctx)
	entry.IPAddress = audit.IPAddress
	entry.UserAgent = audit.UserAgent
	entry.RequestID = audit.RequestID

	_, err := s.db.NewInsert().Model(entry.ToModel()).Exec(ctx)
	return dbkit.WithErr1(err, "LogAudit").Err()
}
