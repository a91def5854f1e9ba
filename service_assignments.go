package postly

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// MODERATOR ASSIGNMENTS
// ============================================================================

// AssignModerator grants a user moderator capability in a subforum.
// The actor must be a super_admin or hold an admin assignment there. A target
// that already has any assignment on the pair (moderator or admin) fails with
// ErrAlreadyAssigned.
//
// Example:
//
//	err := service.AssignModerator(ctx, subForumID, targetUserID)
func (s *Service) AssignModerator(ctx context.Context, subForumID, targetUserID string) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return err
	}
	if _, err := s.getUser(ctx, targetUserID); err != nil {
		return err
	}

	if actor.User.Role != RoleSuperAdmin && !actor.IsAdminOf(subForumID) {
		return NewError(ErrForbidden, "you don't have permission to assign moderators").
			WithSubForum(subForumID).
			WithActor(actor.User.ID)
	}

	existing, err := s.getAssignment(ctx, targetUserID, subForumID)
	if err != nil {
		return err
	}
	if existing != nil {
		return NewError(ErrAlreadyAssigned, "user is already a moderator of this subforum").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}

	assignment := &ModeratorAssignment{
		UserID:     targetUserID,
		SubForumID: subForumID,
		AssignedBy: actor.User.ID,
		IsAdmin:    false,
	}
	result, err := s.db.NewInsert().Model(assignment).Exec(ctx)
	if err = dbkit.WithErr(result, err, "CreateAssignment").Err(); err != nil {
		if dbkit.IsDuplicate(err) {
			// Lost the race against a concurrent assignment on the same pair.
			return NewError(ErrAlreadyAssigned, "user is already a moderator of this subforum").
				WithSubForum(subForumID).
				WithUser(targetUserID)
		}
		return NewError(ErrDatabaseError, "failed to create assignment").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       AuditAssignModerator,
		TargetUserID: targetUserID,
		SubForumID:   subForumID,
	}) // log error but don't fail the assignment

	return nil
}

// AssignAdmin grants a user admin capability in a subforum. Strict top-down
// control: only a super_admin may appoint subforum admins. A target that
// already holds an admin assignment fails with ErrAlreadyAssigned; an
// existing moderator assignment is upgraded in place.
func (s *Service) AssignAdmin(ctx context.Context, subForumID, targetUserID string) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	if actor.User.Role != RoleSuperAdmin {
		return NewError(ErrForbidden, "only super admins can assign subforum admins").
			WithSubForum(subForumID).
			WithActor(actor.User.ID)
	}

	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return err
	}
	if _, err := s.getUser(ctx, targetUserID); err != nil {
		return err
	}

	existing, err := s.getAssignment(ctx, targetUserID, subForumID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin {
			return NewError(ErrAlreadyAssigned, "user is already an admin of this subforum").
				WithSubForum(subForumID).
				WithUser(targetUserID)
		}

		// Upgrade the moderator assignment rather than stacking a second row.
		result, err := s.db.NewUpdate().Model((*ModeratorAssignment)(nil)).
			Set("is_admin = TRUE").
			Set("assigned_by = ?", actor.User.ID).
			Where("id = ?", existing.ID).
			Exec(ctx)
		if err = dbkit.WithErr(result, err, "UpgradeAssignment").Err(); err != nil {
			return NewError(ErrDatabaseError, "failed to upgrade assignment").
				WithSubForum(subForumID).
				WithUser(targetUserID)
		}
	} else {
		assignment := &ModeratorAssignment{
			UserID:     targetUserID,
			SubForumID: subForumID,
			AssignedBy: actor.User.ID,
			IsAdmin:    true,
		}
		result, err := s.db.NewInsert().Model(assignment).Exec(ctx)
		if err = dbkit.WithErr(result, err, "CreateAdminAssignment").Err(); err != nil {
			if dbkit.IsDuplicate(err) {
				return NewError(ErrAlreadyAssigned, "user is already an admin of this subforum").
					WithSubForum(subForumID).
					WithUser(targetUserID)
			}
			return NewError(ErrDatabaseError, "failed to create admin assignment").
				WithSubForum(subForumID).
				WithUser(targetUserID)
		}
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       AuditAssignAdmin,
		TargetUserID: targetUserID,
		SubForumID:   subForumID,
	})

	return nil
}

// RemoveAssignment deletes a user's assignment in a subforum. The actor must
// be a super_admin, or hold an admin assignment there while the target's
// assignment is non-admin: an admin assignment can only be removed by a
// super_admin. A missing assignment fails with ErrNotAssigned. Deletion is
// destructive; no history is retained beyond the audit log.
func (s *Service) RemoveAssignment(ctx context.Context, subForumID, targetUserID string) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return err
	}
	if _, err := s.getUser(ctx, targetUserID); err != nil {
		return err
	}

	if actor.User.Role != RoleSuperAdmin && !actor.IsAdminOf(subForumID) {
		return NewError(ErrForbidden, "you don't have permission to remove moderators").
			WithSubForum(subForumID).
			WithActor(actor.User.ID)
	}

	assignment, err := s.getAssignment(ctx, targetUserID, subForumID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return NewError(ErrNotAssigned, "user is not a moderator of this subforum").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}

	if assignment.IsAdmin && actor.User.Role != RoleSuperAdmin {
		return NewError(ErrForbidden, "you cannot remove a subforum admin").
			WithSubForum(subForumID).
			WithUser(targetUserID).
			WithActor(actor.User.ID)
	}

	result, err := s.db.NewDelete().Model((*ModeratorAssignment)(nil)).
		Where("id = ?", assignment.ID).
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "DeleteAssignment").Err(); err != nil {
		return NewError(ErrDatabaseError, "failed to remove assignment").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewError(ErrNotAssigned, "user is not a moderator of this subforum").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       AuditRemoveAssignment,
		TargetUserID: targetUserID,
		SubForumID:   subForumID,
	}) // log error but don't fail the removal

	return nil
}
