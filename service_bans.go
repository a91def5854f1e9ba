package postly

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// BAN LEDGER
// ============================================================================

// GlobalBan blocks a user from all content mutation platform-wide. Only a
// super_admin may place it, and super_admins themselves are unbannable.
// The flag, reason, and timestamp are set together.
func (s *Service) GlobalBan(ctx context.Context, targetUserID, reason string) error {
	return s.setGlobalBan(ctx, targetUserID, reason, true)
}

// GlobalUnban lifts a global ban, erasing the reason and timestamp along with
// the flag. Unlike a subforum unban, no historical ban state remains on the
// user row.
func (s *Service) GlobalUnban(ctx context.Context, targetUserID string) error {
	return s.setGlobalBan(ctx, targetUserID, "", false)
}

func (s *Service) setGlobalBan(ctx context.Context, targetUserID, reason string, ban bool) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	if actor.User.Role != RoleSuperAdmin {
		return NewError(ErrForbidden, "only super admins can perform global bans").
			WithActor(actor.User.ID)
	}

	target, err := s.getUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target.Role == RoleSuperAdmin {
		return NewError(ErrForbidden, "cannot ban super admins").
			WithUser(targetUserID).
			WithActor(actor.User.ID)
	}

	q := s.db.NewUpdate().Model((*User)(nil)).Where("id = ?", targetUserID)
	action := AuditGlobalUnban
	if ban {
		q = q.Set("is_banned = TRUE").
			Set("ban_reason = ?", reason).
			Set("banned_at = ?", s.now())
		action = AuditGlobalBan
	} else {
		q = q.Set("is_banned = FALSE").
			Set("ban_reason = NULL").
			Set("banned_at = NULL")
	}

	result, err := q.Exec(ctx)
	if err = dbkit.WithErr(result, err, "SetGlobalBan").Err(); err != nil {
		return NewError(ErrDatabaseError, "failed to update ban state").
			WithUser(targetUserID)
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       action,
		TargetUserID: targetUserID,
		Reason:       reason,
	}) // log error but don't fail the ban

	return nil
}

// SubForumBanUser bans a user within one subforum for durationDays. The
// checks run as a single ordered pipeline:
//
//  1. an authenticated actor is required
//  2. durationDays must be at least 1
//  3. subforum and target must exist
//  4. rank gate: the target's global rank must be strictly below the
//     actor's (ErrValidation)
//  5. ban-permission gate: the actor must be super_admin or hold any
//     assignment in the subforum (ErrForbidden)
//  6. on an existing record, the modify gate: a ban placed by a higher
//     authority cannot be touched (ErrForbidden)
//
// Repeat bans reuse the existing (user, subforum) record: the expiry only
// moves if the new one is strictly later (monotonic extension — shortenings
// are silently ignored), and reason and banner update together with it, never
// independently. The get-or-create is transactional and serializes on the
// pair's uniqueness constraint, so concurrent placements cannot produce two
// rows for one logical ban.
func (s *Service) SubForumBanUser(ctx context.Context, subForumID, targetUserID string, durationDays int, reason string) (*SubForumBan, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if durationDays < 1 {
		return nil, NewError(ErrValidation, "duration_days must be at least 1")
	}

	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return nil, err
	}
	target, err := s.getUser(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if !actor.OutranksUser(target) {
		return nil, NewError(ErrValidation, "cannot ban a user of equal or higher rank").
			WithSubForum(subForumID).
			WithUser(targetUserID).
			WithActor(actor.User.ID)
	}

	if !actor.CanBanIn(subForumID) {
		return nil, NewError(ErrForbidden, "you don't have permission to ban users in this subforum").
			WithSubForum(subForumID).
			WithActor(actor.User.ID)
	}

	expiresAt := s.now().Add(time.Duration(durationDays) * 24 * time.Hour)
	var ban *SubForumBan

	err = s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.inTx(ctx)

		existing, err := tx.lockBan(ctx, targetUserID, subForumID)
		if err != nil {
			return err
		}

		if existing == nil {
			inserted, created, err := tx.insertBan(ctx, &SubForumBan{
				UserID:     targetUserID,
				SubForumID: subForumID,
				BannedBy:   actor.User.ID,
				Reason:     reason,
				IsActive:   true,
				ExpiresAt:  expiresAt,
			})
			if err != nil {
				return err
			}
			if created {
				ban = inserted
				return nil
			}
			// Lost the insert race, the row now exists; fall through to the
			// extension path against the committed record.
			if existing, err = tx.lockBan(ctx, targetUserID, subForumID); err != nil {
				return err
			}
			if existing == nil {
				return NewError(ErrDatabaseError, "ban record vanished during creation")
			}
		}

		banner, err := tx.getUser(ctx, existing.BannedBy)
		if err != nil {
			return err
		}
		if !actor.CanModifyBan(banner.Role, subForumID) {
			return NewError(ErrForbidden, "cannot modify a ban placed by a higher authority").
				WithSubForum(subForumID).
				WithUser(targetUserID).
				WithActor(actor.User.ID)
		}

		if expiresAt.After(existing.ExpiresAt) {
			result, err := tx.db.NewUpdate().Model((*SubForumBan)(nil)).
				Set("expires_at = ?", expiresAt).
				Set("reason = ?", reason).
				Set("banned_by = ?", actor.User.ID).
				Set("is_active = TRUE").
				Set("updated_at = ?", s.now()).
				Where("id = ?", existing.ID).
				Exec(ctx)
			if err = dbkit.WithErr(result, err, "ExtendBan").Err(); err != nil {
				return NewError(ErrDatabaseError, "failed to extend ban")
			}
			existing.ExpiresAt = expiresAt
			existing.Reason = reason
			existing.BannedBy = actor.User.ID
			existing.IsActive = true
		}
		ban = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       AuditSubForumBan,
		TargetUserID: targetUserID,
		SubForumID:   subForumID,
		Reason:       reason,
	}) // log error but don't fail the ban

	return ban, nil
}

// SubForumUnbanUser lifts an active subforum ban. The permission gate is the
// same as for banning, and the modify gate applies: a ban placed by a higher
// authority cannot be lifted. The record keeps its expiry as history; only
// is_active flips.
func (s *Service) SubForumUnbanUser(ctx context.Context, subForumID, targetUserID string) error {
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

	ban, err := s.getBan(ctx, targetUserID, subForumID)
	if err != nil {
		return err
	}
	if ban == nil || !ban.IsActive {
		return NewError(ErrNotFound, "no active ban for this user in this subforum").
			WithSubForum(subForumID).
			WithUser(targetUserID)
	}

	if !actor.CanBanIn(subForumID) {
		return NewError(ErrForbidden, "you don't have permission to unban users in this subforum").
			WithSubForum(subForumID).
			WithActor(actor.User.ID)
	}

	banner, err := s.getUser(ctx, ban.BannedBy)
	if err != nil {
		return err
	}
	if !actor.CanModifyBan(banner.Role, subForumID) {
		return NewError(ErrForbidden, "cannot remove a ban placed by a higher authority").
			WithSubForum(subForumID).
			WithUser(targetUserID).
			WithActor(actor.User.ID)
	}

	result, err := s.db.NewUpdate().Model((*SubForumBan)(nil)).
		Set("is_active = FALSE").
		Set("updated_at = ?", s.now()).
		Where("id = ?", ban.ID).
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "LiftBan").Err(); err != nil {
		return NewError(ErrDatabaseError, "failed to lift ban")
	}

	_ = s.logAudit(ctx, &AuditEntry{
		ActorID:      actor.User.ID,
		Action:       AuditSubForumUnban,
		TargetUserID: targetUserID,
		SubForumID:   subForumID,
	}) // log error but don't fail the unban

	return nil
}

// lockBan fetches the ban record for a pair with a row lock so concurrent
// modifications serialize. Returns nil when no record exists.
func (s *Service) lockBan(ctx context.Context, userID, subForumID string) (*SubForumBan, error) {
	var ban SubForumBan
	err := dbkit.WithErr1(s.db.NewSelect().Model(&ban).
		Where("user_id = ? AND sub_forum_id = ?", userID, subForumID).
		For("UPDATE").
		Scan(ctx), "LockBan").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// insertBan inserts a new ban row, yielding to the uniqueness constraint on
// (user_id, sub_forum_id): created=false means another placement won.
func (s *Service) insertBan(ctx context.Context, ban *SubForumBan) (*SubForumBan, bool, error) {
	result, err := s.db.NewInsert().Model(ban).
		On("CONFLICT (user_id, sub_forum_id) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "CreateBan").Err(); err != nil {
		return nil, false, NewError(ErrDatabaseError, "failed to create ban")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, false, nil
	}
	return ban, true, nil
}
