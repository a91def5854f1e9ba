package postly

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// DATA RETRIEVAL
// ============================================================================

// GetActor loads a user's full authorization snapshot: the user row, every
// moderator assignment they hold, and every subforum ban recorded against
// them. The snapshot feeds the pure evaluation methods on Actor.
func (s *Service) GetActor(ctx context.Context, userID string) (*Actor, error) {
	s = s.inTx(ctx)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var assignments []ModeratorAssignment
	err = dbkit.WithErr1(s.db.NewSelect().Model(&assignments).
		Where("user_id = ?", userID).
		Scan(ctx), "GetActorAssignments").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}

	var bans []SubForumBan
	err = dbkit.WithErr1(s.db.NewSelect().Model(&bans).
		Where("user_id = ?", userID).
		Scan(ctx), "GetActorBans").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}

	return NewActor(*user, assignments, bans), nil
}

// GetSubForumModerators retrieves all assignments in a subforum.
func (s *Service) GetSubForumModerators(ctx context.Context, subForumID string) ([]ModeratorAssignment, error) {
	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return nil, err
	}

	var assignments []ModeratorAssignment
	err := dbkit.WithErr1(s.db.NewSelect().Model(&assignments).
		Where("sub_forum_id = ?", subForumID).
		Order("created_at ASC").
		Scan(ctx), "GetSubForumModerators").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return assignments, nil
}

// GetAdministeredSubForums returns the subforums an actor administers: all of
// them for a super_admin, otherwise those where the actor holds an admin
// assignment.
func (s *Service) GetAdministeredSubForums(ctx context.Context) ([]SubForum, error) {
	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	var subForums []SubForum
	q := s.db.NewSelect().Model(&subForums)
	if actor.User.Role != RoleSuperAdmin {
		q = q.Where("sf.id IN (SELECT sub_forum_id FROM moderator_assignments WHERE user_id = ? AND is_admin)", actor.User.ID)
	}
	err = dbkit.WithErr1(q.Order("name ASC").Scan(ctx), "GetAdministeredSubForums").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return subForums, nil
}

// GetActiveBans retrieves the bans currently in effect in a subforum,
// applying lazy expiry: rows past their ExpiresAt are not returned even if
// still flagged active in storage.
func (s *Service) GetActiveBans(ctx context.Context, subForumID string) ([]SubForumBan, error) {
	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return nil, err
	}

	var bans []SubForumBan
	err := dbkit.WithErr1(s.db.NewSelect().Model(&bans).
		Where("sub_forum_id = ? AND is_active AND expires_at > ?", subForumID, s.now()).
		Order("expires_at ASC").
		Scan(ctx), "GetActiveBans").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return bans, nil
}
