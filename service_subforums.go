package postly

import (
	"context"
	"strings"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// SUBFORUMS
// ============================================================================

// CreateSubForum creates a community and, in the same transaction, its first
// admin assignment for the creator. Side effect, by design: creating a
// subforum grants subforum_admin rank to the creator if their current rank is
// lower. If any step fails the whole creation rolls back.
func (s *Service) CreateSubForum(ctx context.Context, name, description, rules string) (*SubForum, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrValidation, "name is required")
	}

	sf := &SubForum{
		Name:        name,
		Description: description,
		Rules:       rules,
		CreatedBy:   actor.User.ID,
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.inTx(ctx)

		result, err := tx.db.NewInsert().Model(sf).Returning("*").Exec(ctx)
		if err = dbkit.WithErr(result, err, "CreateSubForum").Err(); err != nil {
			if dbkit.IsDuplicate(err) {
				return NewError(ErrValidation, "a subforum with this name already exists")
			}
			return NewError(ErrDatabaseError, "failed to create subforum")
		}

		assignment := &ModeratorAssignment{
			UserID:     actor.User.ID,
			SubForumID: sf.ID,
			AssignedBy: actor.User.ID,
			IsAdmin:    true,
		}
		result, err = tx.db.NewInsert().Model(assignment).Exec(ctx)
		if err = dbkit.WithErr(result, err, "CreateCreatorAssignment").Err(); err != nil {
			return NewError(ErrDatabaseError, "failed to create creator assignment")
		}

		if RoleSubForumAdmin.Outranks(actor.User.Role) {
			result, err = tx.db.NewUpdate().Model((*User)(nil)).
				Set("role = ?", RoleSubForumAdmin).
				Where("id = ?", actor.User.ID).
				Exec(ctx)
			if err = dbkit.WithErr(result, err, "PromoteCreator").Err(); err != nil {
				return NewError(ErrDatabaseError, "failed to promote creator")
			}
		}

		_ = tx.logAudit(ctx, &AuditEntry{
			ActorID:      actor.User.ID,
			Action:       AuditCreateSubForum,
			TargetUserID: actor.User.ID,
			SubForumID:   sf.ID,
		}) // log error but don't fail the creation

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sf, nil
}

// GetSubForum retrieves a subforum by ID.
func (s *Service) GetSubForum(ctx context.Context, subForumID string) (*SubForum, error) {
	return s.getSubForum(ctx, subForumID)
}

// ListSubForums retrieves all subforums ordered by name.
func (s *Service) ListSubForums(ctx context.Context) ([]SubForum, error) {
	var subForums []SubForum
	err := dbkit.WithErr1(s.db.NewSelect().Model(&subForums).
		Order("name ASC").
		Scan(ctx), "ListSubForums").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return subForums, nil
}
