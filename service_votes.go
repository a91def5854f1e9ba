package postly

import (
	"context"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"
)

// ============================================================================
// VOTES
// ============================================================================

// CreateVote records the actor's vote on a post or comment. Creation is
// idempotent on the (user, target_type, target_id) triple: a repeat vote
// returns the existing record with created=false instead of erroring. The
// stored value is always like; dislike exists in the schema but has no
// creation path.
func (s *Service) CreateVote(ctx context.Context, kind ContentKind, targetID string) (*Vote, bool, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, false, err
	}

	if !kind.Valid() {
		return nil, false, NewError(ErrValidation, "invalid target type, must be either 'post' or 'comment'")
	}

	// Validate the target exists; a dangling vote is a validation failure,
	// not a 404, because the reference arrives in the request body.
	if _, err := s.resolveOwner(ctx, ContentRef{Kind: kind, ID: targetID}); err != nil {
		if IsNotFound(err) {
			return nil, false, NewError(ErrValidation, "vote target does not exist")
		}
		return nil, false, err
	}

	vote := &Vote{
		UserID:     actor.User.ID,
		TargetType: kind,
		TargetID:   targetID,
		Value:      VoteLike,
	}
	result, err := s.db.NewInsert().Model(vote).
		On("CONFLICT (user_id, target_type, target_id) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err = dbkit.WithErr(result, err, "CreateVote").Err(); err != nil {
		return nil, false, NewError(ErrDatabaseError, "failed to create vote")
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return vote, true, nil
	}

	// Repeat vote: return the record the first call created.
	var existing Vote
	err = dbkit.WithErr1(s.db.NewSelect().Model(&existing).
		Where("user_id = ? AND target_type = ? AND target_id = ?", actor.User.ID, kind, targetID).
		Scan(ctx), "GetExistingVote").Err()
	if err != nil {
		return nil, false, NewError(ErrDatabaseError, "failed to load existing vote")
	}
	return &existing, false, nil
}

// CountVotes returns the number of votes on a target.
func (s *Service) CountVotes(ctx context.Context, kind ContentKind, targetID string) (int, error) {
	return dbkit.Count[Vote](ctx, s.db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("target_type = ? AND target_id = ?", kind, targetID)
	})
}
