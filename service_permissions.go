package postly

import "context"

// ============================================================================
// PERMISSION CHECKING
// ============================================================================

// CanMutate decides whether a user may create or update content in a
// subforum, combining the global ban flag with any scoped ban in effect.
//
// Example:
//
//	decision, err := service.CanMutate(ctx, userID, subForumID)
//	if err == nil && !decision.Allowed {
//	    // decision.Detail distinguishes a global from a scoped ban
//	}
func (s *Service) CanMutate(ctx context.Context, userID, subForumID string) (Decision, error) {
	s = s.inTx(ctx)
	actor, err := s.GetActor(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	return actor.CanMutate(subForumID, s.now()), nil
}

// CanModerateContent decides whether a user may edit or delete the referenced
// post or comment: its author, a super_admin, or any moderator of the owning
// subforum qualify.
func (s *Service) CanModerateContent(ctx context.Context, userID string, ref ContentRef) (bool, error) {
	s = s.inTx(ctx)

	owner, err := s.resolveOwner(ctx, ref)
	if err != nil {
		return false, err
	}

	actor, err := s.GetActor(ctx, userID)
	if err != nil {
		return false, err
	}
	return actor.CanModerateContent(owner.AuthorID, owner.SubForumID), nil
}

// contentOwner is the resolved ownership of a piece of content: the author
// and the subforum the content ultimately belongs to.
type contentOwner struct {
	AuthorID   string
	SubForumID string
	PostID     string
}

// resolveOwner resolves a content reference to its author and owning
// subforum, dispatching on the declared kind: a post carries its subforum
// directly, a comment resolves through its parent post.
func (s *Service) resolveOwner(ctx context.Context, ref ContentRef) (*contentOwner, error) {
	switch ref.Kind {
	case KindPost:
		post, err := s.getPost(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &contentOwner{
			AuthorID:   post.AuthorID,
			SubForumID: post.SubForumID,
			PostID:     post.ID,
		}, nil

	case KindComment:
		comment, err := s.getComment(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		post, err := s.getPost(ctx, comment.PostID)
		if err != nil {
			return nil, err
		}
		return &contentOwner{
			AuthorID:   comment.AuthorID,
			SubForumID: post.SubForumID,
			PostID:     post.ID,
		}, nil

	default:
		return nil, NewError(ErrValidation, "unknown content kind")
	}
}
