package postly

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

func notFoundErr(err error) bool {
	return dbkit.IsNotFound(err) || errors.Is(err, sql.ErrNoRows)
}

func (s *Service) getUser(ctx context.Context, userID string) (*User, error) {
	var user User
	err := dbkit.WithErr1(s.db.NewSelect().Model(&user).Where("u.id = ?", userID).Scan(ctx), "GetUser").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, NewError(ErrNotFound, "user not found").WithUser(userID)
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) getUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := dbkit.WithErr1(s.db.NewSelect().Model(&user).Where("username = ?", username).Scan(ctx), "GetUserByUsername").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, NewError(ErrNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) getSubForum(ctx context.Context, subForumID string) (*SubForum, error) {
	var sf SubForum
	err := dbkit.WithErr1(s.db.NewSelect().Model(&sf).Where("sf.id = ?", subForumID).Scan(ctx), "GetSubForum").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, NewError(ErrNotFound, "subforum not found").WithSubForum(subForumID)
		}
		return nil, err
	}
	return &sf, nil
}

func (s *Service) getPost(ctx context.Context, postID string) (*Post, error) {
	var post Post
	err := dbkit.WithErr1(s.db.NewSelect().Model(&post).Where("p.id = ?", postID).Scan(ctx), "GetPost").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, NewError(ErrNotFound, "post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) getComment(ctx context.Context, commentID string) (*Comment, error) {
	var comment Comment
	err := dbkit.WithErr1(s.db.NewSelect().Model(&comment).Where("c.id = ?", commentID).Scan(ctx), "GetComment").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, NewError(ErrNotFound, "comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

func (s *Service) getAssignment(ctx context.Context, userID, subForumID string) (*ModeratorAssignment, error) {
	var assignment ModeratorAssignment
	err := dbkit.WithErr1(s.db.NewSelect().Model(&assignment).
		Where("user_id = ? AND sub_forum_id = ?", userID, subForumID).
		Scan(ctx), "GetAssignment").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *Service) getBan(ctx context.Context, userID, subForumID string) (*SubForumBan, error) {
	var ban SubForumBan
	err := dbkit.WithErr1(s.db.NewSelect().Model(&ban).
		Where("user_id = ? AND sub_forum_id = ?", userID, subForumID).
		Scan(ctx), "GetBan").Err()
	if err != nil {
		if notFoundErr(err) {
			return nil, nil
		}
		return nil, err
	}
	return &ban, nil
}

// requireActor loads the authenticated actor's authorization snapshot, or
// fails with ErrUnauthenticated when the context carries no actor.
func (s *Service) requireActor(ctx context.Context) (*Actor, error) {
	actorID := GetActorID(ctx)
	if actorID == "" {
		return nil, NewError(ErrUnauthenticated, "authentication required")
	}
	return s.GetActor(ctx, actorID)
}
