package postly

import (
	"context"
	"strings"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// CONTENT MUTATION GATEWAY
// ============================================================================

// denialError converts a Decision into the Forbidden error surfaced to the
// caller. The detail string distinguishes a global from a scoped ban.
func denialError(d Decision, subForumID, actorID string) error {
	return NewError(ErrForbidden, d.Detail).
		WithSubForum(subForumID).
		WithActor(actorID)
}

// CreatePost creates a post in a subforum after running the mutation check:
// a globally banned actor is denied everywhere, an actor banned in this
// subforum is denied here only.
func (s *Service) CreatePost(ctx context.Context, subForumID, title, content string, format PostFormat) (*Post, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, NewError(ErrValidation, "title and content are required")
	}
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatWYSIWYG {
		return nil, NewError(ErrValidation, "unknown post format")
	}

	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return nil, err
	}

	if d := actor.CanMutate(subForumID, s.now()); !d.Allowed {
		return nil, denialError(d, subForumID, actor.User.ID)
	}

	post := &Post{
		SubForumID: subForumID,
		AuthorID:   actor.User.ID,
		Title:      title,
		Content:    content,
		Format:     format,
	}
	result, err := s.db.NewInsert().Model(post).Returning("*").Exec(ctx)
	if err = dbkit.WithErr(result, err, "CreatePost").Err(); err != nil {
		return nil, NewError(ErrDatabaseError, "failed to create post")
	}
	return post, nil
}

// UpdatePost edits a post. The actor must pass the mutation check for the
// owning subforum and the object-level check (author, super_admin, or any
// moderator of the subforum). UpdatedAt is stamped only when the content
// actually changes.
func (s *Service) UpdatePost(ctx context.Context, postID, title, content string) (*Post, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, NewError(ErrValidation, "title and content are required")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if d := actor.CanMutate(post.SubForumID, s.now()); !d.Allowed {
		return nil, denialError(d, post.SubForumID, actor.User.ID)
	}
	if !actor.CanModerateContent(post.AuthorID, post.SubForumID) {
		return nil, NewError(ErrForbidden, "you don't have permission to edit this post").
			WithSubForum(post.SubForumID).
			WithActor(actor.User.ID)
	}

	q := s.db.NewUpdate().Model((*Post)(nil)).
		Set("title = ?", title).
		Set("content = ?", content).
		Where("id = ?", post.ID)
	if content != post.Content {
		q = q.Set("updated_at = ?", s.now())
	}
	result, err := q.Exec(ctx)
	if err = dbkit.WithErr(result, err, "UpdatePost").Err(); err != nil {
		return nil, NewError(ErrDatabaseError, "failed to update post")
	}

	return s.getPost(ctx, post.ID)
}

// DeletePost removes a post. Only the object-level check applies: the author,
// a super_admin, or any moderator of the owning subforum may delete.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if !actor.CanModerateContent(post.AuthorID, post.SubForumID) {
		return NewError(ErrForbidden, "you don't have permission to delete this post").
			WithSubForum(post.SubForumID).
			WithActor(actor.User.ID)
	}

	result, err := s.db.NewDelete().Model((*Post)(nil)).Where("id = ?", post.ID).Exec(ctx)
	if err = dbkit.WithErr(result, err, "DeletePost").Err(); err != nil {
		return NewError(ErrDatabaseError, "failed to delete post")
	}
	return nil
}

// CreateComment adds a comment to a post after running the mutation check
// against the post's owning subforum. Creating a comment touches the parent
// post's updated_at. ReplyToUserID is informational only.
func (s *Service) CreateComment(ctx context.Context, postID, content string, replyToUserID *string) (*Comment, error) {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, NewError(ErrValidation, "content is required")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if replyToUserID != nil {
		if _, err := s.getUser(ctx, *replyToUserID); err != nil {
			return nil, err
		}
	}

	if d := actor.CanMutate(post.SubForumID, s.now()); !d.Allowed {
		return nil, denialError(d, post.SubForumID, actor.User.ID)
	}

	comment := &Comment{
		PostID:        post.ID,
		AuthorID:      actor.User.ID,
		ReplyToUserID: replyToUserID,
		Content:       content,
	}

	err = s.Transaction(ctx, func(ctx context.Context) error {
		tx := s.inTx(ctx)

		result, err := tx.db.NewInsert().Model(comment).Returning("*").Exec(ctx)
		if err = dbkit.WithErr(result, err, "CreateComment").Err(); err != nil {
			return NewError(ErrDatabaseError, "failed to create comment")
		}

		result, err = tx.db.NewUpdate().Model((*Post)(nil)).
			Set("updated_at = ?", s.now()).
			Where("id = ?", post.ID).
			Exec(ctx)
		if err = dbkit.WithErr(result, err, "TouchPost").Err(); err != nil {
			return NewError(ErrDatabaseError, "failed to touch post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment under the object-level check; the owning
// subforum is resolved through the comment's parent post.
func (s *Service) DeleteComment(ctx context.Context, commentID string) error {
	s = s.inTx(ctx)

	actor, err := s.requireActor(ctx)
	if err != nil {
		return err
	}

	owner, err := s.resolveOwner(ctx, ContentRef{Kind: KindComment, ID: commentID})
	if err != nil {
		return err
	}

	if !actor.CanModerateContent(owner.AuthorID, owner.SubForumID) {
		return NewError(ErrForbidden, "you don't have permission to delete this comment").
			WithSubForum(owner.SubForumID).
			WithActor(actor.User.ID)
	}

	result, err := s.db.NewDelete().Model((*Comment)(nil)).Where("id = ?", commentID).Exec(ctx)
	if err = dbkit.WithErr(result, err, "DeleteComment").Err(); err != nil {
		return NewError(ErrDatabaseError, "failed to delete comment")
	}
	return nil
}

// GetPost retrieves a post by ID.
func (s *Service) GetPost(ctx context.Context, postID string) (*Post, error) {
	return s.getPost(ctx, postID)
}

// ListPosts retrieves a subforum's posts, newest first.
func (s *Service) ListPosts(ctx context.Context, subForumID string) ([]Post, error) {
	if _, err := s.getSubForum(ctx, subForumID); err != nil {
		return nil, err
	}

	var posts []Post
	err := dbkit.WithErr1(s.db.NewSelect().Model(&posts).
		Where("sub_forum_id = ?", subForumID).
		Order("created_at DESC").
		Scan(ctx), "ListPosts").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return posts, nil
}

// ListComments retrieves a post's comments, oldest first.
func (s *Service) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	var comments []Comment
	err := dbkit.WithErr1(s.db.NewSelect().Model(&comments).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Scan(ctx), "ListComments").Err()
	if err != nil && !notFoundErr(err) {
		return nil, err
	}
	return comments, nil
}
