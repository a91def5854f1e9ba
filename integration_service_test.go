package postly

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_CanMutate tests the evaluator over a live actor snapshot
func TestIntegration_CanMutate(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	t.Run("Clean user allowed", func(t *testing.T) {
		user := h.SeedUser("user", RoleUser)
		d, err := h.service.CanMutate(h.ctx, user.ID, sf.ID)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("Banned user denied with reason", func(t *testing.T) {
		user := h.SeedUser("user", RoleUser)
		_, err := h.service.SubForumBanUser(h.ActorCtx(admin.ID), sf.ID, user.ID, 7, "")
		require.NoError(t, err)

		d, err := h.service.CanMutate(h.ctx, user.ID, sf.ID)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonSubForumBanned, d.Reason)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := h.service.CanMutate(h.ctx, "00000000-0000-0000-0000-000000000000", sf.ID)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

// TestIntegration_CanModerateContent tests owning-subforum resolution
func TestIntegration_CanModerateContent(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	author := h.SeedUser("author", RoleUser)
	post, err := h.service.CreatePost(h.ActorCtx(author.ID), sf.ID, "post", "body", FormatMarkdown)
	require.NoError(t, err)
	comment, err := h.service.CreateComment(h.ActorCtx(author.ID), post.ID, "self reply", nil)
	require.NoError(t, err)

	t.Run("Author over own post", func(t *testing.T) {
		ok, err := h.service.CanModerateContent(h.ctx, author.ID, ContentRef{Kind: KindPost, ID: post.ID})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Comment resolves through its parent post", func(t *testing.T) {
		mod := h.SeedUser("mod", RoleModerator)
		h.SeedAssignment(mod.ID, sf.ID, admin.ID, false)

		ok, err := h.service.CanModerateContent(h.ctx, mod.ID, ContentRef{Kind: KindComment, ID: comment.ID})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Stranger denied", func(t *testing.T) {
		stranger := h.SeedUser("stranger", RoleUser)
		ok, err := h.service.CanModerateContent(h.ctx, stranger.ID, ContentRef{Kind: KindPost, ID: post.ID})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown content kind", func(t *testing.T) {
		_, err := h.service.CanModerateContent(h.ctx, author.ID, ContentRef{Kind: "thread", ID: post.ID})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

// TestIntegration_GetSubForumModerators tests the assignment listing
func TestIntegration_GetSubForumModerators(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	mod := h.SeedUser("mod", RoleModerator)
	h.SeedAssignment(mod.ID, sf.ID, admin.ID, false)

	assignments, err := h.service.GetSubForumModerators(h.ctx, sf.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
}

// TestIntegration_AuditLog tests the moderation audit trail
func TestIntegration_AuditLog(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	root := h.SeedUser("root", RoleSuperAdmin)
	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	target := h.SeedUser("target", RoleUser)

	// Audit context metadata flows from the request context into the entry.
	banCtx := WithAuditContext(h.ctx, AuditContext{
		ActorID:   admin.ID,
		IPAddress: "10.0.0.1",
		UserAgent: "postly-test/1.0",
		RequestID: "req-ban-1",
	})
	_, err := h.service.SubForumBanUser(banCtx, sf.ID, target.ID, 7, "spam")
	require.NoError(t, err)

	t.Run("Ban leaves an audit entry", func(t *testing.T) {
		entries, err := h.service.GetAuditLog(h.ActorCtx(root.ID), NewAuditLogFilter().
			WithTargetUser(target.ID).
			WithAction(AuditSubForumBan))
		require.NoError(t, err)
		require.NotEmpty(t, entries)

		entry := entries[0]
		assert.Equal(t, admin.ID, entry.ActorID)
		assert.Equal(t, sf.ID, entry.SubForumID)
		assert.Equal(t, "spam", entry.Reason)
		assert.Equal(t, "10.0.0.1", entry.IPAddress)
		assert.Equal(t, "req-ban-1", entry.RequestID)
	})

	t.Run("Only super admins read the log", func(t *testing.T) {
		_, err := h.service.GetAuditLog(h.ActorCtx(admin.ID), NewAuditLogFilter())
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("Anonymous read rejected", func(t *testing.T) {
		_, err := h.service.GetAuditLog(h.ctx, NewAuditLogFilter())
		require.Error(t, err)
		assert.True(t, IsUnauthenticated(err))
	})
}

// TestIntegration_Transaction tests rollback and nested service calls
func TestIntegration_Transaction(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	t.Run("Rollback on error", func(t *testing.T) {
		username := h.UniqueName("rollback")
		boom := errors.New("boom")

		err := h.service.Transaction(h.ctx, func(ctx context.Context) error {
			_, err := h.service.RegisterUser(ctx, username, username+"@example.com", "s3cret-pass")
			require.NoError(t, err)
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = h.service.AuthenticateUser(h.ctx, username, "s3cret-pass")
		require.Error(t, err)
	})

	t.Run("Metrics record outcomes", func(t *testing.T) {
		before := h.service.GetTransactionMetrics()

		err := h.service.Transaction(h.ctx, func(ctx context.Context) error { return nil })
		require.NoError(t, err)

		after := h.service.GetTransactionMetrics()
		assert.Greater(t, after.Succeeded, before.Succeeded)
	})
}

// TestIntegration_Health tests the database health probes
func TestIntegration_Health(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	assert.True(t, h.service.IsHealthy(h.ctx))

	status := h.service.Health(h.ctx)
	assert.True(t, status.Healthy)
}
