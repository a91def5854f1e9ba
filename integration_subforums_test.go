package postly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_CreateSubForum tests community creation and its side effects
func TestIntegration_CreateSubForum(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	t.Run("Creator receives admin assignment", func(t *testing.T) {
		creator := h.SeedUser("creator", RoleUser)
		ctx := h.ActorCtx(creator.ID)

		sf, err := h.service.CreateSubForum(ctx, h.UniqueName("golang"), "all things go", "be nice")
		require.NoError(t, err)
		assert.NotEmpty(t, sf.ID)
		assert.Equal(t, creator.ID, sf.CreatedBy)

		actor, err := h.service.GetActor(h.ctx, creator.ID)
		require.NoError(t, err)
		assert.True(t, actor.IsAdminOf(sf.ID))
	})

	t.Run("Creator with lower rank is promoted", func(t *testing.T) {
		creator := h.SeedUser("creator", RoleUser)
		ctx := h.ActorCtx(creator.ID)

		_, err := h.service.CreateSubForum(ctx, h.UniqueName("rust"), "", "")
		require.NoError(t, err)

		user, err := h.service.GetUser(h.ctx, creator.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleSubForumAdmin, user.Role)
	})

	t.Run("Super admin creator keeps rank", func(t *testing.T) {
		root := h.SeedUser("root", RoleSuperAdmin)
		ctx := h.ActorCtx(root.ID)

		_, err := h.service.CreateSubForum(ctx, h.UniqueName("meta"), "", "")
		require.NoError(t, err)

		user, err := h.service.GetUser(h.ctx, root.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleSuperAdmin, user.Role)
	})

	t.Run("Duplicate name rejected", func(t *testing.T) {
		creator := h.SeedUser("creator", RoleUser)
		ctx := h.ActorCtx(creator.ID)

		name := h.UniqueName("python")
		_, err := h.service.CreateSubForum(ctx, name, "", "")
		require.NoError(t, err)

		_, err = h.service.CreateSubForum(ctx, name, "", "")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("Anonymous creation rejected", func(t *testing.T) {
		_, err := h.service.CreateSubForum(h.ctx, h.UniqueName("anon"), "", "")
		require.Error(t, err)
		assert.True(t, IsUnauthenticated(err))
	})

	t.Run("Empty name rejected", func(t *testing.T) {
		creator := h.SeedUser("creator", RoleUser)
		_, err := h.service.CreateSubForum(h.ActorCtx(creator.ID), "  ", "", "")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

// TestIntegration_GetAdministeredSubForums tests the my-subforums listing
func TestIntegration_GetAdministeredSubForums(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	creator := h.SeedUser("creator", RoleUser)
	ctx := h.ActorCtx(creator.ID)

	sf, err := h.service.CreateSubForum(ctx, h.UniqueName("mine"), "", "")
	require.NoError(t, err)

	t.Run("Admin sees their subforum", func(t *testing.T) {
		subforums, err := h.service.GetAdministeredSubForums(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(subforums))
		for _, s := range subforums {
			ids = append(ids, s.ID)
		}
		assert.Contains(t, ids, sf.ID)
	})

	t.Run("Plain moderator sees nothing", func(t *testing.T) {
		mod := h.SeedUser("mod", RoleModerator)
		h.SeedAssignment(mod.ID, sf.ID, creator.ID, false)

		subforums, err := h.service.GetAdministeredSubForums(h.ActorCtx(mod.ID))
		require.NoError(t, err)
		assert.Empty(t, subforums)
	})

	t.Run("Super admin sees everything", func(t *testing.T) {
		root := h.SeedUser("root", RoleSuperAdmin)
		subforums, err := h.service.GetAdministeredSubForums(h.ActorCtx(root.ID))
		require.NoError(t, err)
		assert.NotEmpty(t, subforums)
	})
}
