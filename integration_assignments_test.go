package postly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_AssignModerator tests moderator assignment authority
func TestIntegration_AssignModerator(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	t.Run("Subforum admin can assign", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		require.NoError(t, h.service.AssignModerator(h.ActorCtx(admin.ID), sf.ID, target.ID))

		actor, err := h.service.GetActor(h.ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, actor.IsModeratorOf(sf.ID))
		assert.False(t, actor.IsAdminOf(sf.ID))
	})

	t.Run("Super admin can assign anywhere", func(t *testing.T) {
		root := h.SeedUser("root", RoleSuperAdmin)
		target := h.SeedUser("target", RoleUser)
		require.NoError(t, h.service.AssignModerator(h.ActorCtx(root.ID), sf.ID, target.ID))
	})

	t.Run("Moderator cannot assign", func(t *testing.T) {
		mod := h.SeedUser("mod", RoleModerator)
		h.SeedAssignment(mod.ID, sf.ID, admin.ID, false)
		target := h.SeedUser("target", RoleUser)

		err := h.service.AssignModerator(h.ActorCtx(mod.ID), sf.ID, target.ID)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("Global rank alone grants nothing", func(t *testing.T) {
		// subforum_admin globally, but no assignment in this subforum
		outsider := h.SeedUser("outsider", RoleSubForumAdmin)
		target := h.SeedUser("target", RoleUser)

		err := h.service.AssignModerator(h.ActorCtx(outsider.ID), sf.ID, target.ID)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("Already assigned", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		ctx := h.ActorCtx(admin.ID)
		require.NoError(t, h.service.AssignModerator(ctx, sf.ID, target.ID))

		err := h.service.AssignModerator(ctx, sf.ID, target.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
	})

	t.Run("Unknown subforum", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		err := h.service.AssignModerator(h.ActorCtx(admin.ID), "00000000-0000-0000-0000-000000000000", target.ID)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

// TestIntegration_AssignAdmin tests top-down admin appointment
func TestIntegration_AssignAdmin(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	root := h.SeedUser("root", RoleSuperAdmin)
	owner := h.SeedUser("owner", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", owner.ID)
	h.SeedAssignment(owner.ID, sf.ID, owner.ID, true)

	t.Run("Super admin can appoint", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		require.NoError(t, h.service.AssignAdmin(h.ActorCtx(root.ID), sf.ID, target.ID))

		actor, err := h.service.GetActor(h.ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, actor.IsAdminOf(sf.ID))
	})

	t.Run("Subforum admin cannot appoint admins", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		err := h.service.AssignAdmin(h.ActorCtx(owner.ID), sf.ID, target.ID)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("Existing moderator is upgraded in place", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		ctx := h.ActorCtx(root.ID)
		require.NoError(t, h.service.AssignModerator(ctx, sf.ID, target.ID))
		require.NoError(t, h.service.AssignAdmin(ctx, sf.ID, target.ID))

		actor, err := h.service.GetActor(h.ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, actor.IsAdminOf(sf.ID))
		assert.Len(t, actor.Assignments, 1)
	})

	t.Run("Already an admin", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		ctx := h.ActorCtx(root.ID)
		require.NoError(t, h.service.AssignAdmin(ctx, sf.ID, target.ID))

		err := h.service.AssignAdmin(ctx, sf.ID, target.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyAssigned)
	})
}

// TestIntegration_RemoveAssignment tests assignment removal rules
func TestIntegration_RemoveAssignment(t *testing.T) {
	h := NewTestDataHelper(t)
	if h == nil {
		return
	}

	root := h.SeedUser("root", RoleSuperAdmin)
	admin := h.SeedUser("admin", RoleSubForumAdmin)
	sf := h.SeedSubForum("community", admin.ID)
	h.SeedAssignment(admin.ID, sf.ID, admin.ID, true)

	t.Run("Admin removes a moderator", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		h.SeedAssignment(target.ID, sf.ID, admin.ID, false)

		require.NoError(t, h.service.RemoveAssignment(h.ActorCtx(admin.ID), sf.ID, target.ID))

		actor, err := h.service.GetActor(h.ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, actor.IsModeratorOf(sf.ID))
	})

	t.Run("Admin cannot remove another admin", func(t *testing.T) {
		other := h.SeedUser("other-admin", RoleSubForumAdmin)
		h.SeedAssignment(other.ID, sf.ID, root.ID, true)

		err := h.service.RemoveAssignment(h.ActorCtx(admin.ID), sf.ID, other.ID)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))

		// Super admin can.
		require.NoError(t, h.service.RemoveAssignment(h.ActorCtx(root.ID), sf.ID, other.ID))
	})

	t.Run("Moderator cannot remove", func(t *testing.T) {
		mod := h.SeedUser("mod", RoleModerator)
		h.SeedAssignment(mod.ID, sf.ID, admin.ID, false)
		target := h.SeedUser("target", RoleUser)
		h.SeedAssignment(target.ID, sf.ID, admin.ID, false)

		err := h.service.RemoveAssignment(h.ActorCtx(mod.ID), sf.ID, target.ID)
		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})

	t.Run("Not assigned", func(t *testing.T) {
		target := h.SeedUser("target", RoleUser)
		err := h.service.RemoveAssignment(h.ActorCtx(admin.ID), sf.ID, target.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAssigned)
	})
}
