package postly

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubForumBan_InEffect tests lazy expiry semantics
func TestSubForumBan_InEffect(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		isActive  bool
		expiresAt time.Time
		want      bool
	}{
		{"Active and unexpired", true, now.Add(time.Hour), true},
		{"Active but expired", true, now.Add(-time.Hour), false},
		{"Active, expires exactly now", true, now, false},
		{"Lifted before expiry", false, now.Add(time.Hour), false},
		{"Lifted and expired", false, now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ban := &SubForumBan{IsActive: tt.isActive, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, ban.InEffect(now))
		})
	}
}

// TestModelJSONKeys tests that API responses carry snake_case keys
// and never leak password hashes
func TestModelJSONKeys(t *testing.T) {
	t.Run("SubForumBan", func(t *testing.T) {
		ban := &SubForumBan{
			ID:         "ban-1",
			UserID:     "user-1",
			SubForumID: "sf-1",
			BannedBy:   "mod-1",
			Reason:     "spam",
			IsActive:   true,
			ExpiresAt:  time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC),
		}

		raw, err := json.Marshal(ban)
		require.NoError(t, err)

		var keys map[string]any
		require.NoError(t, json.Unmarshal(raw, &keys))

		for _, key := range []string{"id", "user_id", "sub_forum_id", "banned_by", "reason", "is_active", "expires_at"} {
			assert.Contains(t, keys, key)
		}
		assert.NotContains(t, keys, "ExpiresAt")
		assert.NotContains(t, keys, "BannedBy")
	})

	t.Run("User hides password hash", func(t *testing.T) {
		user := &User{
			ID:           "user-1",
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "argon2id$secret",
			Role:         RoleUser,
		}

		raw, err := json.Marshal(user)
		require.NoError(t, err)

		var keys map[string]any
		require.NoError(t, json.Unmarshal(raw, &keys))

		assert.Contains(t, keys, "username")
		assert.Contains(t, keys, "is_banned")
		assert.NotContains(t, string(raw), "secret")
	})

	t.Run("Assignment and post", func(t *testing.T) {
		raw, err := json.Marshal(&ModeratorAssignment{UserID: "u", SubForumID: "sf", AssignedBy: "a"})
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"assigned_by"`)
		assert.Contains(t, string(raw), `"is_admin"`)

		raw, err = json.Marshal(&Post{SubForumID: "sf", AuthorID: "a", Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"author_id"`)
		assert.Contains(t, string(raw), `"sub_forum_id"`)
	})
}

// TestContentKind_Valid tests content kind validation
func TestContentKind_Valid(t *testing.T) {
	assert.True(t, KindPost.Valid())
	assert.True(t, KindComment.Valid())
	assert.False(t, ContentKind("thread").Valid())
	assert.False(t, ContentKind("").Valid())
}

// TestAuditEntry_ToModel tests audit entry conversion
func TestAuditEntry_ToModel(t *testing.T) {
	entry := &AuditEntry{
		ActorID:      "actor-1",
		Action:       AuditSubForumBan,
		TargetUserID: "target-1",
		SubForumID:   "sf-1",
		Reason:       "spam",
		IPAddress:    "10.0.0.1",
		UserAgent:    "test-agent",
		RequestID:    "req-1",
	}

	model := entry.ToModel()

	assert.Equal(t, "actor-1", model.ActorID)
	assert.Equal(t, "subforum_ban", model.Action)
	assert.Equal(t, "target-1", model.TargetUserID)
	assert.Equal(t, "sf-1", model.SubForumID)
	assert.Equal(t, "spam", model.Reason)
	assert.Equal(t, "10.0.0.1", model.IPAddress)
	assert.Equal(t, "test-agent", model.UserAgent)
	assert.Equal(t, "req-1", model.RequestID)
	assert.False(t, model.Timestamp.IsZero())
}
