package postly

import (
	"github.com/fernandezvara/dbkit"
)

// Migrations returns all database migrations required by Postly.
// Run them with db.Migrate(ctx, service.Migrations()).
//
// The uniqueness constraints double as concurrency guards: the
// (user_id, sub_forum_id) index on sub_forum_bans serializes concurrent ban
// placement so one logical ban can never produce two rows, and the
// moderator_assignments and votes indexes back the already-assigned and
// idempotent-vote rules.
func (s *Service) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "postly-001",
			Description: "Create users table",
			SQL: `
                CREATE TABLE IF NOT EXISTS users (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    username TEXT NOT NULL UNIQUE,
                    email TEXT NOT NULL,
                    password_hash TEXT NOT NULL,
                    role TEXT NOT NULL DEFAULT 'user',
                    is_banned BOOLEAN NOT NULL DEFAULT FALSE,
                    ban_reason TEXT,
                    banned_at TIMESTAMPTZ,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "postly-002",
			Description: "Create sub_forums table",
			SQL: `
                CREATE TABLE IF NOT EXISTS sub_forums (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    description TEXT,
                    rules TEXT,
                    created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "postly-003",
			Description: "Create moderator_assignments table",
			SQL: `
                CREATE TABLE IF NOT EXISTS moderator_assignments (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    sub_forum_id UUID NOT NULL REFERENCES sub_forums(id) ON DELETE CASCADE,
                    assigned_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (user_id, sub_forum_id)
                )`,
		},
		{
			ID:          "postly-004",
			Description: "Create sub_forum_bans table",
			SQL: `
                CREATE TABLE IF NOT EXISTS sub_forum_bans (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    sub_forum_id UUID NOT NULL REFERENCES sub_forums(id) ON DELETE CASCADE,
                    banned_by UUID NOT NULL REFERENCES users(id),
                    reason TEXT,
                    is_active BOOLEAN NOT NULL DEFAULT TRUE,
                    expires_at TIMESTAMPTZ NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (user_id, sub_forum_id)
                )`,
		},
		{
			ID:          "postly-005",
			Description: "Create posts table",
			SQL: `
                CREATE TABLE IF NOT EXISTS posts (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    sub_forum_id UUID NOT NULL REFERENCES sub_forums(id) ON DELETE CASCADE,
                    author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    title TEXT NOT NULL,
                    content TEXT NOT NULL,
                    format TEXT NOT NULL DEFAULT 'markdown',
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ
                )`,
		},
		{
			ID:          "postly-006",
			Description: "Create comments table",
			SQL: `
                CREATE TABLE IF NOT EXISTS comments (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    post_id UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
                    author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    reply_to_user_id UUID REFERENCES users(id) ON DELETE SET NULL,
                    content TEXT NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "postly-007",
			Description: "Create votes table",
			SQL: `
                CREATE TABLE IF NOT EXISTS votes (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
                    target_type TEXT NOT NULL,
                    target_id UUID NOT NULL,
                    value TEXT NOT NULL,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    UNIQUE (user_id, target_type, target_id)
                )`,
		},
		{
			ID:          "postly-008",
			Description: "Create moderation_audit table",
			SQL: `
                CREATE TABLE IF NOT EXISTS moderation_audit (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    actor_id UUID NOT NULL,
                    action TEXT NOT NULL,
                    target_user_id UUID NOT NULL,
                    sub_forum_id TEXT,
                    reason TEXT,
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT
                )`,
		},
		{
			ID:          "postly-009",
			Description: "Index bans and assignments for permission lookups",
			SQL: `
                CREATE INDEX IF NOT EXISTS idx_bans_user ON sub_forum_bans (user_id) WHERE is_active;
                CREATE INDEX IF NOT EXISTS idx_assignments_subforum ON moderator_assignments (sub_forum_id);
                CREATE INDEX IF NOT EXISTS idx_posts_subforum ON posts (sub_forum_id, created_at DESC);
                CREATE INDEX IF NOT EXISTS idx_comments_post ON comments (post_id, created_at ASC)`,
		},
	}
}
