package postly

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a platform account. Role is the user's global rank; per-subforum
// capability lives in ModeratorAssignment. IsBanned is the platform-wide ban
// flag: when false, BanReason and BannedAt are absent; when true, BannedAt is
// always set.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Username     string     `bun:"username,notnull,unique" json:"username"`
	Email        string     `bun:"email,notnull" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         Role       `bun:"role,notnull,default:'user'" json:"role"`
	IsBanned     bool       `bun:"is_banned,notnull,default:false" json:"is_banned"`
	BanReason    *string    `bun:"ban_reason" json:"ban_reason,omitempty"`
	BannedAt     *time.Time `bun:"banned_at" json:"banned_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// SubForum is a user-created community. The creator receives an admin
// assignment in the same transaction that creates the row.
type SubForum struct {
	bun.BaseModel `bun:"table:sub_forums,alias:sf"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description"`
	Rules       string    `bun:"rules" json:"rules"`
	CreatedBy   string    `bun:"created_by,notnull" json:"created_by"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ModeratorAssignment grants a user moderator (or, with IsAdmin, admin)
// capability within one subforum. At most one assignment exists per
// (user, subforum) pair. Removal deletes the row; no history is kept.
type ModeratorAssignment struct {
	bun.BaseModel `bun:"table:moderator_assignments,alias:ma"`

	ID         string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID     string    `bun:"user_id,notnull" json:"user_id"`
	SubForumID string    `bun:"sub_forum_id,notnull" json:"sub_forum_id"`
	AssignedBy string    `bun:"assigned_by,notnull" json:"assigned_by"`
	IsAdmin    bool      `bun:"is_admin,notnull,default:false" json:"is_admin"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// SubForumBan is a time-bounded ban scoped to one subforum. The
// (user, subforum) pair is unique in storage so concurrent ban placement
// serializes on the constraint; repeat bans reuse the row. ExpiresAt only
// ever moves later (monotonic extension). Unbanning flips IsActive and keeps
// ExpiresAt as a historical record.
type SubForumBan struct {
	bun.BaseModel `bun:"table:sub_forum_bans,alias:sfb"`

	ID         string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID     string    `bun:"user_id,notnull" json:"user_id"`
	SubForumID string    `bun:"sub_forum_id,notnull" json:"sub_forum_id"`
	BannedBy   string    `bun:"banned_by,notnull" json:"banned_by"`
	Reason     string    `bun:"reason" json:"reason"`
	IsActive   bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	ExpiresAt  time.Time `bun:"expires_at,notnull" json:"expires_at"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// InEffect reports whether the ban blocks the user at the given instant.
// Expiry is enforced lazily at read time: a ban past its ExpiresAt no longer
// blocks even while IsActive remains true in storage.
func (b *SubForumBan) InEffect(now time.Time) bool {
	return b.IsActive && b.ExpiresAt.After(now)
}

// PostFormat is the authoring format of a post body.
type PostFormat string

const (
	FormatMarkdown PostFormat = "markdown"
	FormatWYSIWYG  PostFormat = "wysiwyg"
)

// Post belongs to exactly one subforum and one author. UpdatedAt is stamped
// only when the content actually changes, and when a comment is added.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID         string     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SubForumID string     `bun:"sub_forum_id,notnull" json:"sub_forum_id"`
	AuthorID   string     `bun:"author_id,notnull" json:"author_id"`
	Title      string     `bun:"title,notnull" json:"title"`
	Content    string     `bun:"content,notnull" json:"content"`
	Format     PostFormat `bun:"format,notnull,default:'markdown'" json:"format"`
	CreatedAt  time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  *time.Time `bun:"updated_at" json:"updated_at,omitempty"`
}

// Comment belongs to exactly one post and one author. ReplyToUserID is
// informational only and carries no ownership implication.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID            string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	PostID        string    `bun:"post_id,notnull" json:"post_id"`
	AuthorID      string    `bun:"author_id,notnull" json:"author_id"`
	ReplyToUserID *string   `bun:"reply_to_user_id" json:"reply_to_user_id,omitempty"`
	Content       string    `bun:"content,notnull" json:"content"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ContentKind tags the two votable / moderatable content types. Owning-
// subforum resolution dispatches on this tag: posts carry their subforum
// directly, comments resolve through their post.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// Valid reports whether the kind is one of the defined content kinds.
func (k ContentKind) Valid() bool {
	return k == KindPost || k == KindComment
}

// ContentRef identifies a post or comment by kind and ID.
type ContentRef struct {
	Kind ContentKind
	ID   string
}

// VoteValue is a vote's direction. Dislike exists for schema compatibility
// but the creation path always stores like.
type VoteValue string

const (
	VoteLike    VoteValue = "like"
	VoteDislike VoteValue = "dislike"
)

// Vote records one user's vote on one target. The (user, target_type,
// target_id) triple is unique; repeat votes return the existing row.
type Vote struct {
	bun.BaseModel `bun:"table:votes,alias:v"`

	ID         string      `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID     string      `bun:"user_id,notnull" json:"user_id"`
	TargetType ContentKind `bun:"target_type,notnull" json:"target_type"`
	TargetID   string      `bun:"target_id,notnull" json:"target_id"`
	Value      VoteValue   `bun:"value,notnull" json:"value"`
	CreatedAt  time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ModerationAudit records moderation actions (assignments, bans) for
// compliance and debugging.
type ModerationAudit struct {
	bun.BaseModel `bun:"table:moderation_audit,alias:maud"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`

	// Who performed the action
	ActorID string `bun:"actor_id,notnull" json:"actor_id"`

	// What action was performed
	Action string `bun:"action,notnull" json:"action"`

	// Target of the action
	TargetUserID string `bun:"target_user_id,notnull" json:"target_user_id"`
	SubForumID   string `bun:"sub_forum_id" json:"sub_forum_id,omitempty"` // empty for global actions
	Reason       string `bun:"reason" json:"reason"`

	// Request metadata for forensics
	IPAddress string `bun:"ip_address" json:"ip_address"`
	UserAgent string `bun:"user_agent" json:"user_agent"`
	RequestID string `bun:"request_id" json:"request_id"`
}

// Audit action names.
const (
	AuditAssignModerator  = "assign_moderator"
	AuditAssignAdmin      = "assign_admin"
	AuditRemoveAssignment = "remove_assignment"
	AuditGlobalBan        = "global_ban"
	AuditGlobalUnban      = "global_unban"
	AuditSubForumBan      = "subforum_ban"
	AuditSubForumUnban    = "subforum_unban"
	AuditCreateSubForum   = "create_subforum"
)

// AuditEntry is used to create new audit records.
type AuditEntry struct {
	ActorID      string
	Action       string
	TargetUserID string
	SubForumID   string
	Reason       string
	IPAddress    string
	UserAgent    string
	RequestID    string
}

// ToModel converts an AuditEntry to a ModerationAudit model.
func (e *AuditEntry) ToModel() *ModerationAudit {
	return &ModerationAudit{
		ActorID:      e.ActorID,
		Action:       e.Action,
		TargetUserID: e.TargetUserID,
		SubForumID:   e.SubForumID,
		Reason:       e.Reason,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		RequestID:    e.RequestID,
		Timestamp:    time.Now(),
	}
}
