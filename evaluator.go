package postly

import "time"

// Denial detail strings. Clients distinguish a global ban from a scoped ban
// by these exact messages, so they must not change.
const (
	DetailGloballyBanned = "you are banned from the platform"
	DetailSubForumBanned = "you are banned from posting in this subforum"
)

// Decision is the outcome of a permission evaluation.
type Decision struct {
	Allowed bool
	Reason  string // short machine-friendly reason when denied
	Detail  string // client-facing message when denied
}

// Denial reasons.
const (
	ReasonGloballyBanned = "globally banned"
	ReasonSubForumBanned = "subforum banned"
)

var allowed = Decision{Allowed: true}

func denied(reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}

// Actor is a point-in-time snapshot of one user's authorization state: the
// global rank and ban flag from the user row, every moderator assignment the
// user holds, and every subforum ban currently recorded against them. All
// evaluation methods are pure functions over this snapshot.
type Actor struct {
	User        User
	Assignments []ModeratorAssignment
	Bans        []SubForumBan

	// Indexed for fast lookup
	bySubForum map[string]*ModeratorAssignment
}

// NewActor builds an Actor snapshot.
func NewActor(user User, assignments []ModeratorAssignment, bans []SubForumBan) *Actor {
	a := &Actor{
		User:        user,
		Assignments: assignments,
		Bans:        bans,
		bySubForum:  make(map[string]*ModeratorAssignment, len(assignments)),
	}
	for i := range assignments {
		a.bySubForum[assignments[i].SubForumID] = &assignments[i]
	}
	return a
}

// Assignment returns the actor's assignment in a subforum, or nil.
func (a *Actor) Assignment(subForumID string) *ModeratorAssignment {
	return a.bySubForum[subForumID]
}

// IsModeratorOf reports whether the actor holds any assignment (moderator or
// admin) in the subforum.
func (a *Actor) IsModeratorOf(subForumID string) bool {
	return a.Assignment(subForumID) != nil
}

// IsAdminOf reports whether the actor holds an admin assignment in the subforum.
func (a *Actor) IsAdminOf(subForumID string) bool {
	as := a.Assignment(subForumID)
	return as != nil && as.IsAdmin
}

// BanIn returns the actor's ban record in a subforum regardless of state, or nil.
func (a *Actor) BanIn(subForumID string) *SubForumBan {
	for i := range a.Bans {
		if a.Bans[i].SubForumID == subForumID {
			return &a.Bans[i]
		}
	}
	return nil
}

// CanMutate decides whether the actor may create or update content in the
// given subforum. The checks run in a fixed order:
//
//  1. a global ban denies everywhere, regardless of subforum state
//  2. a subforum ban in effect at now denies in that subforum only
//  3. otherwise allowed
func (a *Actor) CanMutate(subForumID string, now time.Time) Decision {
	if a.User.IsBanned {
		return denied(ReasonGloballyBanned, DetailGloballyBanned)
	}
	if ban := a.BanIn(subForumID); ban != nil && ban.InEffect(now) {
		return denied(ReasonSubForumBanned, DetailSubForumBanned)
	}
	return allowed
}

// CanModerateContent is the object-level check for editing or deleting a
// piece of content. The actor qualifies as its author, as a super_admin, or
// by holding any assignment (moderator or admin) in the owning subforum.
func (a *Actor) CanModerateContent(authorID, subForumID string) bool {
	if a.User.ID == authorID {
		return true
	}
	if a.User.Role == RoleSuperAdmin {
		return true
	}
	return a.IsModeratorOf(subForumID)
}

// CanBanIn reports whether the actor may place or lift subforum bans in the
// given subforum: super_admin anywhere, otherwise any assignment there.
func (a *Actor) CanBanIn(subForumID string) bool {
	return a.User.Role == RoleSuperAdmin || a.IsModeratorOf(subForumID)
}

// CanModifyBan reports whether the actor may modify or lift an existing ban,
// given the global role of whoever placed it. A ban placed by a super_admin
// may only be touched by a super_admin; one placed by a subforum_admin only
// by an admin of that subforum or higher.
func (a *Actor) CanModifyBan(bannerRole Role, subForumID string) bool {
	if a.User.Role == RoleSuperAdmin {
		return true
	}
	switch bannerRole {
	case RoleSuperAdmin:
		return false
	case RoleSubForumAdmin:
		return a.IsAdminOf(subForumID)
	default:
		return true
	}
}

// OutranksUser reports whether the actor's global rank is strictly above the
// target's. Rank-gated bans require strict dominance.
func (a *Actor) OutranksUser(target *User) bool {
	return a.User.Role.Outranks(target.Role)
}
