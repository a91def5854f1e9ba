// Package postly implements the authorization and moderation core of a
// role-based discussion forum: sub-forums, posts, comments and votes, gated
// by a role hierarchy, per-subforum moderator assignments, and a ban ledger.
//
// # Core Concepts
//
// Rank: a user's global position in the role hierarchy
// user(0) < moderator(1) < subforum_admin(2) < super_admin(3). Rank gates
// platform-wide actions such as global bans and admin appointment.
//
// Assignment: a (user, subforum) record granting moderator or, with the
// admin flag, admin capability within that subforum only. Rank and
// assignments are independent axes: a rank-0 user can administer a subforum,
// and a subforum_admin by rank holds no power in subforums where they have
// no assignment.
//
// Ban: either global (a flag on the user, effective platform-wide) or scoped
// (a time-bounded record per subforum). A scoped ban's expiry only ever moves
// later across repeat bans, and bans placed by a higher authority cannot be
// modified or lifted by a lower one.
//
// # Basic Usage
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := postly.NewService(db)
//	_, _ = db.Migrate(ctx, service.Migrations())
//
//	ctx = postly.WithActorID(ctx, modID)
//	ban, err := service.SubForumBanUser(ctx, subForumID, userID, 7, "spam")
//
// All mutating operations read the acting user from the context via
// WithActorID and return sentinel-classified errors (ErrForbidden,
// ErrValidation, ErrNotFound, ErrUnauthenticated) that the HTTP layer in
// package httpapi maps onto status codes.
package postly
