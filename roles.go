package postly

import "fmt"

// Role is a user's global rank on the platform. It is one of two independent
// authorization axes: the global rank gates platform-wide actions (global
// bans, admin appointment), while per-subforum capability comes from
// ModeratorAssignment records and is NOT derived from this field.
type Role string

const (
	RoleUser          Role = "user"
	RoleModerator     Role = "moderator"
	RoleSubForumAdmin Role = "subforum_admin"
	RoleSuperAdmin    Role = "super_admin"
)

// rank positions in the global hierarchy. The ordering is the sole basis for
// global-scope comparisons such as "cannot ban a user of equal or higher rank".
var roleRanks = map[Role]int{
	RoleUser:          0,
	RoleModerator:     1,
	RoleSubForumAdmin: 2,
	RoleSuperAdmin:    3,
}

// Rank returns the integer position of the role in the global hierarchy
// (user=0 .. super_admin=3). Unknown roles rank below user.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Outranks reports whether r is strictly higher in the hierarchy than other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// ParseRole converts a string to a Role, validating it against the defined set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: role %q not defined", ErrValidation, s)
	}
	return r, nil
}
