package rbac

import (
	"fmt"
	"sort"
	"strings"
)

// Role is a named category of user with a fixed place in the church hierarchy.
type Role string

const (
	// RoleAdmin administers the whole congregation, including role permissions.
	RoleAdmin Role = "admin"
	// RoleSupervisor oversees several groups and their leaders.
	RoleSupervisor Role = "supervisor"
	// RoleLeader leads a single group.
	RoleLeader Role = "leader"
	// RoleMember is a registered member of the congregation.
	RoleMember Role = "member"
	// RoleGuest is a visitor without membership.
	RoleGuest Role = "guest"
)

// roleRanks is the hierarchy rank per role (higher rank = more authority).
var roleRanks = map[Role]int{ //nolint:gochecknoglobals
	RoleGuest:      0,
	RoleMember:     1,
	RoleLeader:     2,
	RoleSupervisor: 3,
	RoleAdmin:      4,
}

// Roles returns every registered role ordered by descending rank.
func Roles() []Role {
	out := make([]Role, 0, len(roleRanks))
	for r := range roleRanks {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		return roleRanks[out[i]] > roleRanks[out[j]]
	})

	return out
}

// ParseRole converts an untrusted name into a Role.
// Surrounding whitespace and letter case are ignored.
func ParseRole(name string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}

	return r, nil
}

// Valid reports whether r is part of the registry.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the hierarchy rank of r.
// It panics for a role outside the registry; use ParseRole on untrusted input.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		panic(fmt.Sprintf("rbac: rank of unregistered role %q", string(r)))
	}

	return rank
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Dominates reports whether a ranks strictly above b. A role never dominates itself.
func Dominates(a, b Role) bool {
	return a.Rank() > b.Rank()
}
