package rbac

import (
	"fmt"
	"strings"
)

// Module is a navigable area of the mobile application.
type Module string

// Modules of the mobile application.
const (
	ModuleDashboard     Module = "dashboard"
	ModuleMembers       Module = "members"
	ModuleGroups        Module = "groups"
	ModuleAttendance    Module = "attendance"
	ModuleAnnouncements Module = "announcements"
	ModuleMessages      Module = "messages"
	ModuleDiscipleship  Module = "discipleship"
	ModuleResources     Module = "resources"
	ModuleReports       Module = "reports"
	ModuleSettings      Module = "settings"
)

// DefaultModules returns the navigation order of all modules.
func DefaultModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleMembers,
		ModuleGroups,
		ModuleAttendance,
		ModuleAnnouncements,
		ModuleMessages,
		ModuleDiscipleship,
		ModuleResources,
		ModuleReports,
		ModuleSettings,
	}
}

// Capability returns the capability that grants access to m.
func (m Module) Capability() Capability {
	return Capability(string(m) + ".access")
}

// CanAccessModule reports whether perms grant access to m.
func CanAccessModule(perms Record, m Module) bool {
	return perms.Has(m.Capability())
}

// CanMessage reports whether sender may message target.
// Messages only flow downward in the hierarchy; same rank peers are excluded.
func CanMessage(sender, target Role) bool {
	return Dominates(sender, target)
}

// VisibleModules returns the modules perms grant access to, in the order given.
func VisibleModules(perms Record, modules []Module) []Module {
	out := make([]Module, 0, len(modules))

	for _, m := range modules {
		if CanAccessModule(perms, m) {
			out = append(out, m)
		}
	}

	return out
}

// Recipients returns the roles sender may message, by descending rank.
func Recipients(sender Role) []Role {
	out := make([]Role, 0)

	for _, r := range Roles() {
		if CanMessage(sender, r) {
			out = append(out, r)
		}
	}

	return out
}

// Guard answers access questions for a role using its effective permissions.
type Guard struct {
	resolver *Resolver
}

// NewGuard creates a guard on top of resolver.
func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Resolver returns the resolver the guard uses.
func (g *Guard) Resolver() *Resolver {
	return g.resolver
}

// Allowed reports whether r currently holds capability c.
func (g *Guard) Allowed(r Role, c Capability) bool {
	return g.resolver.Resolve(r).Has(c)
}

// Modules returns the modules of the given order that r may open.
func (g *Guard) Modules(r Role, order []Module) []Module {
	return VisibleModules(g.resolver.Resolve(r), order)
}

// ParseModule converts an untrusted key into a Module.
func ParseModule(key string) (Module, error) {
	name := strings.ToLower(strings.TrimSpace(key))

	for _, m := range DefaultModules() {
		if string(m) == name {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownModule, key)
}
