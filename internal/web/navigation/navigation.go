// Package navigation builds the module menu shown by the mobile clients.
package navigation

import (
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

// Entry represents a single menu item.
type Entry struct {
	Module rbac.Module `json:"module"`
	Title  string      `json:"title"`
	Path   string      `json:"path"`
	Active bool        `json:"active"`
}

// Menu represents the ordered menu of a role.
type Menu struct {
	Role    rbac.Role `json:"role"`
	Entries []Entry   `json:"entries"`
}

var titles = map[rbac.Module]string{ //nolint:gochecknoglobals
	rbac.ModuleDashboard:     "Dashboard",
	rbac.ModuleMembers:       "Members",
	rbac.ModuleGroups:        "Groups",
	rbac.ModuleAttendance:    "Attendance",
	rbac.ModuleAnnouncements: "Announcements",
	rbac.ModuleMessages:      "Messages",
	rbac.ModuleDiscipleship:  "Discipleship",
	rbac.ModuleResources:     "Resources",
	rbac.ModuleReports:       "Reports",
	rbac.ModuleSettings:      "Settings",
}

// Title returns the display title of a module.
func Title(m rbac.Module) string {
	if t, ok := titles[m]; ok {
		return t
	}

	return string(m)
}

// Path returns the client route of a module.
func Path(m rbac.Module) string {
	return "/" + string(m)
}

// Build creates the menu for the given visible modules.
// The first entry is active when active is empty.
func Build(role rbac.Role, visible []rbac.Module, active rbac.Module) *Menu {
	menu := &Menu{
		Role:    role,
		Entries: make([]Entry, 0, len(visible)),
	}

	for _, m := range visible {
		menu.Entries = append(menu.Entries, Entry{
			Module: m,
			Title:  Title(m),
			Path:   Path(m),
		})
	}

	menu.SetActive(active)

	return menu
}

// SetActive marks m as the active entry. Unknown modules fall back to the first entry.
func (m *Menu) SetActive(module rbac.Module) *Menu {
	found := false

	for i := range m.Entries {
		m.Entries[i].Active = m.Entries[i].Module == module
		found = found || m.Entries[i].Active
	}

	if !found && len(m.Entries) > 0 {
		m.Entries[0].Active = true
	}

	return m
}

// IsVisible checks if the module has an entry in the menu.
func (m *Menu) IsVisible(module rbac.Module) bool {
	for _, e := range m.Entries {
		if e.Module == module {
			return true
		}
	}

	return false
}
