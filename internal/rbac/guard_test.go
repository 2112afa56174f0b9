package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleCapability(t *testing.T) {
	for _, m := range DefaultModules() {
		_, err := ParseCapability(string(m.Capability()))
		require.NoError(t, err, "module %s must map to a known capability", m)
	}
}

func TestCanAccessModule(t *testing.T) {
	leader := BaseOf(RoleLeader)

	assert.True(t, CanAccessModule(leader, ModuleGroups))
	assert.True(t, CanAccessModule(leader, ModuleAttendance))
	assert.False(t, CanAccessModule(leader, ModuleReports))
	assert.False(t, CanAccessModule(leader, "choir"))
}

func TestCanMessage(t *testing.T) {
	assert.True(t, CanMessage(RoleAdmin, RoleSupervisor))
	assert.True(t, CanMessage(RoleLeader, RoleMember))
	assert.False(t, CanMessage(RoleMember, RoleAdmin))
	assert.False(t, CanMessage(RoleLeader, RoleLeader))

	for _, r := range Roles() {
		assert.False(t, CanMessage(r, r), "%s must not message its own rank", r)
	}
}

func TestVisibleModulesStableOrder(t *testing.T) {
	perms := Record{GroupsAccess: true, AnnouncementsAccess: true}
	order := []Module{ModuleDashboard, ModuleGroups, ModuleAttendance, ModuleAnnouncements}

	assert.Equal(t, []Module{ModuleGroups, ModuleAnnouncements}, VisibleModules(perms, order))

	reversed := []Module{ModuleAnnouncements, ModuleAttendance, ModuleGroups, ModuleDashboard}
	assert.Equal(t, []Module{ModuleAnnouncements, ModuleGroups}, VisibleModules(perms, reversed))

	assert.Empty(t, VisibleModules(Record{}, DefaultModules()))
	assert.Equal(t, DefaultModules(), VisibleModules(BaseOf(RoleAdmin), DefaultModules()))
}

func TestRecipients(t *testing.T) {
	assert.Equal(t, []Role{RoleSupervisor, RoleLeader, RoleMember, RoleGuest}, Recipients(RoleAdmin))
	assert.Equal(t, []Role{RoleMember, RoleGuest}, Recipients(RoleLeader))
	assert.Empty(t, Recipients(RoleGuest))
}

func TestGuard(t *testing.T) {
	s := newTestStore(t, newMemoryBackend())
	g := NewGuard(NewResolver(s))

	assert.False(t, g.Allowed(RoleLeader, CapReportsAccess))
	assert.NotContains(t, g.Modules(RoleLeader, DefaultModules()), ModuleReports)

	_, err := s.Set(context.Background(), RoleLeader, Patch{}.With(CapReportsAccess, true), "a")
	require.NoError(t, err)

	assert.True(t, g.Allowed(RoleLeader, CapReportsAccess))
	assert.Contains(t, g.Modules(RoleLeader, DefaultModules()), ModuleReports)
	assert.NotNil(t, g.Resolver())
}

func TestParseModule(t *testing.T) {
	m, err := ParseModule("attendance")
	require.NoError(t, err)
	assert.Equal(t, ModuleAttendance, m)

	_, err = ParseModule("choir")
	require.ErrorIs(t, err, ErrUnknownModule)
}
