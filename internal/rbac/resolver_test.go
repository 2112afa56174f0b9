package rbac

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithoutOverride(t *testing.T) {
	res := NewResolver(newTestStore(t, newMemoryBackend()))

	for _, r := range Roles() {
		assert.Equal(t, BaseOf(r), res.Resolve(r))
	}

	assert.Equal(t, BaseOf(RoleMember), NewResolver(nil).Resolve(RoleMember))
}

func TestResolveOverridePrecedence(t *testing.T) {
	s := newTestStore(t, newMemoryBackend())
	res := NewResolver(s)

	require.False(t, BaseOf(RoleLeader).ReportsAccess)

	_, err := s.Set(context.Background(), RoleLeader, Patch{}.With(CapReportsAccess, true), "pastor.ana")
	require.NoError(t, err)

	got := res.Resolve(RoleLeader)
	assert.True(t, got.ReportsAccess)
	assert.Equal(t, BaseOf(RoleLeader).GroupsAccess, got.GroupsAccess)

	want := BaseOf(RoleLeader)
	want.ReportsAccess = true
	assert.Equal(t, want, got)

	// other roles are unaffected
	assert.Equal(t, BaseOf(RoleMember), res.Resolve(RoleMember))
}

func TestResolveOverrideCanRevoke(t *testing.T) {
	s := newTestStore(t, newMemoryBackend())
	res := NewResolver(s)

	_, err := s.Set(context.Background(), RoleSupervisor, Patch{}.With(CapMembersManage, false), "a")
	require.NoError(t, err)

	assert.False(t, res.Resolve(RoleSupervisor).MembersManage)
	assert.True(t, res.Resolve(RoleSupervisor).GroupsManage)
}

func TestResetRestoresBase(t *testing.T) {
	s := newTestStore(t, newMemoryBackend())
	res := NewResolver(s)
	ctx := context.Background()

	for _, r := range Roles() {
		p := Patch{}
		for _, c := range Capabilities() {
			p = p.With(c, !BaseOf(r).Has(c))
		}

		_, err := s.Set(ctx, r, p, "a")
		require.NoError(t, err)
		assert.NotEqual(t, BaseOf(r), res.Resolve(r))

		require.NoError(t, s.Reset(ctx, r))
		assert.Equal(t, BaseOf(r), res.Resolve(r))
	}
}

func TestResolveCorruptOverrideFallsBackToBase(t *testing.T) {
	b := newMemoryBackend()
	b.records["leader"] = []byte(`{"role":"leader","permissions":{"reports.access":"true"}`)

	s := NewStore(b)
	require.NoError(t, s.Load(context.Background()))

	res := NewResolver(s)

	assert.NotPanics(t, func() {
		assert.Equal(t, BaseOf(RoleLeader), res.Resolve(RoleLeader))
	})
}

func TestResolvePanicsForUnknownRole(t *testing.T) {
	assert.Panics(t, func() { _ = NewResolver(nil).Resolve("pastor") })
}

func TestExplain(t *testing.T) {
	s := newTestStore(t, newMemoryBackend())
	res := NewResolver(s)

	e := res.Explain(RoleLeader)
	assert.Equal(t, RoleLeader, e.Role)
	assert.Equal(t, RoleLeader.Rank(), e.Rank)
	assert.Nil(t, e.Override)
	assert.Empty(t, e.Overridden)
	assert.Equal(t, e.Base, e.Effective)

	// setting a capability to its base value is not reported as overridden
	p := Patch{}.With(CapReportsAccess, true).With(CapGroupsAccess, true)

	_, err := s.Set(context.Background(), RoleLeader, p, "pastor.ana")
	require.NoError(t, err)

	e = res.Explain(RoleLeader)
	require.NotNil(t, e.Override)
	assert.Equal(t, "pastor.ana", e.Override.UpdatedBy)
	assert.Equal(t, []Capability{CapReportsAccess}, e.Overridden)
	assert.True(t, e.Effective.ReportsAccess)
}
