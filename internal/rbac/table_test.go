package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTable(t *testing.T) {
	require.NoError(t, ValidateTable())
}

func TestValidateTableDetectsGaps(t *testing.T) {
	missing := map[Role]Record{}
	for r, rec := range baseTable {
		if r != RoleGuest {
			missing[r] = rec
		}
	}

	require.ErrorIs(t, validateTable(missing), ErrIncompleteTable)

	extra := map[Role]Record{"pastor": {}}
	for r, rec := range baseTable {
		extra[r] = rec
	}

	require.ErrorIs(t, validateTable(extra), ErrIncompleteTable)
}

// TestBaseTableTotality checks that every role has a base record and that
// every capability of that record can be looked up.
func TestBaseTableTotality(t *testing.T) {
	for _, r := range Roles() {
		rec := BaseOf(r)

		for _, c := range Capabilities() {
			assert.NotPanics(t, func() { _ = rec.Has(c) })
		}
	}
}

func TestBaseTablePolicy(t *testing.T) {
	assert.ElementsMatch(t, Capabilities(), BaseOf(RoleAdmin).Granted(), "admin holds every capability")
	assert.Equal(t, []Capability{CapDashboardAccess, CapAnnouncementsAccess}, BaseOf(RoleGuest).Granted())

	for _, r := range Roles() {
		if r != RoleAdmin {
			assert.False(t, BaseOf(r).PermissionsManage, "%s must not manage permissions by default", r)
		}
	}

	assert.False(t, BaseOf(RoleLeader).ReportsAccess)
	assert.True(t, BaseOf(RoleLeader).GroupsAccess)
}

func TestBaseOfPanicsForUnknownRole(t *testing.T) {
	assert.Panics(t, func() { _ = BaseOf("pastor") })
}
