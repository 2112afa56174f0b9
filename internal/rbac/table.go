package rbac

import "fmt"

// baseTable is the canonical permission record per role.
// It is configuration compiled into the binary and never changes at runtime.
var baseTable = map[Role]Record{ //nolint:gochecknoglobals
	RoleAdmin: {
		DashboardAccess:      true,
		MembersAccess:        true,
		GroupsAccess:         true,
		AttendanceAccess:     true,
		AnnouncementsAccess:  true,
		MessagesAccess:       true,
		DiscipleshipAccess:   true,
		ResourcesAccess:      true,
		ReportsAccess:        true,
		SettingsAccess:       true,
		MembersManage:        true,
		GroupsManage:         true,
		AttendanceRecord:     true,
		AnnouncementsPublish: true,
		ResourcesUpload:      true,
		PermissionsManage:    true,
		MessagesAll:          true,
		MessagesOwnGroup:     true,
	},
	RoleSupervisor: {
		DashboardAccess:      true,
		MembersAccess:        true,
		GroupsAccess:         true,
		AttendanceAccess:     true,
		AnnouncementsAccess:  true,
		MessagesAccess:       true,
		DiscipleshipAccess:   true,
		ResourcesAccess:      true,
		ReportsAccess:        true,
		SettingsAccess:       false,
		MembersManage:        true,
		GroupsManage:         true,
		AttendanceRecord:     true,
		AnnouncementsPublish: true,
		ResourcesUpload:      true,
		PermissionsManage:    false,
		MessagesAll:          true,
		MessagesOwnGroup:     true,
	},
	RoleLeader: {
		DashboardAccess:      true,
		MembersAccess:        true,
		GroupsAccess:         true,
		AttendanceAccess:     true,
		AnnouncementsAccess:  true,
		MessagesAccess:       true,
		DiscipleshipAccess:   true,
		ResourcesAccess:      true,
		ReportsAccess:        false,
		SettingsAccess:       false,
		MembersManage:        false,
		GroupsManage:         false,
		AttendanceRecord:     true,
		AnnouncementsPublish: false,
		ResourcesUpload:      true,
		PermissionsManage:    false,
		MessagesAll:          false,
		MessagesOwnGroup:     true,
	},
	RoleMember: {
		DashboardAccess:      true,
		MembersAccess:        false,
		GroupsAccess:         false,
		AttendanceAccess:     false,
		AnnouncementsAccess:  true,
		MessagesAccess:       true,
		DiscipleshipAccess:   true,
		ResourcesAccess:      true,
		ReportsAccess:        false,
		SettingsAccess:       false,
		MembersManage:        false,
		GroupsManage:         false,
		AttendanceRecord:     false,
		AnnouncementsPublish: false,
		ResourcesUpload:      false,
		PermissionsManage:    false,
		MessagesAll:          false,
		MessagesOwnGroup:     true,
	},
	RoleGuest: {
		DashboardAccess:      true,
		MembersAccess:        false,
		GroupsAccess:         false,
		AttendanceAccess:     false,
		AnnouncementsAccess:  true,
		MessagesAccess:       false,
		DiscipleshipAccess:   false,
		ResourcesAccess:      false,
		ReportsAccess:        false,
		SettingsAccess:       false,
		MembersManage:        false,
		GroupsManage:         false,
		AttendanceRecord:     false,
		AnnouncementsPublish: false,
		ResourcesUpload:      false,
		PermissionsManage:    false,
		MessagesAll:          false,
		MessagesOwnGroup:     false,
	},
}

// BaseOf returns the base permission record of r.
// It panics for a role outside the registry.
func BaseOf(r Role) Record {
	rec, ok := baseTable[r]
	if !ok {
		panic(fmt.Sprintf("rbac: no base permissions for role %q", string(r)))
	}

	return rec
}

// ValidateTable checks that the base table has exactly one entry per registered role.
func ValidateTable() error {
	return validateTable(baseTable)
}

func validateTable(table map[Role]Record) error {
	for _, r := range Roles() {
		if _, ok := table[r]; !ok {
			return fmt.Errorf("%w: missing role %q", ErrIncompleteTable, string(r))
		}
	}

	for r := range table {
		if !r.Valid() {
			return fmt.Errorf("%w: entry for unregistered role %q", ErrIncompleteTable, string(r))
		}
	}

	return nil
}
