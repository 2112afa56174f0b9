package rbac

import "fmt"

// Capability is a named boolean permission in resource.action form.
type Capability string

const (
	// CapDashboardAccess allows opening the dashboard.
	CapDashboardAccess Capability = "dashboard.access"
	// CapMembersAccess allows opening the member roster.
	CapMembersAccess Capability = "members.access"
	// CapGroupsAccess allows opening the group roster.
	CapGroupsAccess Capability = "groups.access"
	// CapAttendanceAccess allows opening attendance logs.
	CapAttendanceAccess Capability = "attendance.access"
	// CapAnnouncementsAccess allows reading announcements.
	CapAnnouncementsAccess Capability = "announcements.access"
	// CapMessagesAccess allows opening the messaging inbox.
	CapMessagesAccess Capability = "messages.access"
	// CapDiscipleshipAccess allows opening the discipleship curriculum tracker.
	CapDiscipleshipAccess Capability = "discipleship.access"
	// CapResourcesAccess allows browsing shared resources.
	CapResourcesAccess Capability = "resources.access"
	// CapReportsAccess allows opening reports.
	CapReportsAccess Capability = "reports.access"
	// CapSettingsAccess allows opening application settings.
	CapSettingsAccess Capability = "settings.access"

	// CapMembersManage allows creating, editing and removing members.
	CapMembersManage Capability = "members.manage"
	// CapGroupsManage allows creating, editing and removing groups.
	CapGroupsManage Capability = "groups.manage"
	// CapAttendanceRecord allows logging attendance.
	CapAttendanceRecord Capability = "attendance.record"
	// CapAnnouncementsPublish allows publishing announcements.
	CapAnnouncementsPublish Capability = "announcements.publish"
	// CapResourcesUpload allows uploading shared resources.
	CapResourcesUpload Capability = "resources.upload"
	// CapPermissionsManage allows editing role permission overrides.
	CapPermissionsManage Capability = "permissions.manage"

	// CapMessagesAll allows messaging every member of the congregation.
	CapMessagesAll Capability = "messages.all"
	// CapMessagesOwnGroup allows messaging the members of the sender's own group.
	CapMessagesOwnGroup Capability = "messages.own_group"
)

// Record is the full, fixed shape set of capabilities of a role.
type Record struct {
	DashboardAccess     bool `json:"dashboard.access"`
	MembersAccess       bool `json:"members.access"`
	GroupsAccess        bool `json:"groups.access"`
	AttendanceAccess    bool `json:"attendance.access"`
	AnnouncementsAccess bool `json:"announcements.access"`
	MessagesAccess      bool `json:"messages.access"`
	DiscipleshipAccess  bool `json:"discipleship.access"`
	ResourcesAccess     bool `json:"resources.access"`
	ReportsAccess       bool `json:"reports.access"`
	SettingsAccess      bool `json:"settings.access"`

	MembersManage        bool `json:"members.manage"`
	GroupsManage         bool `json:"groups.manage"`
	AttendanceRecord     bool `json:"attendance.record"`
	AnnouncementsPublish bool `json:"announcements.publish"`
	ResourcesUpload      bool `json:"resources.upload"`
	PermissionsManage    bool `json:"permissions.manage"`

	MessagesAll      bool `json:"messages.all"`
	MessagesOwnGroup bool `json:"messages.own_group"`
}

// Patch is a partial Record. A nil field keeps the base value.
type Patch struct {
	DashboardAccess     *bool `json:"dashboard.access,omitempty"`
	MembersAccess       *bool `json:"members.access,omitempty"`
	GroupsAccess        *bool `json:"groups.access,omitempty"`
	AttendanceAccess    *bool `json:"attendance.access,omitempty"`
	AnnouncementsAccess *bool `json:"announcements.access,omitempty"`
	MessagesAccess      *bool `json:"messages.access,omitempty"`
	DiscipleshipAccess  *bool `json:"discipleship.access,omitempty"`
	ResourcesAccess     *bool `json:"resources.access,omitempty"`
	ReportsAccess       *bool `json:"reports.access,omitempty"`
	SettingsAccess      *bool `json:"settings.access,omitempty"`

	MembersManage        *bool `json:"members.manage,omitempty"`
	GroupsManage         *bool `json:"groups.manage,omitempty"`
	AttendanceRecord     *bool `json:"attendance.record,omitempty"`
	AnnouncementsPublish *bool `json:"announcements.publish,omitempty"`
	ResourcesUpload      *bool `json:"resources.upload,omitempty"`
	PermissionsManage    *bool `json:"permissions.manage,omitempty"`

	MessagesAll      *bool `json:"messages.all,omitempty"`
	MessagesOwnGroup *bool `json:"messages.own_group,omitempty"`
}

// field binds a capability to its Record and Patch fields.
type field struct {
	capability Capability
	record     func(*Record) *bool
	patch      func(*Patch) **bool
}

// fields lists every capability in declaration order.
// A capability added to Record and Patch must be added here as well.
var fields = []field{ //nolint:gochecknoglobals
	{CapDashboardAccess, func(r *Record) *bool { return &r.DashboardAccess }, func(p *Patch) **bool { return &p.DashboardAccess }},
	{CapMembersAccess, func(r *Record) *bool { return &r.MembersAccess }, func(p *Patch) **bool { return &p.MembersAccess }},
	{CapGroupsAccess, func(r *Record) *bool { return &r.GroupsAccess }, func(p *Patch) **bool { return &p.GroupsAccess }},
	{CapAttendanceAccess, func(r *Record) *bool { return &r.AttendanceAccess }, func(p *Patch) **bool { return &p.AttendanceAccess }},
	{CapAnnouncementsAccess, func(r *Record) *bool { return &r.AnnouncementsAccess }, func(p *Patch) **bool { return &p.AnnouncementsAccess }},
	{CapMessagesAccess, func(r *Record) *bool { return &r.MessagesAccess }, func(p *Patch) **bool { return &p.MessagesAccess }},
	{CapDiscipleshipAccess, func(r *Record) *bool { return &r.DiscipleshipAccess }, func(p *Patch) **bool { return &p.DiscipleshipAccess }},
	{CapResourcesAccess, func(r *Record) *bool { return &r.ResourcesAccess }, func(p *Patch) **bool { return &p.ResourcesAccess }},
	{CapReportsAccess, func(r *Record) *bool { return &r.ReportsAccess }, func(p *Patch) **bool { return &p.ReportsAccess }},
	{CapSettingsAccess, func(r *Record) *bool { return &r.SettingsAccess }, func(p *Patch) **bool { return &p.SettingsAccess }},
	{CapMembersManage, func(r *Record) *bool { return &r.MembersManage }, func(p *Patch) **bool { return &p.MembersManage }},
	{CapGroupsManage, func(r *Record) *bool { return &r.GroupsManage }, func(p *Patch) **bool { return &p.GroupsManage }},
	{CapAttendanceRecord, func(r *Record) *bool { return &r.AttendanceRecord }, func(p *Patch) **bool { return &p.AttendanceRecord }},
	{CapAnnouncementsPublish, func(r *Record) *bool { return &r.AnnouncementsPublish }, func(p *Patch) **bool { return &p.AnnouncementsPublish }},
	{CapResourcesUpload, func(r *Record) *bool { return &r.ResourcesUpload }, func(p *Patch) **bool { return &p.ResourcesUpload }},
	{CapPermissionsManage, func(r *Record) *bool { return &r.PermissionsManage }, func(p *Patch) **bool { return &p.PermissionsManage }},
	{CapMessagesAll, func(r *Record) *bool { return &r.MessagesAll }, func(p *Patch) **bool { return &p.MessagesAll }},
	{CapMessagesOwnGroup, func(r *Record) *bool { return &r.MessagesOwnGroup }, func(p *Patch) **bool { return &p.MessagesOwnGroup }},
}

// Capabilities returns every capability in declaration order.
func Capabilities() []Capability {
	out := make([]Capability, len(fields))
	for i, f := range fields {
		out[i] = f.capability
	}

	return out
}

// ParseCapability converts an untrusted key into a Capability.
func ParseCapability(key string) (Capability, error) {
	if _, ok := lookup(Capability(key)); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCapability, key)
	}

	return Capability(key), nil
}

func lookup(c Capability) (field, bool) {
	for _, f := range fields {
		if f.capability == c {
			return f, true
		}
	}

	return field{}, false
}

// Has reports whether the record grants c. Unknown capabilities are never granted.
func (r Record) Has(c Capability) bool {
	f, ok := lookup(c)
	if !ok {
		return false
	}

	return *f.record(&r)
}

// Granted returns the granted capabilities in declaration order.
func (r Record) Granted() []Capability {
	out := make([]Capability, 0, len(fields))
	for _, f := range fields {
		if *f.record(&r) {
			out = append(out, f.capability)
		}
	}

	return out
}

// With returns a copy of p with c set to v.
// It panics for an unknown capability; use ParseCapability on untrusted input.
func (p Patch) With(c Capability, v bool) Patch {
	f, ok := lookup(c)
	if !ok {
		panic(fmt.Sprintf("rbac: patch of unknown capability %q", string(c)))
	}

	*f.patch(&p) = &v

	return p
}

// Get returns the value of c in p and whether p sets it at all.
func (p Patch) Get(c Capability) (value, ok bool) {
	f, found := lookup(c)
	if !found {
		return false, false
	}

	v := *f.patch(&p)
	if v == nil {
		return false, false
	}

	return *v, true
}

// Keys returns the capabilities set by p in declaration order.
func (p Patch) Keys() []Capability {
	out := make([]Capability, 0, len(fields))
	for _, f := range fields {
		if *f.patch(&p) != nil {
			out = append(out, f.capability)
		}
	}

	return out
}

// Empty reports whether p sets no capability.
func (p Patch) Empty() bool {
	return len(p.Keys()) == 0
}

// Merge returns base with every capability set in p replaced by the patch value.
// Capabilities p does not set keep the base value. Neither argument is modified.
func Merge(base Record, p Patch) Record {
	out := base

	for _, f := range fields {
		if v := *f.patch(&p); v != nil {
			*f.record(&out) = *v
		}
	}

	return out
}
