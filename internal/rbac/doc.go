// Package rbac implements the role and permission model of ChurchAdmin.
//
// The model has five parts:
//   - Role registry: the closed set of roles and their hierarchy rank.
//   - Base table: one fully populated Record per role, compiled into the binary.
//   - Override store: optional administrator authored Patch per role, persisted
//     through a Backend and loaded eagerly at start.
//   - Resolver: merges base and override into the effective Record.
//   - Guard: answers module access, navigation and messaging questions.
//
// Example usage:
//
//	store := rbac.NewStore(backend)
//	if err := store.Load(ctx); err != nil {
//	    log.Warn().Err(err).Msg("permission overrides unavailable, using base table")
//	}
//
//	guard := rbac.NewGuard(rbac.NewResolver(store))
//	if guard.Allowed(rbac.RoleLeader, rbac.CapAttendanceRecord) {
//	    // enable the attendance form
//	}
package rbac
