package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChurchAdmin/ChurchAdmin/internal/daemon"
	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

// ErrEmptyPatch is returned by "permissions set" without --grant or --revoke.
var ErrEmptyPatch = errors.New("nothing to set: use --grant and/or --revoke")

func init() { //nolint: gochecknoinits
	permissionsSetCmd.Flags().StringSliceVar(&grants, "grant", nil, "capabilities to grant, e.g. reports.access")
	permissionsSetCmd.Flags().StringSliceVar(&revokes, "revoke", nil, "capabilities to revoke")
	permissionsSetCmd.Flags().StringVar(&actor, "actor", "", "administrator recorded as updatedBy")
	_ = permissionsSetCmd.MarkFlagRequired("actor")

	permissionsCmd.AddCommand(permissionsShowCmd, permissionsSetCmd, permissionsResetCmd)
	rootCmd.AddCommand(permissionsCmd)
}

var (
	grants  []string
	revokes []string
	actor   string

	permissionsCmd = &cobra.Command{
		Use:               "permissions",
		Short:             "Show and manage permission overrides in the configured backend",
		PersistentPreRunE: loadConfig,
	}

	permissionsShowCmd = &cobra.Command{
		Use:   "show [role]",
		Short: "Show base, override and effective permissions of one or all roles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := rbac.Roles()

			if len(args) == 1 {
				r, err := rbac.ParseRole(args[0])
				if err != nil {
					return err
				}

				roles = []rbac.Role{r}
			}

			store, closeFn, err := daemon.OpenStore(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			resolver := rbac.NewResolver(store)

			out := make([]rbac.Explanation, 0, len(roles))
			for _, r := range roles {
				out = append(out, resolver.Explain(r))
			}

			return printJSON(cmd, out)
		},
	}

	permissionsSetCmd = &cobra.Command{
		Use:   "set <role>",
		Short: "Replace the override of a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rbac.ParseRole(args[0])
			if err != nil {
				return err
			}

			p, err := buildPatch(grants, revokes)
			if err != nil {
				return err
			}

			store, closeFn, err := daemon.OpenStore(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			if _, err = store.Set(cmd.Context(), r, p, actor); err != nil {
				return err
			}

			return printJSON(cmd, rbac.NewResolver(store).Explain(r))
		},
	}

	permissionsResetCmd = &cobra.Command{
		Use:   "reset <role>",
		Short: "Remove the override of a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rbac.ParseRole(args[0])
			if err != nil {
				return err
			}

			store, closeFn, err := daemon.OpenStore(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			if err = store.Reset(cmd.Context(), r); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "override of %s removed\n", r)

			return err
		},
	}
)

// buildPatch turns --grant and --revoke lists into a patch. A capability in both lists is rejected.
func buildPatch(grant, revoke []string) (rbac.Patch, error) {
	var p rbac.Patch

	for _, set := range []struct {
		keys  []string
		value bool
	}{{grant, true}, {revoke, false}} {
		for _, key := range set.keys {
			c, err := rbac.ParseCapability(key)
			if err != nil {
				return rbac.Patch{}, err
			}

			if v, ok := p.Get(c); ok && v != set.value {
				return rbac.Patch{}, fmt.Errorf("%w: %s is both granted and revoked", rbac.ErrInvalidOverride, c)
			}

			p = p.With(c, set.value)
		}
	}

	if p.Empty() {
		return rbac.Patch{}, ErrEmptyPatch
	}

	return p, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
