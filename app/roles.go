package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(rolesCmd)
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles with their rank and the roles they may message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0) //nolint: mnd

		_, _ = fmt.Fprintln(w, "ROLE\tRANK\tMAY MESSAGE")

		for _, r := range rbac.Roles() {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%v\n", r, r.Rank(), rbac.Recipients(r))
		}

		return w.Flush()
	},
}
