package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChurchAdmin/ChurchAdmin/internal/rbac"
)

func init() { //nolint: gochecknoinits
	tableCmd.AddCommand(tableCheckCmd)
	rootCmd.AddCommand(tableCmd)
}

var (
	tableCmd = &cobra.Command{
		Use:   "table",
		Short: "Inspect the base permission table",
	}

	tableCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "Verify that every role has exactly one base permission record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rbac.ValidateTable(); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "base permission table complete: %d roles, %d capabilities\n",
				len(rbac.Roles()), len(rbac.Capabilities()))

			return err
		},
	}
)
