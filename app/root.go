// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/ChurchAdmin/ChurchAdmin/internal/config"
	"github.com/ChurchAdmin/ChurchAdmin/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "churchadmin",
		Short: "ChurchAdmin serves role based permissions for the church mobile apps",
		Long: `ChurchAdmin resolves what each church role may see and do.
It combines a fixed base permission table with administrator overrides
and exposes the result to the mobile clients through a JSON API.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "path to the directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initialises the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}
