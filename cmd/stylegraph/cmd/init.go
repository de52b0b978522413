/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration file with default decode settings and a freshly
generated API key.

The file goes to --config, or ~/.config/stylegraph/config.yaml. A path ending
in .toml is written as TOML.

Examples:
  stylegraph init
  stylegraph init --config ./stylegraph.toml --data-dir ./records`,
	Args: cobra.NoArgs,
	// The config file may not exist yet, so skip loading it.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		cfg, path, err := initializeConfig(path, dataDir, force)
		if err != nil {
			return err
		}

		cmd.Printf("Configuration written to %s\n", path)
		cmd.Printf("Data directory: %s\n", cfg.Library.DataDir)
		cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  stylegraph serve --config %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// initializeConfig bootstraps the config file at path (the default path when
// empty) and returns the written config and the path used.
func initializeConfig(path, dataDir string, force bool) (*config.Config, string, error) {
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if config.ConfigExists(path) && !force {
		return nil, path, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := config.BootstrapConfig(path, dataDir)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
