/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/config"
	"github.com/ssargent/stylegraph/pkg/di"
	"github.com/ssargent/stylegraph/pkg/logging"
)

var (
	container *di.Container
	settings  = config.DefaultConfig()
	logger    = zerolog.Nop()
)

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stylegraph",
	Short: "stylegraph - cartographic style record decoder",
	Long: `stylegraph decodes persisted cartographic style records (renderers, line
symbols, colors, field and data-source descriptors) into inspectable snapshots.

Records can be decoded one at a time, kept in a local library, or served over
a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		settings = cfg
		logger = newLogger(cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/stylegraph/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Record library directory (overrides config)")
}

// loadSettings resolves flags over the config file over defaults. An
// explicit --config must exist; the default path is optional.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	switch {
	case path != "":
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case config.ConfigExists(config.GetDefaultConfigPath()):
		loaded, err := config.LoadConfig(config.GetDefaultConfigPath())
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
	}

	if f := cmd.Flags().Lookup("data-dir"); f != nil && f.Changed {
		cfg.Library.DataDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Logging.Level = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Logging.Level); ok {
		lc.Level = lvl
	}
	lc.NoColor = cfg.Logging.NoColor
	logging.ApplyEnv(&lc)
	return logging.New(lc)
}

func registry() (*codec.Registry, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}
	return container.Registry()
}

// resolvedMaxDepth is the configured nesting bound, or the command's
// --max-depth when set.
func resolvedMaxDepth(cmd *cobra.Command) int {
	if f := cmd.Flags().Lookup("max-depth"); f != nil && f.Changed {
		d, _ := cmd.Flags().GetInt("max-depth")
		return d
	}
	return settings.Decode.MaxDepth
}

// decodeOptions returns stream options from the config, with the given
// command's --version, --max-depth, --strict and --trace flags applied when
// set.
func decodeOptions(cmd *cobra.Command) []codec.Option {
	version := settings.Decode.DefaultVersion
	if f := cmd.Flags().Lookup("version"); f != nil && f.Changed {
		version, _ = cmd.Flags().GetInt("version")
	}

	opts := []codec.Option{codec.WithMaxDepth(resolvedMaxDepth(cmd)), codec.WithVersion(version)}

	strict := settings.Decode.Strict
	if f := cmd.Flags().Lookup("strict"); f != nil && f.Changed {
		strict, _ = cmd.Flags().GetBool("strict")
	}
	if strict {
		opts = append(opts, codec.WithStrictLength())
	}

	trace := settings.Decode.Trace
	if f := cmd.Flags().Lookup("trace"); f != nil && f.Changed {
		trace, _ = cmd.Flags().GetBool("trace")
	}
	if trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		opts = append(opts, codec.WithLogger(logger.Level(zerolog.TraceLevel)))
	}
	return opts
}
