/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/stylegraph/pkg/api"
	"github.com/ssargent/stylegraph/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the stylegraph REST API server.

The server decodes uploaded records, lists known classes and exposes the local
record library. Every /api/v1 route requires the X-API-Key header. When no key
is configured (or it is "auto") a key is generated for this run and logged.

Examples:
  stylegraph serve
  stylegraph serve --port 9090 --bind 0.0.0.0 --api-key mysecretkey`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg, err := registry()
		if err != nil {
			return err
		}

		return withLibrary(cmd, func(lib api.ManagedLibrary) error {
			starter := container.GetServerFactory().CreateServerStarter()
			return starter.StartServer(ctx, reg, lib, cfg, logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
}

// serverConfig merges serve flags over the loaded settings.
func serverConfig(cmd *cobra.Command) (api.ServerConfig, error) {
	cfg := api.ServerConfig{
		Port:           settings.Server.Port,
		Bind:           settings.Server.Bind,
		APIKey:         settings.Server.APIKey,
		MaxDepth:       settings.Decode.MaxDepth,
		DefaultVersion: settings.Decode.DefaultVersion,
		Strict:         settings.Decode.Strict,
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		cfg.Bind, _ = cmd.Flags().GetString("bind")
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey, _ = cmd.Flags().GetString("api-key")
	}

	if cfg.APIKey == "" || cfg.APIKey == "auto" {
		key, err := config.GenerateSecureKey(32)
		if err != nil {
			return cfg, err
		}
		cfg.APIKey = key
		logger.Warn().Str("api_key", key).Msg("no API key configured, generated one for this run")
	}
	return cfg, nil
}
