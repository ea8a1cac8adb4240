package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fleetview/fleetview/config"
	"github.com/fleetview/fleetview/providers"
	"github.com/fleetview/fleetview/providers/aws"
	"github.com/fleetview/fleetview/providers/static"
)

var (
	version    = "0.1.0"
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "fleetview",
		Short: "Unified server group views across cloud providers",
		Long: `Fleetview aggregates server group state from heterogeneous cloud
provider backends and projects it into unified views.

Ask "what server groups exist for application X" without knowing which
backend, cloud, or account produced each group.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "fleetview.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildSources loads the configuration and registers one source per
// configured account plus one per fixture file.
func buildSources(ctx context.Context) ([]providers.Source, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	providers.Reset()
	for _, account := range cfg.Accounts {
		switch account.Provider {
		case "aws":
			src, err := aws.New(ctx, aws.Config{Account: account.Name, Region: account.Region})
			if err != nil {
				return nil, nil, fmt.Errorf("account %s: %w", account.Name, err)
			}
			providers.Register(src)
		default:
			return nil, nil, fmt.Errorf("account %s: unknown provider %q", account.Name, account.Provider)
		}
	}
	for _, path := range cfg.Fixtures {
		src, err := static.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		providers.Register(src)
	}

	return providers.All(), cfg, nil
}
