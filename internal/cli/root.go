package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/pkg/buildinfo"
	"github.com/swellwatch/buoy/pkg/config"
)

// Execute runs the buoy CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, loads
// configuration, and configures logging based on the --verbose flag.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger and configuration are attached to the context and accessible
// to all commands via loggerFromContext and configFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "buoy",
		Short:        "Buoy collects marine observations from NOAA NDBC stations",
		Long:         `Buoy is a CLI tool for fetching wave and water temperature observations from the NOAA National Data Buoy Center, archiving them locally, and publishing them to S3.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/buoy/config.toml)")

	root.AddCommand(newStationsCmd())
	root.AddCommand(newStationCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
