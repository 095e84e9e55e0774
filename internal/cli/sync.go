package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/pkg/archive"
	"github.com/swellwatch/buoy/pkg/config"
	"github.com/swellwatch/buoy/pkg/errors"
	"github.com/swellwatch/buoy/pkg/fleet"
	"github.com/swellwatch/buoy/pkg/ndbc"
	"github.com/swellwatch/buoy/pkg/publish"
)

// syncOpts holds the command-line flags for the sync command.
type syncOpts struct {
	only      string // restrict the run to "stations" or "reports" ("" = both)
	workers   int    // concurrent station fetches (0 = config default)
	refresh   bool   // bypass HTTP cache
	noPublish bool   // skip the S3 upload
	plain     bool   // disable the live progress display
}

// newSyncCmd creates the sync command, collecting the whole fleet.
func newSyncCmd() *cobra.Command {
	var opts syncOpts

	cmd := &cobra.Command{
		Use:   "sync [stations|reports]",
		Short: "Collect the whole fleet, archive it, and publish to S3",
		Long: `Collect metadata and the latest observation from every station in
the NDBC directory, store the results in the local archive, and publish
them to S3. An optional selector restricts the run to station metadata
or observations only.

Publishing requires AWS_ACCESS_KEY and AWS_SECRET_KEY in the environment
(or a .env file); use --no-publish to collect locally only.

Examples:
  buoy sync
  buoy sync stations
  buoy sync reports --no-publish`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"stations", "reports"},
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := parseSyncSelector(args)
			if err != nil {
				return err
			}
			opts.only = only
			return runSync(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent station fetches (default from config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noPublish, "no-publish", false, "skip the S3 upload")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable the live progress display")

	return cmd
}

// parseSyncSelector interprets the optional positional selector.
func parseSyncSelector(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	switch args[0] {
	case "stations", "reports":
		return args[0], nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unknown sync selector %q (expected stations or reports)", args[0])
}

// runSync performs a collection run: stations and/or reports per the
// selector, then archive and publish.
func runSync(ctx context.Context, opts syncOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	client := newClient(ctx, cfg)
	store, err := newArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	workers := opts.workers
	if workers <= 0 {
		workers = cfg.Sync.Workers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ui := newSyncUI(opts.plain, cancel)

	collector := fleet.NewCollector(client, fleet.Options{
		Workers:  workers,
		Refresh:  opts.refresh,
		Logger:   func(msg string, args ...any) { logger.Warnf(msg, args...) },
		Progress: ui.Progress,
	})

	prog := newProgress(logger)

	var (
		stations map[int]*ndbc.Station
		reports  map[int]*ndbc.Report
	)

	if opts.only != "reports" {
		ui.Phase("Collecting station metadata")
		stations, err = collector.Stations(ctx)
		if err != nil {
			ui.Close()
			return err
		}
	}

	if opts.only != "stations" {
		ui.Phase("Collecting observations")
		reports, err = collector.Reports(ctx)
		if err != nil {
			ui.Close()
			return err
		}
	}
	ui.Close()

	prog.done(fmt.Sprintf("Collected %d stations and %d observations", len(stations), len(reports)))

	if err := archiveResults(ctx, store, stations, reports); err != nil {
		return err
	}
	printSuccess("Archived %d stations and %d observations", len(stations), len(reports))
	if fs, ok := store.(*archive.FileStore); ok {
		printDetail("Archive: %s", fs.Path())
	}

	if opts.noPublish {
		printInfo("Publish skipped (--no-publish)")
		return nil
	}
	return publishResults(ctx, cfg, stations, reports)
}

// archiveResults saves the collected data to the local archive.
func archiveResults(ctx context.Context, store archive.Store, stations map[int]*ndbc.Station, reports map[int]*ndbc.Report) error {
	if err := store.SaveStations(ctx, stations); err != nil {
		return err
	}
	for _, r := range reports {
		if err := store.SaveReport(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// publishResults uploads the collected data to S3.
func publishResults(ctx context.Context, cfg config.Config, stations map[int]*ndbc.Station, reports map[int]*ndbc.Report) error {
	publisher, err := publish.NewPublisher(publish.Config{
		Endpoint:  cfg.Publish.Endpoint,
		Region:    cfg.Publish.Region,
		Bucket:    cfg.Publish.Bucket,
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
	})
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Publishing to s3://%s...", cfg.Publish.Bucket))
	spinner.Start()
	if stations != nil {
		if err := publisher.PublishStations(ctx, stations); err != nil {
			spinner.StopWithError(fmt.Sprintf("Publish failed: %v", err))
			return err
		}
	}
	if reports != nil {
		if err := publisher.PublishReports(ctx, reports); err != nil {
			spinner.StopWithError(fmt.Sprintf("Publish failed: %v", err))
			return err
		}
	}
	spinner.Stop()

	printSuccess("Published %d stations and %d observations", len(stations), len(reports))
	printDetail("%s s3://%s (run %s)", iconArrow, cfg.Publish.Bucket, publisher.RunID())
	return nil
}
