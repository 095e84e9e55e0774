package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/pkg/errors"
	"github.com/swellwatch/buoy/pkg/ndbc"
)

// newReportCmd creates the report command, showing the latest observation.
func newReportCmd() *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Show the latest observation for one station",
		Long: `Show the latest wave and water temperature observation reported
by one NDBC station.

Example:
  buoy report 46042`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := errors.ValidateStationID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client := newClient(ctx, configFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching report for station %d...", id))
			spinner.Start()
			report, err := client.Report(ctx, id, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}

// printReport renders one observation as labeled values.
// Measurements the station didn't report are shown as dashes.
func printReport(r *ndbc.Report) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Station %d", r.StationID)))
	printDetail("observed %s", r.Timestamp.Format("15:04 MST on 2006-01-02"))
	printNewline()
	printKeyValue("Wave height", formatFloat(r.WaveHeight, "ft"))
	printKeyValue("Dominant period", formatFloat(r.DominantPeriod, "sec"))
	printKeyValue("Average period", formatFloat(r.AveragePeriod, "sec"))
	printKeyValue("Mean direction", formatDegrees(r.MeanDirectionDeg))
	printKeyValue("Water temp", formatFloat(r.WaterTemp, "°F"))
}

func formatFloat(v *float64, unit string) string {
	if v == nil {
		return StyleDim.Render("—")
	}
	return fmt.Sprintf("%.1f %s", *v, unit)
}

func formatDegrees(v *int) string {
	if v == nil {
		return StyleDim.Render("—")
	}
	return fmt.Sprintf("%d°", *v)
}
