package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/pkg/errors"
	"github.com/swellwatch/buoy/pkg/ndbc"
)

// newSearchCmd creates the search command, finding stations near a position.
func newSearchCmd() *cobra.Command {
	var (
		distance   int
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "search <latitude> <longitude>",
		Short: "Find stations near a position",
		Long: `Find NDBC stations within a radius of a position. Coordinates use
decimal degrees with a hemisphere suffix.

Examples:
  buoy search 32.868N 117.267W
  buoy search 36.785N 122.396W --dist 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon := args[0], args[1]
			if err := errors.ValidateCoordinate(lat, "NS"); err != nil {
				return err
			}
			if err := errors.ValidateCoordinate(lon, "EW"); err != nil {
				return err
			}
			if err := errors.ValidateSearchDistance(distance); err != nil {
				return err
			}

			ctx := cmd.Context()
			client := newClient(ctx, configFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching within %d nm of %s %s...", distance, lat, lon))
			spinner.Start()
			ids, err := client.Search(ctx, lat, lon, distance, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(ids)
			}

			if len(ids) == 0 {
				printWarning("No stations within %d nm of %s %s", distance, lat, lon)
				return nil
			}

			printSuccess("%d stations within %d nm of %s %s", len(ids), distance, lat, lon)
			printNewline()
			for _, id := range ids {
				printDetail("%d", id)
			}
			printNewline()
			printNextStep("Latest observation", "buoy report <id>")
			return nil
		},
	}

	cmd.Flags().IntVar(&distance, "dist", ndbc.DefaultSearchDistance, "search radius in nautical miles")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}
