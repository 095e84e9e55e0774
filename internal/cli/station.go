package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swellwatch/buoy/pkg/errors"
)

// newStationCmd creates the station command, showing one station's metadata.
func newStationCmd() *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "station <id>",
		Short: "Show metadata for one station",
		Long: `Show metadata for one NDBC station: its name, position, and
observation feed.

Example:
  buoy station 46042`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := errors.ValidateStationID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client := newClient(ctx, configFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching station %d...", id))
			spinner.Start()
			st, err := client.Station(ctx, id, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			fmt.Println(StyleTitle.Render(st.Name))
			printNewline()
			printKeyValue("Station", fmt.Sprintf("%d", st.ID))
			printKeyValue("Latitude", st.Latitude)
			printKeyValue("Longitude", st.Longitude)
			printLink("Feed", st.RSS)
			printNewline()
			printNextStep("Latest observation", fmt.Sprintf("buoy report %d", st.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}
