package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newStationsCmd creates the stations command, listing the NDBC directory.
func newStationsCmd() *cobra.Command {
	var (
		refresh    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List every station in the NDBC directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := newClient(ctx, configFromContext(ctx))

			spinner := newSpinnerWithContext(ctx, "Fetching station directory...")
			spinner.Start()
			ids, err := client.StationIDs(ctx, refresh)
			spinner.Stop()
			if err != nil {
				return err
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(ids)
			}

			printSuccess("%d stations in the directory", len(ids))
			printNewline()
			var line []string
			for i, id := range ids {
				line = append(line, fmt.Sprintf("%d", id))
				if len(line) == 10 || i == len(ids)-1 {
					printDetail("%s", strings.Join(line, "  "))
					line = line[:0]
				}
			}
			printNewline()
			printNextStep("Inspect a station", "buoy station <id>")
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	return cmd
}
