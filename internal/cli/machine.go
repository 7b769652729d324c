package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventhive/events-service/internal/domain/event"
)

var machineCmd = &cobra.Command{
	Use:   "machine",
	Short: "Export the event lifecycle state machine as XState JSON",
	Long: `Export the event lifecycle state machine as XState JSON.

The output can be pasted into the XState visualizer to inspect the
status transitions the service enforces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := event.ExportXStateJSON()
		if err != nil {
			return fmt.Errorf("failed to export state machine: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}
