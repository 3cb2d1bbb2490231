package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var volumeCmd = &cobra.Command{
	Use:   "volume <0-100>",
	Short: "Set volume on every speaker",
	Long: `Set the volume of every speaker that answers discovery. Values above 100
are treated as 100.

Examples:
  sonoctl volume 25`,
	Args: cobra.ExactArgs(1),
	RunE: runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}

func runVolume(cmd *cobra.Command, args []string) error {
	level, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid volume level: %s", args[0])
	}

	applied, err := controller().SetVolumeAll(cmd.Context(), int(level))
	if err != nil {
		return err
	}

	return confirm(cmd.OutOrStdout(),
		map[string]int{"volume": applied},
		"Set volume to %d%%", applied)
}
