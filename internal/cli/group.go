package cli

import (
	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group [speaker]",
	Short: "Group every speaker with one coordinator",
	Long: `Join every speaker on the network to the group of the named speaker,
or of the default speaker.

Examples:
  sonoctl group "Living Room"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroup,
}

var ungroupCmd = &cobra.Command{
	Use:   "ungroup",
	Short: "Split every speaker into its own group",
	Long:  `Make every speaker on the network leave its group.`,
	Args:  cobra.NoArgs,
	RunE:  runUngroup,
}

func init() {
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(ungroupCmd)
}

func runGroup(cmd *cobra.Command, args []string) error {
	result, err := controller().Group(cmd.Context(), optionalArg(args))
	if err != nil {
		return err
	}

	return confirm(cmd.OutOrStdout(),
		map[string]interface{}{"coordinator": result.Coordinator, "joined": result.Joined},
		"Grouped all speakers to %s", name(result.Coordinator))
}

func runUngroup(cmd *cobra.Command, args []string) error {
	n, err := controller().Ungroup(cmd.Context())
	if err != nil {
		return err
	}

	return confirm(cmd.OutOrStdout(),
		map[string]int{"speakers": n},
		"Ungrouped all speakers")
}
