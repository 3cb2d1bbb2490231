package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/sonoctl/internal/core"
)

var speakersCmd = &cobra.Command{
	Use:     "speakers",
	Aliases: []string{"devices", "ls"},
	Short:   "List speakers on the network",
	Long:    `List every speaker that answers discovery, as it answers.`,
	Args:    cobra.NoArgs,
	RunE:    runSpeakers,
}

func init() {
	rootCmd.AddCommand(speakersCmd)
}

func runSpeakers(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	found := 0

	err := controller().Each(cmd.Context(), func(s core.Speaker) error {
		found++
		if JSONOutput() {
			return emitJSON(out, map[string]string{"name": s.Name(), "locator": s.Locator()})
		}
		_, err := fmt.Fprintf(out, "%s  %s\n", name(s.Name()), mutedStyle.Render(s.Locator()))
		return err
	})
	if err != nil {
		return err
	}

	if found == 0 && !JSONOutput() {
		fmt.Fprintln(out, "No speakers found")
	}
	return nil
}
