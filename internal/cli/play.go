package cli

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [speaker]",
	Short: "Start playback",
	Long: `Start playback on a speaker. Without a name, the configured default
speaker is used.

Examples:
  sonoctl play
  sonoctl play "Living Room"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var pauseCmd = &cobra.Command{
	Use:   "pause [speaker]",
	Short: "Pause playback",
	Long:  `Pause playback on a speaker, or on the default speaker.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPause,
}

var trackCmd = &cobra.Command{
	Use:   "track [speaker]",
	Short: "Show the current track",
	Long:  `Show what a speaker, or the default speaker, is playing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(trackCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	speaker, err := controller().Play(cmd.Context(), optionalArg(args))
	if err != nil {
		return err
	}

	return confirm(cmd.OutOrStdout(),
		map[string]string{"status": "playing", "speaker": speaker.Name()},
		"Playing on %s", name(speaker.Name()))
}

func runPause(cmd *cobra.Command, args []string) error {
	speaker, err := controller().Pause(cmd.Context(), optionalArg(args))
	if err != nil {
		return err
	}

	return confirm(cmd.OutOrStdout(),
		map[string]string{"status": "paused", "speaker": speaker.Name()},
		"Pausing %s", name(speaker.Name()))
}

func runTrack(cmd *cobra.Command, args []string) error {
	speaker, track, err := controller().Track(cmd.Context(), optionalArg(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return emitJSON(out, map[string]interface{}{
			"speaker": speaker.Name(),
			"track":   track,
		})
	}

	switch {
	case track == nil:
		return confirm(out, nil, "No track playing")
	case track.HasCreator():
		return confirm(out, nil, "Playing %s by %s", track.Title, track.Creator)
	default:
		return confirm(out, nil, "Playing %s", track.Title)
	}
}
