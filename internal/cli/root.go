package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tessro/sonoctl/internal/config"
	"github.com/tessro/sonoctl/internal/control"
	"github.com/tessro/sonoctl/internal/core"
	apperrors "github.com/tessro/sonoctl/internal/errors"
	"github.com/tessro/sonoctl/internal/sonos"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	store    *config.Store
	storeErr error
	record   config.Record
)

// newDirectory builds the speaker directory commands run against.
var newDirectory = func() core.Directory {
	return sonos.NewDirectory()
}

var rootCmd = &cobra.Command{
	Use:   "sonoctl",
	Short: "Control Sonos speakers from the command line",
	Long: `sonoctl finds Sonos speakers on the local network by room name and
controls playback, volume and grouping.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		initConfig()
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: <user config dir>/sonoctl/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func setupLogging() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// initConfig loads the record once per invocation. A missing or unreadable
// file means defaults.
func initConfig() {
	store, storeErr = config.NewStore(cfgFile)
	if storeErr != nil {
		log.Debug().Err(storeErr).Msg("no config store")
		record = config.Default()
		return
	}
	record = store.LoadOrDefault()
}

// configStore returns the store, or the reason there is none.
func configStore() (*config.Store, error) {
	if storeErr != nil {
		return nil, storeErr
	}
	return store, nil
}

// controller builds a Controller from the loaded record plus environment
// overrides.
func controller() *control.Controller {
	return control.New(newDirectory(), control.PolicyFrom(config.ApplyEnvOverrides(record)))
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(apperrors.Format(err)))
		stop()
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
