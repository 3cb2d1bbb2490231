package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/sonoctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing sonoctl configuration.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every configuration value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. The value is parsed as JSON, so strings
need their own quotes.

Supported keys:
  timeout    Discovery timeout in seconds (positive integer)
  default    Default speaker name (string or null)

Examples:
  sonoctl config set timeout 3
  sonoctl config set default '"Living Room"'
  sonoctl config set default null`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default",
	Short: "Interactively select the default speaker",
	Long:  `Discovers speakers and shows a picker to select the default speaker.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetDefault,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetDefaultCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	entries, err := config.List(record)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		obj := make(map[string]json.RawMessage, len(entries))
		for _, e := range entries {
			obj[e.Key] = e.Value
		}
		return emitJSON(out, obj)
	}

	for _, e := range entries {
		fmt.Fprintln(out, e.String())
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	entry, err := config.Get(record, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return emitJSON(out, map[string]json.RawMessage{entry.Key: entry.Value})
	}
	fmt.Fprintln(out, entry.String())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	return setConfigValue(cmd, args[0], args[1])
}

// setConfigValue applies one Set to the loaded record and saves it.
func setConfigValue(cmd *cobra.Command, key, raw string) error {
	s, err := configStore()
	if err != nil {
		return err
	}

	updated, err := config.Set(record, key, raw)
	if err != nil {
		return err
	}
	if err := s.Save(updated); err != nil {
		return err
	}
	record = updated

	entry, err := config.Get(updated, key)
	if err != nil {
		return err
	}
	return confirm(cmd.OutOrStdout(),
		map[string]interface{}{"status": "updated", "key": key, "value": entry.Value},
		"Set %s", entry.String())
}

func runConfigSetDefault(cmd *cobra.Command, args []string) error {
	fleet, err := controller().Fleet(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to discover speakers: %w", err)
	}
	if len(fleet) == 0 {
		return fmt.Errorf("no speakers found. Make sure this machine is on the same network as your speakers")
	}

	current := record.DefaultName()
	var options []huh.Option[string]
	seen := make(map[string]bool)
	for _, s := range fleet {
		if seen[s.Name()] {
			continue
		}
		seen[s.Name()] = true

		label := s.Name()
		if s.Name() == current {
			label += " [default]"
		}
		options = append(options, huh.NewOption(label, s.Name()))
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select default speaker").
				Description("Used when a command is given no speaker name").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	raw, err := json.Marshal(selected)
	if err != nil {
		return err
	}
	return setConfigValue(cmd, config.KeyDefault, string(raw))
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	s, err := configStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return emitJSON(out, map[string]string{"path": s.Path()})
	}
	fmt.Fprintln(out, s.Path())
	return nil
}
