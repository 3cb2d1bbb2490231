package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Success   = lipgloss.Color("#10B981") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
)

var (
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	successStyle   = lipgloss.NewStyle().Foreground(Success)
	mutedStyle     = lipgloss.NewStyle().Foreground(TextMuted)
	errorStyle     = lipgloss.NewStyle().Foreground(Error)
)

// emitJSON writes v as one line of JSON.
func emitJSON(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// confirm prints a one-line confirmation, or v as JSON in JSON mode.
func confirm(w io.Writer, v interface{}, format string, args ...interface{}) error {
	if JSONOutput() {
		return emitJSON(w, v)
	}
	_, err := fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
	return err
}

// name renders a speaker name for human output.
func name(s string) string {
	return highlightStyle.Render(s)
}

// optionalArg returns the first argument, or nil if there is none.
func optionalArg(args []string) *string {
	if len(args) > 0 {
		return &args[0]
	}
	return nil
}
