package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoDefaultSpeaker  = errors.New("no default speaker set")
	ErrSpeakerNotFound   = errors.New("speaker not found")
	ErrNoConfigDirectory = errors.New("no config directory")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnknownConfigKey  = fmt.Errorf("%w: unknown key", ErrInvalidConfig)
)

// SpeakerNotFoundError reports that no speaker answered to Name.
type SpeakerNotFoundError struct {
	Name string
}

func (e *SpeakerNotFoundError) Error() string {
	return fmt.Sprintf("speaker not found: %s", e.Name)
}

// Is lets errors.Is match ErrSpeakerNotFound.
func (e *SpeakerNotFoundError) Is(target error) bool {
	return target == ErrSpeakerNotFound
}

// SpeakerNotFound returns a SpeakerNotFoundError for name.
func SpeakerNotFound(name string) error {
	return &SpeakerNotFoundError{Name: name}
}

// UnknownConfigKey returns an error naming the rejected key.
func UnknownConfigKey(key string) error {
	return fmt.Errorf("%w %q", ErrUnknownConfigKey, key)
}

// SonoctlError wraps an error with a user-friendly suggestion.
type SonoctlError struct {
	Err        error
	Suggestion string
}

func (e *SonoctlError) Error() string {
	return e.Err.Error()
}

func (e *SonoctlError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SonoctlError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var se *SonoctlError
	if errors.As(err, &se) && se.Suggestion != "" {
		return se.Suggestion
	}

	if errors.Is(err, ErrNoDefaultSpeaker) {
		return `Pass a speaker name, or run 'sonoctl config set default "\"Living Room\""'`
	}

	if errors.Is(err, ErrSpeakerNotFound) {
		return "Run 'sonoctl speakers' to see which speakers answer, or raise the timeout with 'sonoctl config set timeout 3'"
	}

	if errors.Is(err, ErrUnknownConfigKey) {
		return "Valid keys are 'timeout' and 'default'"
	}

	if errors.Is(err, ErrInvalidConfig) {
		return "timeout must be a positive integer and default a quoted string or null"
	}

	if errors.Is(err, ErrNoConfigDirectory) {
		return "Pass --config with an explicit file path"
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "invalid character") || strings.Contains(errStr, "unexpected end of json") {
		return `Values are parsed as JSON: quote strings, e.g. '"Kitchen"'`
	}

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no route to host") || strings.Contains(errStr, "network is unreachable") {
		return "Check that this machine is on the same network as your speakers"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
