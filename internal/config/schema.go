package config

import (
	"math"
	"time"
)

// Record is the persisted configuration. The on-disk form is a JSON object
// with exactly these two fields.
type Record struct {
	// Timeout bounds every discovery and name lookup, in seconds.
	Timeout uint64 `json:"timeout"`
	// Default names the speaker used when a command is given no name.
	Default *string `json:"default"`
}

// Field names in rendering order.
const (
	KeyTimeout = "timeout"
	KeyDefault = "default"
)

// Keys lists every field of Record in a stable order.
var Keys = []string{KeyTimeout, KeyDefault}

// IsKey reports whether key names a Record field.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// MaxTimeout is the largest timeout, in seconds, that fits a time.Duration.
const MaxTimeout = uint64(math.MaxInt64 / int64(time.Second))

// TimeoutDuration returns the discovery timeout as a duration. Values past
// MaxTimeout saturate.
func (r Record) TimeoutDuration() time.Duration {
	switch {
	case r.Timeout == 0:
		return time.Duration(DefaultTimeout) * time.Second
	case r.Timeout > MaxTimeout:
		return time.Duration(MaxTimeout) * time.Second
	}
	return time.Duration(r.Timeout) * time.Second
}

// DefaultName returns the configured default speaker, or "" if unset.
func (r Record) DefaultName() string {
	if r.Default == nil {
		return ""
	}
	return *r.Default
}
