package control

import (
	"time"

	"github.com/tessro/sonoctl/internal/config"
)

// Policy carries the per-invocation settings loaded from configuration.
type Policy struct {
	// Timeout bounds every lookup and discovery.
	Timeout time.Duration
	// Default names the speaker used when a command names none. Nil when
	// no default is configured.
	Default *string
}

// PolicyFrom builds a Policy from a config record.
func PolicyFrom(r config.Record) Policy {
	return Policy{
		Timeout: r.TimeoutDuration(),
		Default: r.Default,
	}
}
