package sonos

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tessro/sonoctl/internal/core"
)

// Directory implements core.Directory over SSDP discovery.
type Directory struct {
	client    *Client
	discovery *Discovery
}

// NewDirectory creates a Directory for the local network.
func NewDirectory() *Directory {
	return &Directory{
		client:    NewClient(),
		discovery: NewDiscovery(),
	}
}

// Discover yields each speaker that answers within timeout, with its room
// name already read.
func (d *Directory) Discover(ctx context.Context, timeout time.Duration) iter.Seq2[core.Speaker, error] {
	return func(yield func(core.Speaker, error) bool) {
		for device, err := range d.discovery.Stream(ctx, timeout) {
			if err != nil {
				yield(nil, err)
				return
			}

			name, err := d.client.ZoneName(ctx, device)
			if err != nil {
				yield(nil, fmt.Errorf("read name of %s: %w", device.Locator(), err))
				return
			}
			device.Name = name

			log.Debug().Str("speaker", name).Str("locator", device.Locator()).Msg("discovered")
			if !yield(NewSpeaker(d.client, device), nil) {
				return
			}
		}
	}
}

// Find returns the first speaker whose room name matches name, ignoring
// case, or nil if none answered within timeout.
func (d *Directory) Find(ctx context.Context, name string, timeout time.Duration) (core.Speaker, error) {
	for speaker, err := range d.Discover(ctx, timeout) {
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(speaker.Name(), name) {
			return speaker, nil
		}
	}
	return nil, nil
}

// Ensure Directory implements core.Directory
var _ core.Directory = (*Directory)(nil)
