package control

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tessro/sonoctl/internal/core"
)

// ClampVolume limits v to [0,100].
func ClampVolume(v int) int {
	return min(100, max(0, v))
}

// SetVolumeAll sets every speaker that answers within the timeout to the
// clamped volume, one speaker at a time as they are found. It returns the
// volume applied. The first failure stops the run.
func (c *Controller) SetVolumeAll(ctx context.Context, volume int) (int, error) {
	volume = ClampVolume(volume)

	err := c.Each(ctx, func(s core.Speaker) error {
		log.Debug().Str("speaker", s.Name()).Int("volume", volume).Msg("setting volume")
		if err := s.SetVolume(ctx, volume); err != nil {
			return fmt.Errorf("set volume on %s: %w", s.Name(), err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// Each calls fn for every speaker as discovery yields it. It stops at the
// first error from discovery or fn.
func (c *Controller) Each(ctx context.Context, fn func(core.Speaker) error) error {
	for speaker, err := range c.dir.Discover(ctx, c.policy.Timeout) {
		if err != nil {
			return err
		}
		if err := fn(speaker); err != nil {
			return err
		}
	}
	return nil
}

// Fleet discovers every speaker that answers within the timeout and
// returns them in discovery order.
func (c *Controller) Fleet(ctx context.Context) ([]core.Speaker, error) {
	var fleet []core.Speaker
	err := c.Each(ctx, func(s core.Speaker) error {
		fleet = append(fleet, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fleet, nil
}
