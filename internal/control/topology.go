package control

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tessro/sonoctl/internal/core"
)

// GroupResult describes a completed Group call.
type GroupResult struct {
	Coordinator string
	Joined      int
}

// Group makes the named speaker (or the default) the coordinator of a
// group holding every other speaker on the network.
//
// The whole fleet is discovered before any speaker is touched, so the
// coordinator's name is known and the coordinator itself, matched by
// locator, is never asked to join. The first failed join stops the run.
func (c *Controller) Group(ctx context.Context, name *string) (GroupResult, error) {
	coordinator, err := c.Resolve(ctx, name)
	if err != nil {
		return GroupResult{}, err
	}
	coordName := coordinator.Name()
	coordLocator := coordinator.Locator()

	fleet, err := c.Fleet(ctx)
	if err != nil {
		return GroupResult{}, err
	}

	result := GroupResult{Coordinator: coordName}
	for _, s := range fleet {
		if s.Locator() == coordLocator {
			continue
		}
		log.Debug().Str("speaker", s.Name()).Str("coordinator", coordName).Msg("joining")
		if err := s.Join(ctx, coordName); err != nil {
			return GroupResult{}, fmt.Errorf("join %s to %s: %w", s.Name(), coordName, err)
		}
		result.Joined++
	}
	return result, nil
}

// Ungroup asks every speaker that answers within the timeout to leave its
// group, including speakers already on their own. It returns the number of
// speakers visited. The first failure stops the run.
func (c *Controller) Ungroup(ctx context.Context) (int, error) {
	n := 0
	err := c.Each(ctx, func(s core.Speaker) error {
		log.Debug().Str("speaker", s.Name()).Msg("leaving group")
		if err := s.Leave(ctx); err != nil {
			return fmt.Errorf("ungroup %s: %w", s.Name(), err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
