package control

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tessro/sonoctl/internal/core"
	apperrors "github.com/tessro/sonoctl/internal/errors"
)

// Controller runs commands against the speakers of a Directory.
type Controller struct {
	dir    core.Directory
	policy Policy
}

// New creates a Controller.
func New(dir core.Directory, policy Policy) *Controller {
	return &Controller{
		dir:    dir,
		policy: policy,
	}
}

// Policy returns the settings the controller runs with.
func (c *Controller) Policy() Policy {
	return c.policy
}

// EffectiveName picks the requested name, falling back to the configured
// default. A nil name is absent; an empty one is still looked up.
func EffectiveName(requested, fallback *string) (string, error) {
	if requested != nil {
		return *requested, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return "", apperrors.ErrNoDefaultSpeaker
}

// Resolve finds the speaker named requested, or the default speaker when
// requested is nil. Directory errors are returned as is.
func (c *Controller) Resolve(ctx context.Context, requested *string) (core.Speaker, error) {
	name, err := EffectiveName(requested, c.policy.Default)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("name", name).Dur("timeout", c.policy.Timeout).Msg("resolving speaker")
	speaker, err := c.dir.Find(ctx, name, c.policy.Timeout)
	if err != nil {
		return nil, err
	}
	if speaker == nil {
		return nil, apperrors.SpeakerNotFound(name)
	}
	return speaker, nil
}

// Play resolves a speaker and starts playback on it.
func (c *Controller) Play(ctx context.Context, name *string) (core.Speaker, error) {
	speaker, err := c.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := speaker.Play(ctx); err != nil {
		return nil, err
	}
	return speaker, nil
}

// Pause resolves a speaker and pauses it.
func (c *Controller) Pause(ctx context.Context, name *string) (core.Speaker, error) {
	speaker, err := c.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := speaker.Pause(ctx); err != nil {
		return nil, err
	}
	return speaker, nil
}

// Track resolves a speaker and reads its current track. The track is nil
// when nothing is playing.
func (c *Controller) Track(ctx context.Context, name *string) (core.Speaker, *core.Track, error) {
	speaker, err := c.Resolve(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	track, err := speaker.CurrentTrack(ctx)
	if err != nil {
		return nil, nil, err
	}
	return speaker, track, nil
}
