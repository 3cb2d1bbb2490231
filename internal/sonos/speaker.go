package sonos

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tessro/sonoctl/internal/core"
	apperrors "github.com/tessro/sonoctl/internal/errors"
)

// Speaker implements core.Speaker for a Sonos device.
type Speaker struct {
	client *Client
	device *Device
}

// NewSpeaker creates a new Sonos speaker for the given device.
func NewSpeaker(client *Client, device *Device) *Speaker {
	return &Speaker{
		client: client,
		device: device,
	}
}

// Name returns the room name.
func (s *Speaker) Name() string {
	return s.device.Name
}

// Locator returns the device description URL.
func (s *Speaker) Locator() string {
	return s.device.Locator()
}

// Device returns the underlying device.
func (s *Speaker) Device() *Device {
	return s.device
}

// Play starts playback.
func (s *Speaker) Play(ctx context.Context) error {
	return s.client.Play(ctx, s.device)
}

// Pause pauses playback.
func (s *Speaker) Pause(ctx context.Context) error {
	return s.client.Pause(ctx, s.device)
}

// SetVolume sets the master volume. Callers clamp to [0,100].
func (s *Speaker) SetVolume(ctx context.Context, volume int) error {
	return s.client.SetVolume(ctx, s.device, volume)
}

// CurrentTrack returns the track loaded in the transport, or nil.
func (s *Speaker) CurrentTrack(ctx context.Context) (*core.Track, error) {
	pos, err := s.client.GetPositionInfo(ctx, s.device)
	if err != nil {
		return nil, err
	}
	return parseTrackMetadata(pos.TrackMetaData, pos.TrackURI), nil
}

// Join points this speaker's transport at the speaker named coordinator.
func (s *Speaker) Join(ctx context.Context, coordinator string) error {
	state, err := s.client.GetZoneGroupState(ctx, s.device)
	if err != nil {
		return fmt.Errorf("read topology: %w", err)
	}

	target := state.MemberByName(coordinator)
	if target == nil {
		return apperrors.SpeakerNotFound(coordinator)
	}
	if target.UUID == s.device.UUID {
		return nil
	}

	log.Debug().Str("speaker", s.device.Name).Str("coordinator", target.UUID).Msg("joining group")
	return s.client.AddToGroup(ctx, s.device, target.UUID)
}

// Leave makes this speaker a standalone group. A speaker that is already
// alone is left untouched.
func (s *Speaker) Leave(ctx context.Context) error {
	state, err := s.client.GetZoneGroupState(ctx, s.device)
	if err != nil {
		return fmt.Errorf("read topology: %w", err)
	}

	if g := state.GroupOf(s.device.UUID); g != nil && g.Solo(s.device.UUID) {
		log.Debug().Str("speaker", s.device.Name).Msg("already standalone")
		return nil
	}

	return s.client.RemoveFromGroup(ctx, s.device)
}

// Ensure Speaker implements core.Speaker
var _ core.Speaker = (*Speaker)(nil)
