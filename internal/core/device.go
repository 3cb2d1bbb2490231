package core

import (
	"context"
	"iter"
	"time"
)

// Speaker is a handle to one discovered media renderer.
//
// Name and Locator are captured at discovery time and do not change for the
// lifetime of the handle. Every control method is a separate network call
// that can fail on its own.
type Speaker interface {
	// Name returns the human-assigned room name. Names are not unique
	// across a fleet.
	Name() string
	// Locator returns the network location that uniquely identifies the
	// device, typically its description URL.
	Locator() string

	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	// SetVolume sets the volume; callers pass a value already in [0,100].
	SetVolume(ctx context.Context, volume int) error
	// CurrentTrack returns nil with no error when nothing is playing.
	CurrentTrack(ctx context.Context) (*Track, error)
	// Join adds the speaker to the group of the speaker named coordinator.
	Join(ctx context.Context, coordinator string) error
	// Leave makes the speaker the coordinator of its own group. It is a
	// no-op on a speaker that is already alone.
	Leave(ctx context.Context) error
}

// Directory locates speakers on the local network.
type Directory interface {
	// Find returns the first speaker named name that answers within
	// timeout, or nil if none did.
	Find(ctx context.Context, name string, timeout time.Duration) (Speaker, error)

	// Discover yields speakers as they answer, until timeout elapses. A
	// non-nil error ends the sequence. Consumers may stop early.
	Discover(ctx context.Context, timeout time.Duration) iter.Seq2[Speaker, error]
}
