package control

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/tessro/sonoctl/internal/core"
)

func named(s string) *string { return &s }

type fakeSpeaker struct {
	name    string
	locator string
	track   *core.Track

	failOn map[string]error
	calls  []string
	volume int
	joined []string
}

func newSpeaker(name, locator string) *fakeSpeaker {
	return &fakeSpeaker{name: name, locator: locator, volume: -1, failOn: map[string]error{}}
}

func (s *fakeSpeaker) Name() string    { return s.name }
func (s *fakeSpeaker) Locator() string { return s.locator }

func (s *fakeSpeaker) record(op string) error {
	s.calls = append(s.calls, op)
	return s.failOn[op]
}

func (s *fakeSpeaker) Play(ctx context.Context) error  { return s.record("play") }
func (s *fakeSpeaker) Pause(ctx context.Context) error { return s.record("pause") }

func (s *fakeSpeaker) SetVolume(ctx context.Context, volume int) error {
	if err := s.record("volume"); err != nil {
		return err
	}
	s.volume = volume
	return nil
}

func (s *fakeSpeaker) CurrentTrack(ctx context.Context) (*core.Track, error) {
	if err := s.record("track"); err != nil {
		return nil, err
	}
	return s.track, nil
}

func (s *fakeSpeaker) Join(ctx context.Context, coordinator string) error {
	if err := s.record("join"); err != nil {
		return err
	}
	s.joined = append(s.joined, coordinator)
	return nil
}

func (s *fakeSpeaker) Leave(ctx context.Context) error { return s.record("leave") }

// fakeDirectory serves a fixed fleet in order.
type fakeDirectory struct {
	fleet []*fakeSpeaker

	findErr     error
	discoverErr error // yielded after the whole fleet

	finds     []string
	timeouts  []time.Duration
	discovers int
	yielded   int
}

func (d *fakeDirectory) Find(ctx context.Context, name string, timeout time.Duration) (core.Speaker, error) {
	d.finds = append(d.finds, name)
	d.timeouts = append(d.timeouts, timeout)
	if d.findErr != nil {
		return nil, d.findErr
	}
	for _, s := range d.fleet {
		if strings.EqualFold(s.name, name) {
			return s, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) Discover(ctx context.Context, timeout time.Duration) iter.Seq2[core.Speaker, error] {
	d.discovers++
	d.timeouts = append(d.timeouts, timeout)
	return func(yield func(core.Speaker, error) bool) {
		for _, s := range d.fleet {
			d.yielded++
			if !yield(s, nil) {
				return
			}
		}
		if d.discoverErr != nil {
			yield(nil, d.discoverErr)
		}
	}
}

func (d *fakeDirectory) totalCalls(op string) int {
	n := 0
	for _, s := range d.fleet {
		for _, c := range s.calls {
			if c == op {
				n++
			}
		}
	}
	return n
}

var _ core.Directory = (*fakeDirectory)(nil)
var _ core.Speaker = (*fakeSpeaker)(nil)
