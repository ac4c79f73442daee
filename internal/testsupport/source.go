package testsupport

import (
	"sync"
	"time"

	"cliplab/internal/geometry"
)

// Source is a scripted media source for tests. Fields are fixed at
// construction; playback state mutates through the normal Source surface
// and position reports are fired manually with EmitPosition.
type Source struct {
	mu       sync.Mutex
	ready    bool
	duration time.Duration
	dims     geometry.Size
	position time.Duration
	playing  bool

	nextSub int
	subs    map[int]func(time.Duration)

	SeekCalls  []time.Duration
	PlayCalls  int
	PauseCalls int
}

// NewSource builds a ready source with the given duration and dimensions.
func NewSource(duration time.Duration, dims geometry.Size) *Source {
	return &Source{
		ready:    true,
		duration: duration,
		dims:     dims,
		subs:     make(map[int]func(time.Duration)),
	}
}

// SetReady overrides the readiness flag.
func (s *Source) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Source) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *Source) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *Source) Dimensions() geometry.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dims
}

func (s *Source) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Source) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *Source) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
	s.PlayCalls++
	return nil
}

func (s *Source) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.PauseCalls++
	return nil
}

// SeekTo records the request and moves the position without notifying
// subscribers; tests drive notifications explicitly via EmitPosition.
func (s *Source) SeekTo(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = position
	s.SeekCalls = append(s.SeekCalls, position)
	return nil
}

func (s *Source) SubscribePosition(fn func(time.Duration)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// EmitPosition sets the position and fires all position subscribers.
func (s *Source) EmitPosition(position time.Duration) {
	s.mu.Lock()
	s.position = position
	callbacks := make([]func(time.Duration), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			callbacks = append(callbacks, fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(position)
	}
}

// SubscriberCount reports how many position subscriptions are active.
func (s *Source) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
