package media

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cliplab/internal/geometry"
	"cliplab/internal/media/ffprobe"
)

// ErrNotReady is returned by playback operations issued before Open
// completed.
var ErrNotReady = errors.New("media source not ready")

const positionTickInterval = 100 * time.Millisecond

// FileSource implements Source for a video file on disk. Metadata comes
// from ffprobe; playback position is simulated with the wall clock, which
// is enough for the CLI and for exercising trim-boundary behavior without
// a decoder.
type FileSource struct {
	path string

	mu        sync.Mutex
	ready     bool
	duration  time.Duration
	dims      geometry.Size
	rotation  int
	playing   bool
	base      time.Duration
	playStart time.Time
	nextSub   int
	subs      map[int]func(time.Duration)
	stopTick  chan struct{}
}

// NewFileSource creates an unopened source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path: path,
		subs: make(map[int]func(time.Duration)),
	}
}

// Open probes the file and marks the source ready.
func (s *FileSource) Open(ctx context.Context, ffprobeBinary string) error {
	result, err := ffprobe.Inspect(ctx, ffprobeBinary, s.path)
	if err != nil {
		return fmt.Errorf("open media source: %w", err)
	}
	duration := result.Duration()
	if duration <= 0 {
		return fmt.Errorf("open media source: %s reports no duration", s.path)
	}
	width, height := result.Dimensions()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = duration
	s.dims = geometry.Size{Width: width, Height: height}
	s.rotation = result.RotationDegrees()
	s.ready = true
	return nil
}

// Path returns the file path backing the source.
func (s *FileSource) Path() string { return s.path }

// ContainerRotation returns the rotation tag baked into the container.
func (s *FileSource) ContainerRotation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotation
}

func (s *FileSource) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *FileSource) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *FileSource) Dimensions() geometry.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dims
}

func (s *FileSource) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *FileSource) positionLocked() time.Duration {
	pos := s.base
	if s.playing {
		pos += time.Since(s.playStart)
	}
	if pos > s.duration {
		pos = s.duration
	}
	return pos
}

func (s *FileSource) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *FileSource) Play() error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if s.playing {
		s.mu.Unlock()
		return nil
	}
	s.playing = true
	s.playStart = time.Now()
	stop := make(chan struct{})
	s.stopTick = stop
	s.mu.Unlock()

	go s.tick(stop)
	return nil
}

func (s *FileSource) Pause() error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if !s.playing {
		s.mu.Unlock()
		return nil
	}
	s.base = s.positionLocked()
	s.playing = false
	stop := s.stopTick
	s.stopTick = nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	return nil
}

func (s *FileSource) SeekTo(position time.Duration) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return ErrNotReady
	}
	if position < 0 {
		position = 0
	}
	if position > s.duration {
		position = s.duration
	}
	s.base = position
	if s.playing {
		s.playStart = time.Now()
	}
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(position)
	}
	return nil
}

func (s *FileSource) SubscribePosition(fn func(time.Duration)) func() {
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

func (s *FileSource) snapshotSubsLocked() []func(time.Duration) {
	out := make([]func(time.Duration), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (s *FileSource) tick(stop chan struct{}) {
	ticker := time.NewTicker(positionTickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.playing {
				s.mu.Unlock()
				return
			}
			pos := s.positionLocked()
			subs := s.snapshotSubsLocked()
			s.mu.Unlock()
			for _, fn := range subs {
				fn(pos)
			}
		}
	}
}
