package cover

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"cliplab/internal/editor"
	"cliplab/internal/thumbs"
)

// DefaultQuality is the thumbnail quality used when none is configured.
const DefaultQuality = 10

// Cover describes the selected poster frame. Image is nil until the first
// generation completes.
type Cover struct {
	TimestampMS int64
	Image       []byte
}

// Selection wraps a controller with cover-frame tracking. Construct with
// New before calling the controller's Initialize so the initial trim
// derives a default cover.
type Selection struct {
	ctrl       *editor.Controller
	gen        thumbs.Generator
	sourcePath string
	quality    int
	log        *slog.Logger

	mu        sync.Mutex
	cover     Cover
	hasCover  bool
	activeTag uuid.UUID
	disposed  bool

	events *coverEmitter
	wg     sync.WaitGroup
}

// Options configures a Selection.
type Options struct {
	// Quality is the thumbnail quality percentage; zero means DefaultQuality.
	Quality int
	Logger  *slog.Logger
}

// New builds a Selection over the controller and registers the trim hooks.
func New(ctrl *editor.Controller, gen thumbs.Generator, sourcePath string, opts Options) *Selection {
	quality := opts.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	s := &Selection{
		ctrl:       ctrl,
		gen:        gen,
		sourcePath: sourcePath,
		quality:    quality,
		log:        log,
		events:     newCoverEmitter(),
	}
	ctrl.OnTrimChanged(s.ensureDefaultCover)
	ctrl.OnTrimmingReleased(s.ensureDefaultCover)
	return s
}

// Controller returns the wrapped edit controller.
func (s *Selection) Controller() *editor.Controller { return s.ctrl }

// Cover returns the current descriptor and whether one has been set.
func (s *Selection) Cover() (Cover, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cover, s.hasCover
}

// SetSelectedCover replaces the descriptor unconditionally and invalidates
// any in-flight default generation.
func (s *Selection) SetSelectedCover(timestampMs int64, image []byte) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.cover = Cover{TimestampMS: timestampMs, Image: image}
	s.hasCover = true
	s.activeTag = uuid.New()
	snapshot := s.cover
	s.mu.Unlock()

	s.events.notify(snapshot, nil)
}

// Subscribe registers a cover observer. It receives the descriptor after
// every committed cover change, or the previous descriptor together with a
// generation error.
func (s *Selection) Subscribe(fn func(Cover, error)) uuid.UUID {
	return s.events.subscribe(fn)
}

// Unsubscribe removes a cover observer.
func (s *Selection) Unsubscribe(id uuid.UUID) {
	s.events.unsubscribe(id)
}

// Generate renders the thumbnail for the current trim start synchronously
// and commits it as the selected cover. The error, if any, leaves the
// previous cover unchanged.
func (s *Selection) Generate(ctx context.Context) error {
	return s.GenerateAt(ctx, s.ctrl.TrimStart().Milliseconds())
}

// GenerateAt renders the thumbnail at the given timestamp synchronously and
// commits it as the selected cover.
func (s *Selection) GenerateAt(ctx context.Context, timestampMs int64) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return fmt.Errorf("cover: selection disposed")
	}
	tag := uuid.New()
	s.activeTag = tag
	s.mu.Unlock()

	return s.generate(ctx, tag, timestampMs)
}

// Dispose releases the held image bytes and the cover subscription
// registry, then disposes the wrapped controller.
func (s *Selection) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.cover.Image = nil
	s.mu.Unlock()

	s.events.close()
	s.ctrl.Dispose()
}

// ensureDefaultCover re-derives the default cover from the current trim
// start. Skipped mid-drag when a cover already exists; the drag-end hook
// always lands here again.
func (s *Selection) ensureDefaultCover() {
	trimming := s.ctrl.IsTrimming()
	timestampMs := s.ctrl.TrimStart().Milliseconds()

	s.mu.Lock()
	if s.disposed || (trimming && s.hasCover) {
		s.mu.Unlock()
		return
	}
	s.cover.TimestampMS = timestampMs
	s.hasCover = true
	tag := uuid.New()
	s.activeTag = tag
	snapshot := s.cover
	s.mu.Unlock()

	s.events.notify(snapshot, nil)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.generate(context.Background(), tag, timestampMs); err != nil {
			s.log.Warn("default cover generation failed",
				slog.Int64("timestampMs", timestampMs),
				slog.Any("error", err))
		}
	}()
}

// generate runs the thumbnail request for the given tag and commits the
// result when the tag is still current.
func (s *Selection) generate(ctx context.Context, tag uuid.UUID, timestampMs int64) error {
	image, err := s.gen.Generate(ctx, s.sourcePath, timestampMs, s.quality)

	s.mu.Lock()
	if s.disposed || s.activeTag != tag {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		snapshot := s.cover
		s.mu.Unlock()
		wrapped := fmt.Errorf("cover: generate thumbnail: %w", err)
		s.events.notify(snapshot, wrapped)
		return wrapped
	}
	s.cover = Cover{TimestampMS: timestampMs, Image: image}
	s.hasCover = true
	snapshot := s.cover
	s.mu.Unlock()

	s.events.notify(snapshot, nil)
	return nil
}

// waitIdle blocks until in-flight generations complete. Test hook.
func (s *Selection) waitIdle() {
	s.wg.Wait()
}
