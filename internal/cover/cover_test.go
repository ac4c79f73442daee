package cover_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cliplab/internal/cover"
	"cliplab/internal/editor"
	"cliplab/internal/geometry"
	"cliplab/internal/testsupport"
)

type stubGenerator struct {
	mu        sync.Mutex
	calls     []int64
	err       error
	holdFirst chan struct{}
	callIndex int
}

func (g *stubGenerator) Generate(_ context.Context, _ string, timestampMs int64, _ int) ([]byte, error) {
	g.mu.Lock()
	index := g.callIndex
	g.callIndex++
	g.calls = append(g.calls, timestampMs)
	hold := g.holdFirst
	err := g.err
	g.mu.Unlock()

	if index == 0 && hold != nil {
		<-hold
	}
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("img-%d", timestampMs)), nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *stubGenerator) failWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func newSelection(t *testing.T, gen *stubGenerator) (*cover.Selection, *editor.Controller) {
	t.Helper()
	src := testsupport.NewSource(10*time.Second, geometry.Size{Width: 1920, Height: 1080})
	ctrl, err := editor.New(src, editor.Options{})
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	sel := cover.New(ctrl, gen, "/media/clip.mp4", cover.Options{Quality: 25})
	if err := ctrl.Initialize(0); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return sel, ctrl
}

func TestInitializeDerivesDefaultCover(t *testing.T) {
	gen := &stubGenerator{}
	sel, _ := newSelection(t, gen)
	sel.WaitIdle()

	c, ok := sel.Cover()
	if !ok {
		t.Fatal("no cover after initialization")
	}
	if c.TimestampMS != 0 {
		t.Errorf("cover timestamp = %d, want 0", c.TimestampMS)
	}
	if string(c.Image) != "img-0" {
		t.Errorf("cover image = %q, want img-0", c.Image)
	}
	if gen.callCount() != 1 {
		t.Errorf("generator called %d times, want 1", gen.callCount())
	}
}

func TestTrimChangeMovesDefaultCover(t *testing.T) {
	gen := &stubGenerator{}
	sel, ctrl := newSelection(t, gen)
	sel.WaitIdle()

	if err := ctrl.SetTrimFractions(0.3, 0.9); err != nil {
		t.Fatalf("SetTrimFractions: %v", err)
	}
	sel.WaitIdle()

	c, _ := sel.Cover()
	if c.TimestampMS != 3000 {
		t.Errorf("cover timestamp = %d, want 3000", c.TimestampMS)
	}
	if string(c.Image) != "img-3000" {
		t.Errorf("cover image = %q, want img-3000", c.Image)
	}
}

func TestNoRegenerationDuringTrimDrag(t *testing.T) {
	gen := &stubGenerator{}
	sel, ctrl := newSelection(t, gen)
	sel.WaitIdle()
	baseline := gen.callCount()

	ctrl.SetTrimmingActive(true)
	if err := ctrl.SetTrimFractions(0.1, 0.9); err != nil {
		t.Fatalf("SetTrimFractions: %v", err)
	}
	if err := ctrl.SetTrimFractions(0.2, 0.9); err != nil {
		t.Fatalf("SetTrimFractions: %v", err)
	}
	sel.WaitIdle()
	if got := gen.callCount(); got != baseline {
		t.Fatalf("generator called %d times during drag, want %d", got, baseline)
	}

	ctrl.SetTrimmingActive(false)
	sel.WaitIdle()
	if got := gen.callCount(); got != baseline+1 {
		t.Fatalf("generator called %d times after release, want %d", got, baseline+1)
	}

	c, _ := sel.Cover()
	if c.TimestampMS != 2000 {
		t.Errorf("cover timestamp = %d, want 2000", c.TimestampMS)
	}
}

func TestGenerationFailureKeepsPreviousCover(t *testing.T) {
	gen := &stubGenerator{}
	sel, ctrl := newSelection(t, gen)
	sel.WaitIdle()

	errs := make(chan error, 1)
	sel.Subscribe(func(_ cover.Cover, err error) {
		if err != nil {
			select {
			case errs <- err:
			default:
			}
		}
	})

	gen.failWith(errors.New("boom"))

	if err := ctrl.SetTrimFractions(0.5, 0.9); err != nil {
		t.Fatalf("SetTrimFractions: %v", err)
	}
	sel.WaitIdle()

	select {
	case <-errs:
	default:
		t.Error("generation error not delivered on cover channel")
	}
	c, _ := sel.Cover()
	if string(c.Image) != "img-0" {
		t.Errorf("failed generation replaced image: %q", c.Image)
	}
	// The timestamp still tracks the trim start even when the image is stale.
	if c.TimestampMS != 5000 {
		t.Errorf("cover timestamp = %d, want 5000", c.TimestampMS)
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	gen := &stubGenerator{holdFirst: make(chan struct{})}
	sel, ctrl := newSelection(t, gen)

	// The first generation to reach the stub blocks; the newer request
	// issued by the trim change completes first either way.
	if err := ctrl.SetTrimFractions(0.3, 0.9); err != nil {
		t.Fatalf("SetTrimFractions: %v", err)
	}
	close(gen.holdFirst)
	sel.WaitIdle()

	c, _ := sel.Cover()
	if string(c.Image) != "img-3000" {
		t.Errorf("stale generation won: image = %q, want img-3000", c.Image)
	}
	if c.TimestampMS != 3000 {
		t.Errorf("cover timestamp = %d, want 3000", c.TimestampMS)
	}
}

func TestSetSelectedCoverReplacesUnconditionally(t *testing.T) {
	gen := &stubGenerator{}
	sel, _ := newSelection(t, gen)
	sel.WaitIdle()

	sel.SetSelectedCover(4200, []byte("custom"))
	c, ok := sel.Cover()
	if !ok || c.TimestampMS != 4200 || string(c.Image) != "custom" {
		t.Errorf("cover = %+v, want custom at 4200", c)
	}
}

func TestGenerateSynchronous(t *testing.T) {
	gen := &stubGenerator{}
	sel, _ := newSelection(t, gen)
	sel.WaitIdle()

	if err := sel.Generate(context.Background()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	c, _ := sel.Cover()
	if string(c.Image) != "img-0" {
		t.Errorf("cover image = %q, want img-0", c.Image)
	}
}

func TestDisposeReleasesImageAndSilences(t *testing.T) {
	gen := &stubGenerator{}
	sel, ctrl := newSelection(t, gen)
	sel.WaitIdle()

	notified := 0
	sel.Subscribe(func(cover.Cover, error) { notified++ })

	sel.Dispose()
	c, _ := sel.Cover()
	if c.Image != nil {
		t.Error("dispose did not release image bytes")
	}

	sel.SetSelectedCover(100, []byte("late"))
	if notified != 0 {
		t.Errorf("notifications fired after dispose: %d", notified)
	}

	// The wrapped controller is disposed too: its mutations stop notifying.
	ctrlNotified := 0
	ctrl.Subscribe(func() { ctrlNotified++ })
	ctrl.Rotate(editor.RotateLeft)
	if ctrlNotified != 0 {
		t.Errorf("controller notifications fired after dispose: %d", ctrlNotified)
	}
}
