package media_test

import (
	"errors"
	"testing"
	"time"

	"cliplab/internal/media"
)

func TestFileSourceNotReady(t *testing.T) {
	src := media.NewFileSource("/tmp/missing.mp4")

	if src.IsReady() {
		t.Fatal("unopened source reports ready")
	}
	if err := src.Play(); !errors.Is(err, media.ErrNotReady) {
		t.Fatalf("Play on unopened source: %v", err)
	}
	if err := src.Pause(); !errors.Is(err, media.ErrNotReady) {
		t.Fatalf("Pause on unopened source: %v", err)
	}
	if err := src.SeekTo(time.Second); !errors.Is(err, media.ErrNotReady) {
		t.Fatalf("SeekTo on unopened source: %v", err)
	}
	if pos := src.Position(); pos != 0 {
		t.Fatalf("Position on unopened source = %v", pos)
	}
}

func TestFileSourceSubscriptionLifecycle(t *testing.T) {
	src := media.NewFileSource("/tmp/missing.mp4")

	calls := 0
	unsubscribe := src.SubscribePosition(func(time.Duration) { calls++ })
	unsubscribe()
	unsubscribe() // second call must be harmless

	if calls != 0 {
		t.Fatalf("subscriber invoked %d times without playback", calls)
	}
	if src.Path() != "/tmp/missing.mp4" {
		t.Fatalf("Path = %q", src.Path())
	}
}
