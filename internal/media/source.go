package media

import (
	"time"

	"cliplab/internal/geometry"
)

// Source exposes the loaded video's metadata and playback surface. All
// duration and position values are absolute; dimensions are the stored
// frame size before any rotation is applied.
type Source interface {
	// IsReady reports whether metadata has been loaded and playback
	// operations may be issued.
	IsReady() bool

	// Duration returns the total duration of the loaded media.
	Duration() time.Duration

	// Dimensions returns the pixel size of the video frames.
	Dimensions() geometry.Size

	// Position returns the current playback position.
	Position() time.Duration

	// IsPlaying reports whether playback is running.
	IsPlaying() bool

	Play() error
	Pause() error

	// SeekTo moves the playback position. The playing/paused state is
	// unaffected.
	SeekTo(position time.Duration) error

	// SubscribePosition registers a callback invoked whenever the playback
	// position advances or jumps. The returned function removes the
	// subscription.
	SubscribePosition(fn func(position time.Duration)) (unsubscribe func())
}
