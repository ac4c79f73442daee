package thumbs

import "context"

// Generator produces a still image for a video frame. Implementations are
// asynchronous from the caller's perspective only through the context; the
// call itself blocks until the image is ready or the context is done.
type Generator interface {
	// Generate renders the frame at timestampMs of the given source as an
	// encoded image. qualityPercent ranges 0-100; higher is better.
	Generate(ctx context.Context, sourcePath string, timestampMs int64, qualityPercent int) ([]byte, error)
}
