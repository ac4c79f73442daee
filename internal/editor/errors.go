package editor

import (
	"errors"

	"cliplab/internal/geometry"
)

// Re-exported contract-violation sentinels so callers holding only a
// Controller can match rejections without importing geometry.
var (
	ErrCropOrder = geometry.ErrCropOrder
	ErrTrimOrder = geometry.ErrTrimOrder
)

var (
	// ErrMinDurationExceedsVideo reports a configured minimum duration
	// longer than the loaded video. Raised at initialization so callers can
	// present a specific message before any editing begins.
	ErrMinDurationExceedsVideo = errors.New("configured minimum duration exceeds video duration")

	// ErrDurationBounds reports a construction-time configuration where the
	// maximum duration does not exceed the minimum.
	ErrDurationBounds = errors.New("maximum duration must exceed minimum duration")

	// ErrSourceNotReady is returned by Initialize when the media source has
	// not finished loading.
	ErrSourceNotReady = errors.New("media source is not ready")

	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("controller already initialized")

	// ErrNotInitialized is returned by operations that need the media
	// duration before Initialize has run.
	ErrNotInitialized = errors.New("controller not initialized")
)
