package geometry

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCropOrder reports a crop rectangle whose min is not strictly below
	// its max on both axes. This is a caller contract violation.
	ErrCropOrder = errors.New("crop min must be strictly less than max on both axes")

	// ErrTrimOrder reports a trim range whose min fraction is not strictly
	// below its max fraction.
	ErrTrimOrder = errors.New("trim min fraction must be strictly less than max fraction")
)

// TrimBound identifies which duration bound a trim violated.
type TrimBound int

const (
	BoundMin TrimBound = iota
	BoundMax
)

func (b TrimBound) String() string {
	if b == BoundMin {
		return "minimum"
	}
	return "maximum"
}

// TrimBoundsError reports a trim whose resulting duration falls outside the
// allowed range, carrying both the violated limit and the actual value so
// callers can drive precise feedback.
type TrimBoundsError struct {
	Bound  TrimBound
	Limit  time.Duration
	Actual time.Duration
}

func (e *TrimBoundsError) Error() string {
	if e.Bound == BoundMax {
		return fmt.Sprintf("trim duration %s exceeds %s allowed %s", e.Actual, e.Bound, e.Limit)
	}
	return fmt.Sprintf("trim duration %s is below %s allowed %s", e.Actual, e.Bound, e.Limit)
}
