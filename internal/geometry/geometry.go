package geometry

import (
	"math"
	"time"
)

// Point is a normalized coordinate in [0,1]x[0,1] of the frame dimensions.
type Point struct {
	X float64
	Y float64
}

// Size describes pixel dimensions of a video frame.
type Size struct {
	Width  int
	Height int
}

// Ratio returns width over height, or 0 for degenerate sizes.
func (s Size) Ratio() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}

// ValidateCrop checks that the crop rectangle lies inside the unit square
// and is well ordered componentwise.
func ValidateCrop(min, max Point) error {
	if min.X < 0 || min.Y < 0 || max.X > 1 || max.Y > 1 {
		return ErrCropOrder
	}
	if min.X >= max.X || min.Y >= max.Y {
		return ErrCropOrder
	}
	return nil
}

// CroppedSize returns the pixel dimensions of the crop region described by
// the fraction pair applied to dims.
func CroppedSize(dims Size, min, max Point) Size {
	return Size{
		Width:  int(math.Round((max.X - min.X) * float64(dims.Width))),
		Height: int(math.Round((max.Y - min.Y) * float64(dims.Height))),
	}
}

// CenteredCrop computes the largest rectangle centered in dims whose pixel
// aspect ratio matches the requested ratio, expressed as fractions of dims.
func CenteredCrop(dims Size, ratio float64) (min, max Point) {
	source := dims.Ratio()
	if source == 0 || ratio <= 0 {
		return Point{0, 0}, Point{1, 1}
	}
	fracW, fracH := 1.0, 1.0
	if ratio > source {
		// Requested shape is wider than the frame: full width, reduced height.
		fracH = source / ratio
	} else if ratio < source {
		fracW = ratio / source
	}
	min = Point{X: (1 - fracW) / 2, Y: (1 - fracH) / 2}
	max = Point{X: min.X + fracW, Y: min.Y + fracH}
	return min, max
}

// ValidateTrim checks ordering of the trim fractions and that the resulting
// duration stays inside [minAllowed, maxAllowed]. A maxAllowed of zero means
// unbounded. The duration is evaluated at microsecond granularity rounded
// both ways; the trim passes when the floored duration does not exceed
// maxAllowed and the ceiling duration is not below minAllowed.
func ValidateTrim(minFrac, maxFrac float64, total, minAllowed, maxAllowed time.Duration) error {
	if minFrac < 0 || maxFrac > 1 || minFrac >= maxFrac {
		return ErrTrimOrder
	}
	exactMicros := (maxFrac - minFrac) * float64(total) / float64(time.Microsecond)
	floor := time.Duration(math.Floor(exactMicros)) * time.Microsecond
	ceil := time.Duration(math.Ceil(exactMicros)) * time.Microsecond
	if maxAllowed > 0 && floor > maxAllowed {
		return &TrimBoundsError{Bound: BoundMax, Limit: maxAllowed, Actual: floor}
	}
	if minAllowed > 0 && ceil < minAllowed {
		return &TrimBoundsError{Bound: BoundMin, Limit: minAllowed, Actual: ceil}
	}
	return nil
}
