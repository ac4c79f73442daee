package geometry

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidateCrop(t *testing.T) {
	tests := []struct {
		name    string
		min     Point
		max     Point
		wantErr bool
	}{
		{"full frame", Point{0, 0}, Point{1, 1}, false},
		{"interior", Point{0.1, 0.2}, Point{0.9, 0.8}, false},
		{"inverted x", Point{0.9, 0.2}, Point{0.1, 0.8}, true},
		{"inverted y", Point{0.1, 0.8}, Point{0.9, 0.2}, true},
		{"zero width", Point{0.5, 0.2}, Point{0.5, 0.8}, true},
		{"zero height", Point{0.1, 0.5}, Point{0.9, 0.5}, true},
		{"below unit square", Point{-0.1, 0.2}, Point{0.9, 0.8}, true},
		{"above unit square", Point{0.1, 0.2}, Point{0.9, 1.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCrop(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCrop(%v, %v) err=%v, want error=%v", tt.min, tt.max, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrCropOrder) {
				t.Errorf("expected ErrCropOrder, got %v", err)
			}
		})
	}
}

func TestCroppedSize(t *testing.T) {
	dims := Size{Width: 1920, Height: 1080}
	got := CroppedSize(dims, Point{0.25, 0.25}, Point{0.75, 0.75})
	if got.Width != 960 || got.Height != 540 {
		t.Fatalf("CroppedSize = %dx%d, want 960x540", got.Width, got.Height)
	}
}

func TestCenteredCrop(t *testing.T) {
	tests := []struct {
		name  string
		dims  Size
		ratio float64
	}{
		{"square in wide frame", Size{1920, 1080}, 1.0},
		{"wide in wide frame", Size{1920, 1080}, 2.35},
		{"wide in tall frame", Size{1080, 1920}, 16.0 / 9.0},
		{"matching ratio", Size{1920, 1080}, 16.0 / 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := CenteredCrop(tt.dims, tt.ratio)
			if err := ValidateCrop(min, max); err != nil {
				t.Fatalf("CenteredCrop produced invalid rect: %v", err)
			}
			cropped := CroppedSize(tt.dims, min, max)
			got := cropped.Ratio()
			if math.Abs(got-tt.ratio) > 0.01 {
				t.Errorf("cropped ratio = %.4f, want %.4f", got, tt.ratio)
			}
			// Centered: equal margins on each axis.
			if math.Abs(min.X-(1-max.X)) > 1e-9 || math.Abs(min.Y-(1-max.Y)) > 1e-9 {
				t.Errorf("crop not centered: min=%v max=%v", min, max)
			}
		})
	}
}

func TestCenteredCropDegenerate(t *testing.T) {
	min, max := CenteredCrop(Size{}, 1.5)
	if min != (Point{0, 0}) || max != (Point{1, 1}) {
		t.Fatalf("degenerate dims should yield full frame, got %v..%v", min, max)
	}
}

func TestValidateTrim(t *testing.T) {
	total := 10 * time.Second

	tests := []struct {
		name       string
		minFrac    float64
		maxFrac    float64
		minAllowed time.Duration
		maxAllowed time.Duration
		wantErr    error
		wantBound  TrimBound
	}{
		{name: "full range unbounded", minFrac: 0, maxFrac: 1},
		{name: "inverted", minFrac: 0.6, maxFrac: 0.4, wantErr: ErrTrimOrder},
		{name: "equal", minFrac: 0.5, maxFrac: 0.5, wantErr: ErrTrimOrder},
		{name: "negative min", minFrac: -0.1, maxFrac: 0.5, wantErr: ErrTrimOrder},
		{name: "max above one", minFrac: 0.5, maxFrac: 1.1, wantErr: ErrTrimOrder},
		{name: "too long", minFrac: 0, maxFrac: 0.8, maxAllowed: 4 * time.Second, wantErr: &TrimBoundsError{}, wantBound: BoundMax},
		{name: "too short", minFrac: 0.1, maxFrac: 0.2, minAllowed: 2 * time.Second, wantErr: &TrimBoundsError{}, wantBound: BoundMin},
		{name: "exactly max", minFrac: 0, maxFrac: 0.4, maxAllowed: 4 * time.Second},
		{name: "exactly min", minFrac: 0, maxFrac: 0.2, minAllowed: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrim(tt.minFrac, tt.maxFrac, total, tt.minAllowed, tt.maxAllowed)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateTrim returned %v, want nil", err)
				}
				return
			}
			if errors.Is(tt.wantErr, ErrTrimOrder) {
				if !errors.Is(err, ErrTrimOrder) {
					t.Fatalf("expected ErrTrimOrder, got %v", err)
				}
				return
			}
			var bounds *TrimBoundsError
			if !errors.As(err, &bounds) {
				t.Fatalf("expected TrimBoundsError, got %v", err)
			}
			if bounds.Bound != tt.wantBound {
				t.Errorf("violated bound = %s, want %s", bounds.Bound, tt.wantBound)
			}
		})
	}
}

func TestValidateTrimBoundaryRounding(t *testing.T) {
	// 1/3 of a 10s video cannot be represented exactly in floating point;
	// dual rounding must still accept a limit of the floored microseconds.
	total := 10 * time.Second
	span := 1.0 / 3.0
	exact := time.Duration(span*float64(total)/float64(time.Microsecond)) * time.Microsecond

	if err := ValidateTrim(0, span, total, exact, 0); err != nil {
		t.Fatalf("min bound at floating boundary rejected: %v", err)
	}
	if err := ValidateTrim(0, span, total, 0, exact+time.Microsecond); err != nil {
		t.Fatalf("max bound at floating boundary rejected: %v", err)
	}
}
