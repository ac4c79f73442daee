package session

import (
	"fmt"
	"time"

	"cliplab/internal/cover"
	"cliplab/internal/editor"
	"cliplab/internal/geometry"
	"cliplab/internal/textutil"
)

// Record is the persisted edit state for one asset.
type Record struct {
	AssetPath        string
	DisplayTitle     string
	RotationSteps    int
	TrimMin          float64
	TrimMax          float64
	CropMin          geometry.Point
	CropMax          geometry.Point
	PreferredRatio   float64
	CoverTimestampMS int64
	HasCover         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Snapshot captures the committed state of an initialized controller and
// its cover selection (which may be nil).
func Snapshot(assetPath string, ctrl *editor.Controller, sel *cover.Selection) *Record {
	record := &Record{
		AssetPath:     assetPath,
		DisplayTitle:  textutil.DisplayTitle(assetPath),
		RotationSteps: ctrl.RotationSteps(),
	}
	record.TrimMin, record.TrimMax = ctrl.TrimFractions()
	record.CropMin, record.CropMax = ctrl.CropFractions()
	record.PreferredRatio = ctrl.PreferredAspectRatio()
	if sel != nil {
		if c, ok := sel.Cover(); ok {
			record.CoverTimestampMS = c.TimestampMS
			record.HasCover = true
		}
	}
	return record
}

// Apply replays the record through the controller's public operations. The
// controller must already be initialized. Restored values that no longer
// satisfy the current duration bounds surface as errors.
func (r *Record) Apply(ctrl *editor.Controller, sel *cover.Selection) error {
	if r.PreferredRatio > 0 {
		ctrl.SetPreferredAspectRatio(r.PreferredRatio)
	}
	fullFrame := r.CropMin == (geometry.Point{}) && r.CropMax == (geometry.Point{X: 1, Y: 1})
	if !fullFrame {
		if err := ctrl.SetCropFractions(r.CropMin, r.CropMax); err != nil {
			return fmt.Errorf("restore crop: %w", err)
		}
	}
	min, max := ctrl.TrimFractions()
	if r.TrimMin != min || r.TrimMax != max {
		if err := ctrl.SetTrimFractions(r.TrimMin, r.TrimMax); err != nil {
			return fmt.Errorf("restore trim: %w", err)
		}
	}
	for i := 0; i < normalizeSteps(r.RotationSteps); i++ {
		ctrl.Rotate(editor.RotateLeft)
	}
	if sel != nil && r.HasCover {
		sel.SetSelectedCover(r.CoverTimestampMS, nil)
	}
	return nil
}

func normalizeSteps(steps int) int {
	return ((steps % 4) + 4) % 4
}
