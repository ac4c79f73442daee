package editor

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"cliplab/internal/geometry"
	"cliplab/internal/media"
)

// Direction selects which way Rotate turns the frame.
type Direction int

const (
	RotateLeft Direction = iota
	RotateRight
)

// Options configures a Controller at construction.
type Options struct {
	// MinDuration is the shortest duration a trim may produce. Zero means
	// no lower bound.
	MinDuration time.Duration
	// MaxDuration is the longest duration a trim may produce. Zero means
	// the full source duration, resolved at Initialize.
	MaxDuration time.Duration
	Logger      *slog.Logger
}

// Controller owns the edit state for one video asset. Construct with New,
// call Initialize once the media source is ready, mutate through the public
// operations, and Dispose when done. See the package comment for the
// notification contract.
type Controller struct {
	src media.Source
	log *slog.Logger

	events *emitter

	minDuration time.Duration
	maxOption   time.Duration

	mu            sync.Mutex
	initialized   bool
	disposed      bool
	total         time.Duration
	maxDuration   time.Duration
	rotationSteps int
	trimMinFrac   float64
	trimMaxFrac   float64
	trimStart     time.Duration
	trimEnd       time.Duration
	cropMin       geometry.Point
	cropMax       geometry.Point
	cachedMin     geometry.Point
	cachedMax     geometry.Point
	preferred     float64
	trimming      bool
	cropping      bool
	seekPending   bool

	unsubscribePosition func()

	trimChanged      func()
	trimmingReleased func()
}

// New constructs a controller with default full-frame crop, full-duration
// trim, and zero rotation. The duration bounds are validated: when both are
// set, MaxDuration must exceed MinDuration.
func New(src media.Source, opts Options) (*Controller, error) {
	if src == nil {
		return nil, fmt.Errorf("editor: nil media source")
	}
	if opts.MinDuration < 0 || opts.MaxDuration < 0 {
		return nil, fmt.Errorf("editor: negative duration bound")
	}
	if opts.MaxDuration > 0 && opts.MaxDuration <= opts.MinDuration {
		return nil, fmt.Errorf("editor: %w (min %s, max %s)", ErrDurationBounds, opts.MinDuration, opts.MaxDuration)
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Controller{
		src:         src,
		log:         log,
		events:      newEmitter(),
		minDuration: opts.MinDuration,
		maxOption:   opts.MaxDuration,
		trimMinFrac: 0,
		trimMaxFrac: 1,
		cropMin:     geometry.Point{X: 0, Y: 0},
		cropMax:     geometry.Point{X: 1, Y: 1},
		cachedMin:   geometry.Point{X: 0, Y: 0},
		cachedMax:   geometry.Point{X: 1, Y: 1},
	}, nil
}

// Initialize reads the media duration, resolves the maximum duration bound,
// applies the initial trim and optional aspect-ratio crop, and starts
// listening for playback position updates. preferredRatio of zero means no
// initial crop. Call exactly once.
func (c *Controller) Initialize(preferredRatio float64) error {
	if !c.src.IsReady() {
		return ErrSourceNotReady
	}

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	total := c.src.Duration()
	if c.minDuration > total {
		c.mu.Unlock()
		return fmt.Errorf("%w: minimum %s, video %s", ErrMinDurationExceedsVideo, c.minDuration, total)
	}

	c.total = total
	c.maxDuration = c.maxOption
	if c.maxDuration == 0 || c.maxDuration > total {
		c.maxDuration = total
	}

	if c.maxDuration < total {
		c.trimMinFrac = 0
		c.trimMaxFrac = float64(c.maxDuration) / float64(total)
	}
	c.recomputeTrimLocked()

	if preferredRatio > 0 {
		c.preferred = preferredRatio
		c.cropMin, c.cropMax = geometry.CenteredCrop(c.src.Dimensions(), preferredRatio)
	}

	c.initialized = true
	c.unsubscribePosition = c.src.SubscribePosition(c.HandlePositionChange)
	c.mu.Unlock()

	c.log.Debug("editor initialized",
		slog.Duration("total", total),
		slog.Duration("max", c.MaxDuration()),
		slog.Float64("ratio", preferredRatio))

	c.fireTrimChanged()
	c.events.notify()
	return nil
}

// Subscribe registers an observer invoked once after every committed
// mutation. The returned token removes the subscription via Unsubscribe.
func (c *Controller) Subscribe(fn func()) uuid.UUID {
	return c.events.subscribe(fn)
}

// Unsubscribe removes a previously registered observer.
func (c *Controller) Unsubscribe(id uuid.UUID) {
	c.events.unsubscribe(id)
}

// OnTrimChanged registers the hook invoked after every trim recomputation,
// including the one performed by Initialize. Used by the cover sub-state.
func (c *Controller) OnTrimChanged(fn func()) {
	c.mu.Lock()
	c.trimChanged = fn
	c.mu.Unlock()
}

// OnTrimmingReleased registers the hook invoked when an interactive trim
// drag ends. Used by the cover sub-state.
func (c *Controller) OnTrimmingReleased(fn func()) {
	c.mu.Lock()
	c.trimmingReleased = fn
	c.mu.Unlock()
}

// SetCropFractions validates and commits the crop rectangle.
func (c *Controller) SetCropFractions(min, max geometry.Point) error {
	if err := geometry.ValidateCrop(min, max); err != nil {
		return err
	}
	c.mu.Lock()
	if c.cropMin == min && c.cropMax == max {
		c.mu.Unlock()
		return nil
	}
	c.cropMin, c.cropMax = min, max
	c.mu.Unlock()

	c.events.notify()
	return nil
}

// SetCachedCropFractions validates and stages a crop rectangle without
// committing it; ApplyCachedCrop promotes it later.
func (c *Controller) SetCachedCropFractions(min, max geometry.Point) error {
	if err := geometry.ValidateCrop(min, max); err != nil {
		return err
	}
	c.mu.Lock()
	if c.cachedMin == min && c.cachedMax == max {
		c.mu.Unlock()
		return nil
	}
	c.cachedMin, c.cachedMax = min, max
	c.mu.Unlock()

	c.events.notify()
	return nil
}

// ApplyCachedCrop commits the staged crop as the active one. The staged
// value was validated when cached, so no validation is re-run.
func (c *Controller) ApplyCachedCrop() {
	c.mu.Lock()
	if c.cropMin == c.cachedMin && c.cropMax == c.cachedMax {
		c.mu.Unlock()
		return
	}
	c.cropMin, c.cropMax = c.cachedMin, c.cachedMax
	c.mu.Unlock()

	c.events.notify()
}

// SetTrimFractions validates the trim against the duration bounds, commits
// the fractions, and recomputes the derived absolute range.
func (c *Controller) SetTrimFractions(min, max float64) error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return ErrNotInitialized
	}
	if err := geometry.ValidateTrim(min, max, c.total, c.minDuration, c.maxDuration); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.trimMinFrac == min && c.trimMaxFrac == max {
		c.mu.Unlock()
		return nil
	}
	c.trimMinFrac, c.trimMaxFrac = min, max
	c.recomputeTrimLocked()
	c.mu.Unlock()

	c.fireTrimChanged()
	c.events.notify()
	return nil
}

// SetPreferredAspectRatio stores the ratio and, when non-zero, commits a
// centered crop matching it. Equal values are a no-op; ratio zero clears
// the preference without altering the crop. One notification covers the
// combined change.
func (c *Controller) SetPreferredAspectRatio(ratio float64) {
	c.mu.Lock()
	if c.preferred == ratio {
		c.mu.Unlock()
		return
	}
	c.preferred = ratio
	if ratio > 0 {
		c.cropMin, c.cropMax = geometry.CenteredCrop(c.src.Dimensions(), ratio)
	}
	c.mu.Unlock()

	c.events.notify()
}

// SetAspectRatioFromCurrentCrop derives the ratio of the committed crop's
// pixel size and stores it as preferred without altering the crop.
func (c *Controller) SetAspectRatioFromCurrentCrop() {
	dims := c.src.Dimensions()

	c.mu.Lock()
	cropped := geometry.CroppedSize(dims, c.cropMin, c.cropMax)
	ratio := cropped.Ratio()
	if ratio == 0 || c.preferred == ratio {
		c.mu.Unlock()
		return
	}
	c.preferred = ratio
	c.mu.Unlock()

	c.events.notify()
}

// Rotate turns the frame a quarter step: left increments the step counter,
// right decrements it. The logical rotation is always normalized to
// {0, 90, 180, 270}.
func (c *Controller) Rotate(direction Direction) {
	c.mu.Lock()
	if direction == RotateLeft {
		c.rotationSteps++
	} else {
		c.rotationSteps--
	}
	c.mu.Unlock()

	c.events.notify()
}

// SetTrimmingActive toggles the transient interactive-trim flag. Releasing
// the flag fires the trimming-released hook so the cover sub-state can
// re-derive its default cover once per drag.
func (c *Controller) SetTrimmingActive(active bool) {
	c.mu.Lock()
	if c.trimming == active {
		c.mu.Unlock()
		return
	}
	c.trimming = active
	c.mu.Unlock()

	if !active {
		c.fireTrimmingReleased()
	}
	c.events.notify()
}

// SetCroppingActive toggles the interactive-crop mode flag consulted by
// collaborators.
func (c *Controller) SetCroppingActive(active bool) {
	c.mu.Lock()
	if c.cropping == active {
		c.mu.Unlock()
		return
	}
	c.cropping = active
	c.mu.Unlock()

	c.events.notify()
}

// HandlePositionChange reacts to a playback position report from the media
// source. Positions outside the trimmed range trigger one corrective seek
// to the trim start; further out-of-range reports are tolerated until that
// seek lands.
func (c *Controller) HandlePositionChange(position time.Duration) {
	c.mu.Lock()
	if !c.initialized || c.disposed {
		c.mu.Unlock()
		return
	}
	inRange := position >= c.trimStart && position <= c.trimEnd
	if inRange {
		c.seekPending = false
		c.mu.Unlock()
		return
	}
	if c.seekPending {
		c.mu.Unlock()
		return
	}
	c.seekPending = true
	target := c.trimStart
	c.mu.Unlock()

	if err := c.src.SeekTo(target); err != nil {
		c.log.Warn("corrective seek failed", slog.Duration("target", target), slog.Any("error", err))
		c.mu.Lock()
		c.seekPending = false
		c.mu.Unlock()
	}
}

// Dispose pauses playback if running, stops listening to the media source,
// and silences all observers. Safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	unsubscribe := c.unsubscribePosition
	c.unsubscribePosition = nil
	c.mu.Unlock()

	if c.src.IsPlaying() {
		if err := c.src.Pause(); err != nil {
			c.log.Warn("pause on dispose failed", slog.Any("error", err))
		}
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	c.events.close()
}

// Source returns the media source the controller observes.
func (c *Controller) Source() media.Source { return c.src }

// Rotation returns the logical rotation in degrees: 0, 90, 180, or 270.
func (c *Controller) Rotation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return normalizeRotation(c.rotationSteps)
}

// RotationSteps returns the raw signed quarter-step counter.
func (c *Controller) RotationSteps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotationSteps
}

// IsRotated reports whether the logical rotation swaps width and height.
func (c *Controller) IsRotated() bool {
	rotation := c.Rotation()
	return rotation == 90 || rotation == 270
}

// TrimFractions returns the committed trim range as fractions.
func (c *Controller) TrimFractions() (min, max float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trimMinFrac, c.trimMaxFrac
}

// TrimStart returns the derived absolute trim start.
func (c *Controller) TrimStart() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trimStart
}

// TrimEnd returns the derived absolute trim end.
func (c *Controller) TrimEnd() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trimEnd
}

// IsTrimmed reports whether the trim range differs from the full duration.
func (c *Controller) IsTrimmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trimStart != 0 || c.trimEnd != c.total
}

// IsTrimming reports whether an interactive trim drag is in progress.
func (c *Controller) IsTrimming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trimming
}

// IsCropping reports whether interactive-crop mode is active.
func (c *Controller) IsCropping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cropping
}

// CropFractions returns the committed crop rectangle.
func (c *Controller) CropFractions() (min, max geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cropMin, c.cropMax
}

// CachedCropFractions returns the staged crop rectangle.
func (c *Controller) CachedCropFractions() (min, max geometry.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedMin, c.cachedMax
}

// CroppedSize returns the pixel size of the committed crop.
func (c *Controller) CroppedSize() geometry.Size {
	dims := c.src.Dimensions()
	c.mu.Lock()
	defer c.mu.Unlock()
	return geometry.CroppedSize(dims, c.cropMin, c.cropMax)
}

// PreferredAspectRatio returns the stored ratio, zero when unset.
func (c *Controller) PreferredAspectRatio() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preferred
}

// TotalDuration returns the media duration captured at initialization.
func (c *Controller) TotalDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// MinDuration returns the configured lower trim bound.
func (c *Controller) MinDuration() time.Duration { return c.minDuration }

// MaxDuration returns the resolved upper trim bound; zero before
// initialization.
func (c *Controller) MaxDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxDuration
}

func (c *Controller) recomputeTrimLocked() {
	c.trimStart = fractionOf(c.total, c.trimMinFrac)
	c.trimEnd = fractionOf(c.total, c.trimMaxFrac)
}

func (c *Controller) fireTrimChanged() {
	c.mu.Lock()
	fn := c.trimChanged
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *Controller) fireTrimmingReleased() {
	c.mu.Lock()
	fn := c.trimmingReleased
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func normalizeRotation(steps int) int {
	quarter := ((steps % 4) + 4) % 4
	return quarter * 90
}

// fractionOf scales a duration by a fraction, rounded to the nearest
// microsecond to match the trim validation arithmetic.
func fractionOf(total time.Duration, frac float64) time.Duration {
	micros := math.Round(frac * float64(total) / float64(time.Microsecond))
	return time.Duration(micros) * time.Microsecond
}
