// Package editor owns the non-destructive edit state for a single video
// asset: crop region, trim range, rotation steps, preferred aspect ratio,
// and the transient interaction flags. Fraction-based fields are the source
// of truth; absolute trim durations are derived from the media source's
// total duration and recomputed whenever either side changes.
//
// Every public mutation validates its inputs through the geometry rules,
// commits, and notifies subscribers exactly once. Mutations that would not
// change state do not notify. The controller reacts to playback position
// updates from the media source by seeking back to the trim start whenever
// the position escapes the trimmed range, which makes the trim behave like
// a loop region during preview playback.
//
// Extension points for the cover sub-state are registered with
// OnTrimChanged and OnTrimmingReleased; see the cover package.
package editor
