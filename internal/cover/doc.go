// Package cover tracks which single frame represents the edited video's
// poster image. Selection decorates an editor.Controller: it hooks the
// controller's trim lifecycle so the default cover follows the trim start,
// skips regeneration during an active trim drag, and always re-derives once
// the drag ends.
//
// Thumbnail generation is asynchronous and tagged: each request carries a
// generation tag, and completions whose tag is no longer current are
// discarded, so a slow generator can never install a stale cover. Failures
// are delivered on the cover subscription channel and leave the previous
// cover untouched.
//
// Selection exposes its own narrower subscription so observers interested
// only in the cover do not re-render on unrelated crop or rotation changes.
package cover
