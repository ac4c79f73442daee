// Package media defines the playback source contract the edit controller
// depends on, plus a file-backed implementation that probes metadata with
// ffprobe and simulates playback position against the wall clock. The
// controller never decodes media itself; it only reads facts from a Source
// and issues play/pause/seek requests.
package media
