// Package thumbs defines the thumbnail generation contract the cover
// sub-state depends on, plus an implementation that extracts a single JPEG
// frame by shelling out to ffmpeg. Quality is a 0-100 percentage mapped to
// ffmpeg's inverted 2-31 JPEG quality scale.
package thumbs
