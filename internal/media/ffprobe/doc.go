// Package ffprobe shells out to ffprobe and parses the container and video
// stream facts cliplab needs: duration, pixel dimensions, and any container
// rotation tag. The binary path is configurable; everything else about the
// invocation is fixed.
package ffprobe
