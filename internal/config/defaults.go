package config

const (
	defaultSessionDir       = "~/.local/share/cliplab/sessions"
	defaultLogDir           = "~/.local/share/cliplab/logs"
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultThumbnailQuality = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SessionDir: defaultSessionDir,
			LogDir:     defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Edit: Edit{
			CoverThumbnailQuality: defaultThumbnailQuality,
			TrimThumbnailQuality:  defaultThumbnailQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
