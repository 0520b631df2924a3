package config

const (
	defaultConfigPath           = "~/.config/mixfetch/config.toml"
	projectConfigName           = "mixfetch.toml"
	defaultSourceList           = "mixcloud-to-dl.txt"
	defaultOutputDir            = "downloads"
	defaultLogDir               = "~/.local/share/mixfetch/logs"
	defaultYtDlpBinary          = "yt-dlp"
	defaultFFmpegLocation       = "ffmpeg"
	defaultFormat               = "bestaudio/best"
	defaultAudioFormat          = "mp3"
	defaultAudioQuality         = "192"
	defaultOutputTemplate       = "%(title)s.%(ext)s"
	defaultDelaySeconds         = 30
	defaultCommentLanguage      = "eng"
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 10
	defaultLogMaxBackups        = 5
	defaultLogRetentionDays     = 30
	envNtfyTopic                = "MIXFETCH_NTFY_TOPIC"
	envFFmpegLocation           = "MIXFETCH_FFMPEG_LOCATION"
	envYtDlpBinary              = "MIXFETCH_YTDLP_BINARY"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceList: defaultSourceList,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		// YtDlpBinary and FFmpegLocation stay empty so normalize can consult
		// the environment before falling back to the built-in names.
		Download: Download{
			Format:         defaultFormat,
			AudioFormat:    defaultAudioFormat,
			AudioQuality:   defaultAudioQuality,
			OutputTemplate: defaultOutputTemplate,
			DelaySeconds:   defaultDelaySeconds,
		},
		Tagging: Tagging{
			Enabled:         true,
			CommentLanguage: defaultCommentLanguage,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Batch:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
