package config

import "runtime"

const (
	defaultConfigPath             = "~/.config/langtagger/config.toml"
	defaultStateDir               = "~/.local/share/langtagger"
	defaultLogDir                 = "~/.local/share/langtagger/logs"
	defaultLogRetentionDays       = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLibraryBackend         = BackendJellyfin
	defaultJellyfinTimeoutSeconds = 30
	defaultFFmpegBinary           = "ffmpeg"
	defaultAPIBind                = "127.0.0.1:7488"
	defaultScheduleScope          = "everything"
	defaultHistoryLimit           = 50
	defaultNonMediaTag            = "language_Non-Media"
	defaultNtfyTimeoutSeconds     = 10

	// DefaultAudioPrefix is the audio tag prefix used when none (or an invalid one) is configured.
	DefaultAudioPrefix = "language_"
	// DefaultSubtitlePrefix is the subtitle tag prefix used when none (or an invalid one) is configured.
	DefaultSubtitlePrefix = "subtitle_language_"
)

// Library backends.
const (
	BackendJellyfin = "jellyfin"
	BackendLocal    = "local"
)

var defaultNonMediaItemTypes = []string{"Playlist", "Photo", "PhotoAlbum", "MusicAlbum", "Audio", "Book"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Library: Library{
			Backend: defaultLibraryBackend,
		},
		Jellyfin: Jellyfin{
			TimeoutSeconds: defaultJellyfinTimeoutSeconds,
		},
		FFmpeg: FFmpeg{
			Binary: defaultFFmpegBinary,
		},
		Tagging: Tagging{
			AddSubtitleTags:           true,
			AudioLanguageTagPrefix:    DefaultAudioPrefix,
			SubtitleLanguageTagPrefix: DefaultSubtitlePrefix,
		},
		Scan: Scan{
			Workers:       runtime.NumCPU(),
			ScheduleScope: defaultScheduleScope,
			HistoryLimit:  defaultHistoryLimit,
		},
		NonMedia: NonMedia{
			ItemTypes: append([]string(nil), defaultNonMediaItemTypes...),
			Tag:       defaultNonMediaTag,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
			NotifySuccess:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
