package config

import (
	"fmt"
	"runtime"
	"strings"
)

func (c *Config) normalize(env envLookup) error {
	if env == nil {
		env = func(string) (string, bool) { return "", false }
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizeJellyfin(env)
	c.normalizeFFmpeg(env)
	c.normalizeTagging()
	c.normalizeScan()
	c.normalizeNonMedia()
	c.normalizeAPI(env)
	c.normalizeNotifications(env)
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	var err error
	c.Library.Backend = strings.ToLower(strings.TrimSpace(c.Library.Backend))
	if c.Library.Backend == "" {
		c.Library.Backend = defaultLibraryBackend
	}
	if c.Library.MoviesDir, err = expandPath(strings.TrimSpace(c.Library.MoviesDir)); err != nil {
		return fmt.Errorf("library.movies_dir: %w", err)
	}
	if c.Library.TVDir, err = expandPath(strings.TrimSpace(c.Library.TVDir)); err != nil {
		return fmt.Errorf("library.tv_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJellyfin(env envLookup) {
	if value, ok := env("JELLYFIN_URL"); ok {
		c.Jellyfin.URL = value
	}
	if value, ok := env("JELLYFIN_API_KEY"); ok {
		c.Jellyfin.APIKey = value
	}
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	if c.Jellyfin.TimeoutSeconds <= 0 {
		c.Jellyfin.TimeoutSeconds = defaultJellyfinTimeoutSeconds
	}
}

func (c *Config) normalizeFFmpeg(env envLookup) {
	if value, ok := env("LANGTAGGER_FFMPEG"); ok {
		c.FFmpeg.Binary = value
	}
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
}

// Prefixes are only trimmed here. Invalid values fall back to the defaults
// when a scan builds its policy, so a bad prefix never fails config loading.
func (c *Config) normalizeTagging() {
	c.Tagging.WhitelistLanguageTags = strings.TrimSpace(c.Tagging.WhitelistLanguageTags)
	c.Tagging.AudioLanguageTagPrefix = strings.TrimSpace(c.Tagging.AudioLanguageTagPrefix)
	c.Tagging.SubtitleLanguageTagPrefix = strings.TrimSpace(c.Tagging.SubtitleLanguageTagPrefix)
}

func (c *Config) normalizeScan() {
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = runtime.NumCPU()
	}
	c.Scan.Schedule = strings.TrimSpace(c.Scan.Schedule)
	c.Scan.ScheduleScope = strings.ToLower(strings.TrimSpace(c.Scan.ScheduleScope))
	if c.Scan.ScheduleScope == "" {
		c.Scan.ScheduleScope = defaultScheduleScope
	}
	if c.Scan.HistoryLimit <= 0 {
		c.Scan.HistoryLimit = defaultHistoryLimit
	}
}

func (c *Config) normalizeNonMedia() {
	types := make([]string, 0, len(c.NonMedia.ItemTypes))
	seen := make(map[string]struct{}, len(c.NonMedia.ItemTypes))
	for _, itemType := range c.NonMedia.ItemTypes {
		trimmed := strings.TrimSpace(itemType)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		types = append(types, trimmed)
	}
	c.NonMedia.ItemTypes = types
	c.NonMedia.Tag = strings.TrimSpace(c.NonMedia.Tag)
}

func (c *Config) normalizeAPI(env envLookup) {
	if value, ok := env("LANGTAGGER_API_TOKEN"); ok {
		c.API.Token = value
	}
	c.API.Token = strings.TrimSpace(c.API.Token)
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
}

func (c *Config) normalizeNotifications(env envLookup) {
	if value, ok := env("LANGTAGGER_NTFY_TOPIC"); ok {
		c.Notifications.NtfyTopic = value
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
