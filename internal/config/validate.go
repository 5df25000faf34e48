package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

var scanScopes = map[string]struct{}{
	"movies":            {},
	"series":            {},
	"collections":       {},
	"externalsubtitles": {},
	"everything":        {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateNonMedia(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"jellyfin.timeout_seconds":              c.Jellyfin.TimeoutSeconds,
		"scan.workers":                          c.Scan.Workers,
		"scan.history_limit":                    c.Scan.HistoryLimit,
		"notifications.request_timeout_seconds": c.Notifications.RequestTimeoutSeconds,
	})
}

func (c *Config) validateLibrary() error {
	switch c.Library.Backend {
	case BackendJellyfin:
		if strings.TrimSpace(c.Jellyfin.URL) == "" {
			return errors.New("jellyfin.url must be set when library.backend is jellyfin (or set JELLYFIN_URL)")
		}
		if strings.TrimSpace(c.Jellyfin.APIKey) == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = defaultConfigPath
			}
			return fmt.Errorf("jellyfin.api_key is required. Set JELLYFIN_API_KEY env var or edit %s (create with 'langtagger config init')", defaultPath)
		}
	case BackendLocal:
		if c.Library.MoviesDir == "" && c.Library.TVDir == "" {
			return errors.New("library.movies_dir or library.tv_dir must be set when library.backend is local")
		}
	default:
		return fmt.Errorf("library.backend: unsupported value %q (want jellyfin or local)", c.Library.Backend)
	}
	return nil
}

func (c *Config) validateScan() error {
	if _, ok := scanScopes[c.Scan.ScheduleScope]; !ok {
		return fmt.Errorf("scan.schedule_scope: unsupported value %q", c.Scan.ScheduleScope)
	}
	if c.Scan.Schedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(c.Scan.Schedule); err != nil {
		return fmt.Errorf("scan.schedule: %w", err)
	}
	return nil
}

func (c *Config) validateNonMedia() error {
	if c.NonMedia.Tag == "" {
		return errors.New("non_media.tag must not be empty")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
