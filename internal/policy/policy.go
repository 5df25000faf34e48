package policy

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"

	"langtagger/internal/config"
	"langtagger/internal/language"
	"langtagger/internal/logging"
	"langtagger/internal/tags"
)

const minPrefixLength = 3

// Policy is the immutable per-scan view of the tagging configuration.
type Policy struct {
	FullRefresh            bool
	Synchronous            bool
	IncludeSubtitleTags    bool
	DisableUndeterminedTag bool
	Whitelist              Whitelist
	AudioPrefix            string
	SubtitlePrefix         string
	Workers                int
	DetectSidecarContent   bool
}

// FromConfig builds the policy for one scan. fullRefresh is ORed with the
// configured always_force_full_refresh. Invalid prefixes fall back to the
// defaults with a warning.
func FromConfig(cfg *config.Config, fullRefresh bool, logger *slog.Logger) Policy {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	logger = logging.NewComponentLogger(logger, "policy")
	tagging := cfg.Tagging
	audio, subtitle := ValidatePrefixes(logger, tagging.AudioLanguageTagPrefix, tagging.SubtitleLanguageTagPrefix)

	workers := cfg.Scan.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return Policy{
		FullRefresh:            fullRefresh || tagging.AlwaysForceFullRefresh,
		Synchronous:            tagging.SynchronousRefresh,
		IncludeSubtitleTags:    tagging.AddSubtitleTags,
		DisableUndeterminedTag: tagging.DisableUndefinedLanguageTags,
		Whitelist:              ParseWhitelist(logger, tagging.WhitelistLanguageTags),
		AudioPrefix:            audio,
		SubtitlePrefix:         subtitle,
		Workers:                workers,
		DetectSidecarContent:   tagging.DetectSidecarContent,
	}
}

// Prefixes returns the tag prefixes of the policy.
func (p Policy) Prefixes() tags.Prefixes {
	return tags.Prefixes{Audio: p.AudioPrefix, Subtitle: p.SubtitlePrefix}
}

// Enabled reports whether tags of kind are maintained by regular passes.
func (p Policy) Enabled(kind tags.Kind) bool {
	return kind == tags.Audio || p.IncludeSubtitleTags
}

// ValidatePrefixes returns usable prefixes. Each must be at least three
// characters, and the two must differ case-insensitively; otherwise both
// revert to the defaults.
func ValidatePrefixes(logger *slog.Logger, audio, subtitle string) (string, string) {
	audio = strings.TrimSpace(audio)
	subtitle = strings.TrimSpace(subtitle)
	reason := ""
	switch {
	case len([]rune(audio)) < minPrefixLength:
		reason = "audio prefix shorter than 3 characters"
	case len([]rune(subtitle)) < minPrefixLength:
		reason = "subtitle prefix shorter than 3 characters"
	case tags.EqualFold(audio, subtitle):
		reason = "audio and subtitle prefixes are identical"
	}
	if reason == "" {
		return audio, subtitle
	}
	logging.WarnWithContext(logger, "invalid tag prefixes; using defaults", "policy_prefix_fallback",
		logging.String("reason", reason),
		logging.String("audio_prefix", audio),
		logging.String("subtitle_prefix", subtitle),
		logging.String(logging.FieldErrorHint, "fix tagging.audio_language_tag_prefix and tagging.subtitle_language_tag_prefix"),
		logging.String(logging.FieldImpact, "tags are written with the default prefixes"),
	)
	return config.DefaultAudioPrefix, config.DefaultSubtitlePrefix
}

// Whitelist is a set of canonical 3-letter codes. An empty whitelist allows
// every language; a configured one always contains at least und.
type Whitelist map[string]struct{}

// ParseWhitelist splits a comma-separated code list and normalizes each entry
// to its canonical 3-letter code. Unknown codes are dropped with a warning.
// A list of only unknown codes still filters: every language but und is
// dropped.
func ParseWhitelist(logger *slog.Logger, raw string) Whitelist {
	out := Whitelist{}
	var unknown []string
	for _, field := range strings.Split(raw, ",") {
		code := strings.TrimSpace(field)
		if code == "" {
			continue
		}
		canonical := language.Canonical3(code)
		if canonical == "" {
			unknown = append(unknown, code)
			continue
		}
		out[canonical] = struct{}{}
	}
	if len(unknown) > 0 {
		logging.WarnWithContext(logger, "ignoring unknown whitelist codes", "policy_whitelist_unknown",
			logging.Strings("codes", unknown),
			logging.String(logging.FieldErrorHint, "use ISO 639-1 or ISO 639-2 codes in tagging.whitelist_language_tags"),
			logging.String(logging.FieldImpact, "unknown codes never match any track"),
		)
		if len(out) == 0 {
			out[language.Undetermined] = struct{}{}
		}
	}
	return out
}

// Allows reports whether code passes the whitelist. The undetermined code is
// always allowed.
func (w Whitelist) Allows(code string) bool {
	if len(w) == 0 {
		return true
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == language.Undetermined {
		return true
	}
	_, ok := w[code]
	return ok
}

// Codes returns the whitelisted codes in sorted order.
func (w Whitelist) Codes() []string {
	out := make([]string, 0, len(w))
	for code := range w {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Filter removes duplicates from languages and, when whitelist is non-empty,
// drops codes outside it. Dropped codes are logged at info level. Input order
// is preserved.
func Filter(logger *slog.Logger, languages []string, whitelist Whitelist) []string {
	out := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	var dropped []string
	for _, code := range languages {
		key := strings.ToLower(strings.TrimSpace(code))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if !whitelist.Allows(key) {
			dropped = append(dropped, key)
			continue
		}
		out = append(out, key)
	}
	if len(dropped) > 0 && logger != nil {
		logger.Info("languages dropped by whitelist",
			logging.Strings("dropped", dropped),
			logging.Strings("whitelist", whitelist.Codes()),
		)
	}
	return out
}
