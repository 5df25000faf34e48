package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"langtagger/internal/language"
)

var (
	audioPattern    = regexp.MustCompile(`\((\w{3})\): Audio`)
	subtitlePattern = regexp.MustCompile(`\((\w{3})\): Subtitle`)
	sidecarPattern  = regexp.MustCompile(`\.(\w{2,3})\.`)
)

// SubtitleExtensions lists the sidecar file extensions recognized during
// discovery, lower-case with the leading dot.
var SubtitleExtensions = []string{".srt", ".ass", ".ssa", ".vtt", ".sub", ".idx", ".sup", ".smi"}

// IsSubtitleFile reports whether name has a recognized sidecar extension.
func IsSubtitleFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range SubtitleExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// Streams extracts audio and embedded subtitle codes from one pass over the
// diagnostic text.
func Streams(output string) (audio, subtitles []string) {
	return matchCodes(audioPattern, output), matchCodes(subtitlePattern, output)
}

func matchCodes(pattern *regexp.Regexp, output string) []string {
	matches := pattern.FindAllStringSubmatch(output, -1)
	codes := make([]string, 0, len(matches))
	for _, match := range matches {
		codes = append(codes, match[1])
	}
	return dedupeCodes(codes)
}

// SidecarCode returns the canonical 3-letter code embedded in a sidecar file
// name. Only the first dot-delimited 2 or 3 letter token the registry
// recognizes counts.
func SidecarCode(name string) (string, bool) {
	base := filepath.Base(name)
	// Overlapping matches are needed for "Movie.en.de.srt", so scan manually
	// from each dot rather than relying on FindAll.
	for offset := 0; offset < len(base); {
		loc := sidecarPattern.FindStringSubmatchIndex(base[offset:])
		if loc == nil {
			break
		}
		token := base[offset+loc[2] : offset+loc[3]]
		if canonical := language.Canonical3(token); canonical != "" {
			return canonical, true
		}
		offset += loc[3]
	}
	return "", false
}

// SidecarCodes maps sidecar file names to their deduplicated codes.
func SidecarCodes(names []string) []string {
	codes := make([]string, 0, len(names))
	for _, name := range names {
		if code, ok := SidecarCode(name); ok {
			codes = append(codes, code)
		}
	}
	return dedupeCodes(codes)
}

// dedupeCodes lower-cases codes, drops anything that is not exactly three
// ASCII letters, and removes duplicates while preserving first-seen order.
func dedupeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if !isThreeLetters(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

func isThreeLetters(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}
