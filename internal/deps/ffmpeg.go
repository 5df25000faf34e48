package deps

import (
	"strings"

	"langtagger/internal/services"
)

// FFmpegRequirement describes the inspection binary for status output.
func FFmpegRequirement(binary string) Requirement {
	return Requirement{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Reads audio and subtitle stream languages",
	}
}

// ResolveFFmpeg turns the configured ffmpeg name or path into an absolute
// executable path. A bare name is looked up on PATH; a path must point at an
// executable file. Failure is a configuration error so a scan can abort
// before touching any item.
func ResolveFFmpeg(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	resolved, err := resolveBinary(binary)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "deps", "resolve ffmpeg",
			"set ffmpeg.binary or LANGTAGGER_FFMPEG", err)
	}
	return resolved, nil
}
