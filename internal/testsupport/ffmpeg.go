package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// AudioStream renders an ffmpeg stream descriptor line for an audio track.
func AudioStream(index int, code string) string {
	return fmt.Sprintf("  Stream #0:%d(%s): Audio: aac (LC), 48000 Hz, stereo, fltp", index, code)
}

// SubtitleStream renders an ffmpeg stream descriptor line for a subtitle track.
func SubtitleStream(index int, code string) string {
	return fmt.Sprintf("  Stream #0:%d(%s): Subtitle: subrip", index, code)
}

// ProbeOutput renders a plausible ffmpeg diagnostic block around streams.
func ProbeOutput(streams ...string) string {
	var b strings.Builder
	b.WriteString("Input #0, matroska,webm, from 'input.mkv':\n")
	b.WriteString("  Duration: 01:42:17.03, start: 0.000000, bitrate: 4211 kb/s\n")
	b.WriteString("  Stream #0:0: Video: h264 (High), yuv420p, 1920x1080\n")
	for _, stream := range streams {
		b.WriteString(stream)
		b.WriteString("\n")
	}
	b.WriteString("At least one output file must be specified\n")
	return b.String()
}

// StubFFmpeg writes a shell script that mimics `ffmpeg -i <path> -hide_banner`.
// outputs maps a file base name to the diagnostic text printed on stderr;
// unknown files print nothing. Every invocation appends the input path to
// <dir>/ffmpeg.calls. The script exits 1 like the real tool does without an
// output file.
func StubFFmpeg(t testing.TB, dir string, outputs map[string]string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "echo \"$2\" >> %q\n", filepath.Join(dir, "ffmpeg.calls"))
	script.WriteString("case \"$(basename \"$2\")\" in\n")
	for i, name := range names {
		body := filepath.Join(dir, fmt.Sprintf("probe-%d.txt", i))
		if err := os.WriteFile(body, []byte(outputs[name]), 0o644); err != nil {
			t.Fatalf("write stub output: %v", err)
		}
		fmt.Fprintf(&script, "  %s) cat %q >&2 ;;\n", shellQuote(name), body)
	}
	script.WriteString("esac\nexit 1\n")

	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}

// FFmpegCalls returns the input paths the stub at binary was invoked with.
func FFmpegCalls(t testing.TB, binary string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(binary), "ffmpeg.calls"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read ffmpeg calls: %v", err)
	}
	var calls []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			calls = append(calls, line)
		}
	}
	return calls
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
