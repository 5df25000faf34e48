package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"langtagger/internal/api"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Daemon", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Daemon:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Daemon", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	deps := []api.DependencyStatus{
		{Name: "FFmpeg", Available: false},
		{Name: "FFmpeg (custom)", Available: true, Command: "/opt/ffmpeg"},
		{Name: "mkvmerge", Available: false, Optional: true, Detail: "not configured"},
	}
	lines := dependencyLines(deps, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[ERROR]") || !strings.Contains(lines[0], "Summary") {
		t.Fatalf("expected summary line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[ERROR] not available") {
		t.Fatalf("expected error detail in second line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[OK] Ready (command: /opt/ffmpeg)") {
		t.Fatalf("expected ready detail in third line, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "[WARN] not configured") {
		t.Fatalf("expected warn detail in fourth line, got %q", lines[3])
	}
}

func TestStatusLinesIdle(t *testing.T) {
	status := api.DaemonStatus{
		Backend:      "local",
		DatabasePath: "/tmp/langtagger.db",
		LastRun:      &api.Run{Scope: "movies", Status: "failed", Error: "boom", StartedAt: "2026-01-02T03:04:05.000Z"},
	}
	out := strings.Join(statusLines(status, false), "\n")
	for _, want := range []string{"Not running", "Idle", "[ERROR] movies failed", "boom", "No dependencies checked"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"languages", "de,fra"}, "")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "German")
	requireContains(t, out, "French")

	out, _, err = runCLI(t, []string{"languages", "japanese"}, "")
	if err != nil {
		t.Fatalf("languages by name: %v", err)
	}
	requireContains(t, out, "jpn")

	if _, _, err := runCLI(t, []string{"languages", "xx"}, ""); err == nil {
		t.Fatal("expected unknown code error")
	}
}
