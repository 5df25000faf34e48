package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"langtagger/internal/api"
	"langtagger/internal/state"
	"langtagger/internal/testsupport"
)

func TestScanCommandTagsLocalLibrary(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"heat.mkv": testsupport.ProbeOutput(
			testsupport.AudioStream(1, "eng"),
			testsupport.SubtitleStream(2, "fre"),
		),
	})
	testsupport.WriteFile(t, filepath.Join(env.cfg.Library.MoviesDir, "heat.mkv"), 1024)

	out, _, err := runCLI(t, []string{"scan", "--scope", "movies", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var run api.Run
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("decode run: %v\n%s", err, out)
	}
	if run.Status != string(state.RunCompleted) || run.Trigger != "manual" || run.Scope != "movies" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if len(run.Scopes) != 1 || run.Scopes[0].Processed != 1 {
		t.Fatalf("unexpected scopes: %+v", run.Scopes)
	}

	store := testsupport.MustOpenStore(t, env.cfg)
	tags, ok, err := store.Tags(context.Background(), "movies/heat.mkv")
	if err != nil || !ok {
		t.Fatalf("Tags: ok=%v err=%v", ok, err)
	}
	joined := strings.Join(tags, ",")
	requireContains(t, joined, "language_English")
	requireContains(t, joined, "subtitle_language_French")

	if calls := testsupport.FFmpegCalls(t, env.ffmpeg); len(calls) != 1 {
		t.Fatalf("expected one ffmpeg call, got %v", calls)
	}
}

func TestScanCommandRendersTable(t *testing.T) {
	env := setupCLITestEnv(t, map[string]string{
		"heat.mkv": testsupport.ProbeOutput(testsupport.AudioStream(1, "eng")),
	})
	testsupport.WriteFile(t, filepath.Join(env.cfg.Library.MoviesDir, "heat.mkv"), 1024)

	out, _, err := runCLI(t, []string{"scan", "--scope", "movies", "--local"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "PROCESSED")
	requireContains(t, out, "audio_tagged=1")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "movies")
	requireContains(t, out, "manual")
}

func TestScanCommandRejectsUnknownScope(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"scan", "--scope", "music"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown scope") {
		t.Fatalf("expected unknown scope error, got %v", err)
	}
}

func TestRemoveTagsRequiresConfirmation(t *testing.T) {
	env := setupCLITestEnv(t, nil)
	_, _, err := runCLI(t, []string{"remove-tags"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}

	out, _, err := runCLI(t, []string{"remove-tags", "--yes", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("remove-tags: %v", err)
	}
	var run api.Run
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if run.Scope != "remove-tags" || run.Status != string(state.RunCompleted) {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestFormatOutcomes(t *testing.T) {
	if got := formatOutcomes(nil); got != "-" {
		t.Fatalf("formatOutcomes(nil) = %q", got)
	}
	got := formatOutcomes(map[string]int{"failed": 2, "audio_tagged": 5})
	if got != "audio_tagged=5 failed=2" {
		t.Fatalf("formatOutcomes = %q", got)
	}
}
