package state_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"langtagger/internal/state"
)

func openStore(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.OpenPath(filepath.Join(t.TempDir(), "state", "langtagger.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTagsRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, ok, err := store.Tags(ctx, "Movies/Heat"); err != nil || ok {
		t.Fatalf("expected missing tags, got ok=%v err=%v", ok, err)
	}
	want := []string{"language_English", "subtitle_language_French"}
	if err := store.SetTags(ctx, "Movies/Heat", want); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	got, ok, err := store.Tags(ctx, "Movies/Heat")
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("Tags = %v, %v, %v", got, ok, err)
	}

	if err := store.SetTags(ctx, "Movies/Heat", []string{"language_German"}); err != nil {
		t.Fatalf("SetTags overwrite: %v", err)
	}
	all, err := store.AllTags(ctx)
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	if !reflect.DeepEqual(all["Movies/Heat"], []string{"language_German"}) {
		t.Fatalf("unexpected all tags: %v", all)
	}

	if err := store.SetTags(ctx, "Movies/Heat", nil); err != nil {
		t.Fatalf("SetTags clear: %v", err)
	}
	if _, ok, _ := store.Tags(ctx, "Movies/Heat"); ok {
		t.Fatalf("expected tags cleared")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langtagger.db")
	store, err := state.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if err := store.SetTags(context.Background(), "a", []string{"language_und"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	_ = store.Close()

	reopened, err := state.OpenPath(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if tags, ok, _ := reopened.Tags(context.Background(), "a"); !ok || len(tags) != 1 {
		t.Fatalf("expected persisted tags, got %v", tags)
	}
	if reopened.Path() != path {
		t.Fatalf("Path() = %q, want %q", reopened.Path(), path)
	}
}

func TestRunHistory(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i, id := range []string{"run-1", "run-2", "run-3"} {
		run := state.RunRecord{ID: id, Scope: "movies", Trigger: "cli", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.BeginRun(ctx, run); err != nil {
			t.Fatalf("BeginRun(%s): %v", id, err)
		}
	}

	finished := state.RunRecord{
		ID:         "run-2",
		Status:     state.RunCompleted,
		FinishedAt: base.Add(2 * time.Minute),
		Scopes: []state.ScopeCounts{{
			Scope: "movies", Processed: 3, Total: 4,
			Outcomes: map[string]int{"tagged": 2, "failed": 1},
		}},
	}
	if err := store.FinishRun(ctx, finished); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	run, err := store.Run(ctx, "run-2")
	if err != nil || run == nil {
		t.Fatalf("Run: %v %v", run, err)
	}
	if run.Status != state.RunCompleted || len(run.Scopes) != 1 || run.Scopes[0].Outcomes["tagged"] != 2 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Duration() != time.Minute {
		t.Fatalf("Duration = %s", run.Duration())
	}

	runs, err := store.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Fatalf("unexpected ordering: %+v", runs)
	}

	marked, err := store.MarkInterruptedRuns(ctx)
	if err != nil || marked != 2 {
		t.Fatalf("MarkInterruptedRuns = %d, %v", marked, err)
	}
	if run, _ := store.Run(ctx, "run-1"); run.Status != state.RunFailed || run.Error != "interrupted" {
		t.Fatalf("expected interrupted run, got %+v", run)
	}

	pruned, err := store.PruneRuns(ctx, 1)
	if err != nil || pruned != 2 {
		t.Fatalf("PruneRuns = %d, %v", pruned, err)
	}
	if missing, _ := store.Run(ctx, "run-1"); missing != nil {
		t.Fatalf("expected run-1 pruned")
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := openStore(t)
	err := store.FinishRun(context.Background(), state.RunRecord{ID: "nope", Status: state.RunFailed})
	if err == nil {
		t.Fatalf("expected error for unknown run")
	}
	if errors.Is(err, state.ErrSchemaMismatch) {
		t.Fatalf("unexpected error class: %v", err)
	}
}
