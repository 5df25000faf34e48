package daemon_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"langtagger/internal/api"
	"langtagger/internal/config"
	"langtagger/internal/daemon"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/scan"
	"langtagger/internal/state"
	"langtagger/internal/testsupport"
)

type harness struct {
	cfg   *config.Config
	lib   *testsupport.FakeLibrary
	store *state.Store
	d     *daemon.Daemon
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFmpegOutputs(map[string]string{
			"heat.mkv": testsupport.ProbeOutput(testsupport.AudioStream(1, "eng")),
		}),
		testsupport.WithTagging(func(tagging *config.Tagging) { tagging.AddSubtitleTags = false }),
	)
	if mutate != nil {
		mutate(cfg)
	}
	store := testsupport.MustOpenStore(t, cfg)
	lib := testsupport.NewFakeLibrary()
	video := filepath.Join(testsupport.BaseDir(cfg), "media", "heat.mkv")
	testsupport.WriteFile(t, video, 64)
	lib.Add(
		library.Item{ID: "m1", Name: "Heat", Type: library.TypeMovie, Path: video},
		library.Item{ID: "p1", Type: library.TypeOther, RawType: "Playlist"},
	)

	orch := scan.New(cfg, lib, store, logging.NewNop())
	d, err := daemon.New(cfg, orch, store, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(d.Stop)
	return &harness{cfg: cfg, lib: lib, store: store, d: d}
}

func TestDaemonStartStop(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	if err := h.d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if status := h.d.Status(ctx); !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if h.d.APIAddress() == "" {
		t.Fatal("expected API address")
	}

	// Second start should fail
	if err := h.d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	h.d.Stop()
	if status := h.d.Status(ctx); status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	orch := scan.New(h.cfg, h.lib, h.store, logging.NewNop())
	other, err := daemon.New(h.cfg, orch, h.store, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	if err := other.Start(context.Background()); err == nil {
		other.Stop()
		t.Fatal("expected lock contention")
	}
}

func TestStartMarksInterruptedRuns(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	if err := h.store.BeginRun(ctx, state.RunRecord{
		ID:        "stale",
		Scope:     "movies",
		Status:    state.RunRunning,
		StartedAt: time.Now().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := h.d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	run, err := h.store.Run(ctx, "stale")
	if err != nil || run == nil {
		t.Fatalf("Run: %v %v", run, err)
	}
	if run.Status != state.RunFailed || run.Error != "interrupted" {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestAPIScanWaitsForPass(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	if err := h.d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	client, err := api.NewClient(h.d.APIAddress(), "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	run, err := client.Scan(ctx, "movies", false)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if run.Status != string(state.RunCompleted) || run.Scope != "movies" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if got := h.lib.Tags("m1"); !reflect.DeepEqual(got, []string{"language_English"}) {
		t.Fatalf("tags = %v", got)
	}

	runs, err := client.Runs(ctx, 5)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Trigger != daemon.TriggerAPI {
		t.Fatalf("unexpected history: %+v", runs)
	}

	status, err := client.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Running || status.LastRun == nil || status.LastRun.ID != run.ID {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestAPIRequiresToken(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.API.Token = "secret" })
	ctx := context.Background()
	if err := h.d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	anonymous, _ := api.NewClient(h.d.APIAddress(), "")
	_, err := anonymous.Status(ctx)
	var statusErr *api.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("error = %v, want 401", err)
	}

	authorized, _ := api.NewClient(h.d.APIAddress(), "secret")
	if _, err := authorized.Status(ctx); err != nil {
		t.Fatalf("authorized Status: %v", err)
	}
}

func TestLaunchRunsInBackground(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := h.d.Launch(daemon.Request{Operation: daemon.OpNonMedia, Trigger: daemon.TriggerManual}); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if tags := h.lib.Tags("p1"); len(tags) == 1 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("non-media tag never applied: %v", h.lib.Tags("p1"))
}

func TestScheduleReported(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.Scan.Schedule = "@every 1h"
		cfg.Scan.ScheduleScope = "movies"
	})
	if err := h.d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	status := h.d.Status(context.Background())
	if status.Schedule == nil {
		t.Fatal("expected schedule in status")
	}
	if status.Schedule.Scope != scan.ScopeMovies || !status.Schedule.Next.After(time.Now()) {
		t.Fatalf("unexpected schedule: %+v", status.Schedule)
	}
}

func TestInvalidScheduleFailsStart(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) { cfg.Scan.Schedule = "not a schedule" })
	if err := h.d.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail")
	}
	if h.d.Status(context.Background()).Running {
		t.Fatal("daemon reports running after failed start")
	}
}

func TestExecuteNotifiesPassResult(t *testing.T) {
	var (
		mu     sync.Mutex
		titles []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		titles = append(titles, r.Header.Get("Title"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	h := newHarness(t, func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = server.URL
	})
	report, err := h.d.Execute(context.Background(), daemon.Request{
		Operation: daemon.OpScan,
		Scope:     scan.ScopeMovies,
		Trigger:   daemon.TriggerAPI,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if report.Status != state.RunCompleted {
		t.Fatalf("unexpected status %q", report.Status)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(titles) != 1 || !strings.Contains(titles[0], "Pass Complete") {
		t.Fatalf("expected one completion notification, got %v", titles)
	}
}
