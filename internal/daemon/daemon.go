package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"langtagger/internal/config"
	"langtagger/internal/deps"
	"langtagger/internal/logging"
	"langtagger/internal/notifications"
	"langtagger/internal/scan"
	"langtagger/internal/services"
	"langtagger/internal/state"
)

const notifyTimeout = 15 * time.Second

// Triggers recorded with each run.
const (
	TriggerManual   = "manual"
	TriggerAPI      = "api"
	TriggerSchedule = "schedule"
)

// Operation names a pass the daemon can start.
type Operation string

const (
	OpScan           Operation = "scan"
	OpRemoveTags     Operation = "remove-tags"
	OpNonMedia       Operation = "non-media"
	OpRemoveNonMedia Operation = "remove-non-media"
)

// Request describes one pass to run.
type Request struct {
	Operation   Operation
	Scope       scan.Scope
	FullRefresh bool
	Trigger     string
}

// History is the run store the daemon reads and repairs.
type History interface {
	Runs(ctx context.Context, limit int) ([]state.RunRecord, error)
	Run(ctx context.Context, id string) (*state.RunRecord, error)
	MarkInterruptedRuns(ctx context.Context) (int64, error)
}

// Daemon owns the scheduler and API server and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	orch    *scan.Orchestrator
	history History
	notify  notifications.Service

	lockPath string
	lock     *flock.Flock

	scheduler *scheduler
	api       *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	passes  sync.WaitGroup
}

// ScheduleInfo describes the configured cron trigger.
type ScheduleInfo struct {
	Expression  string
	Scope       scan.Scope
	FullRefresh bool
	Next        time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Backend      string
	DatabasePath string
	LockFilePath string
	Current      *scan.RunInfo
	LastRun      *state.RunRecord
	Schedule     *ScheduleInfo
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, orch *scan.Orchestrator, history History, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || orch == nil || history == nil {
		return nil, errors.New("daemon requires config, orchestrator, and run history")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := filepath.Join(cfg.Paths.StateDir, "langtaggerd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		orch:     orch,
		history:  history,
		notify:   notifications.NewService(cfg),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, repairs run history, and launches the
// scheduler and API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "daemon", "start", "prepare directories", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another langtagger daemon instance is already running")
	}

	if n, err := d.history.MarkInterruptedRuns(ctx); err != nil {
		logging.WarnWithContext(d.logger, "failed to repair run history", "run_history_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "interrupted runs still show as running"),
		)
	} else if n > 0 {
		d.logger.Info("interrupted runs marked failed", logging.Int64("count", n))
	}
	logging.CleanupOldLogs(d.logger, d.cfg.Logging.RetentionDays, d.cfg.Paths.LogDir, "langtagger*.log", d.cfg.LogPath())

	d.ctx, d.cancel = context.WithCancel(ctx)
	runCtx := d.ctx

	sched, err := newScheduler(d.cfg, func(scope scan.Scope, fullRefresh bool) {
		d.runScheduled(runCtx, scope, fullRefresh)
	}, d.logger)
	if err != nil {
		d.abortStart()
		return err
	}
	api, err := newAPIServer(d.cfg, d, d.logger)
	if err != nil {
		d.abortStart()
		return err
	}
	if err := api.start(d.ctx); err != nil {
		d.abortStart()
		return err
	}
	d.scheduler = sched
	d.api = api
	d.scheduler.start()

	d.running.Store(true)
	d.logger.Info("langtagger daemon started",
		logging.String("lock", d.lockPath),
		logging.String("api", d.APIAddress()),
	)
	return nil
}

func (d *Daemon) abortStart() {
	d.cancel()
	d.ctx = nil
	d.cancel = nil
	_ = d.lock.Unlock()
}

// Stop cancels in-flight passes, waits for them, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.scheduler.stop()
	d.api.stop()
	d.passes.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("langtagger daemon stopped")
}

// Wait blocks until ctx is done, then stops the daemon.
func (d *Daemon) Wait(ctx context.Context) {
	<-ctx.Done()
	d.Stop()
}

// APIAddress returns the address the API server listens on, or "" when disabled.
func (d *Daemon) APIAddress() string {
	return d.api.address()
}

// Execute runs req synchronously under ctx and reports the result to the
// configured notifier.
func (d *Daemon) Execute(ctx context.Context, req Request) (scan.Report, error) {
	if req.Trigger == "" {
		req.Trigger = TriggerManual
	}
	ctx = services.WithTrigger(ctx, req.Trigger)
	report, err := d.dispatch(ctx, req)
	d.notifyResult(req, report, err)
	return report, err
}

func (d *Daemon) dispatch(ctx context.Context, req Request) (scan.Report, error) {
	switch req.Operation {
	case OpScan, "":
		return d.orch.Scan(ctx, req.FullRefresh, req.Scope)
	case OpRemoveTags:
		return d.orch.RemoveAll(ctx)
	case OpNonMedia:
		return d.orch.TagNonMedia(ctx)
	case OpRemoveNonMedia:
		return d.orch.RemoveNonMedia(ctx)
	default:
		return scan.Report{}, services.Wrap(services.ErrConfiguration, "daemon", "execute",
			fmt.Sprintf("unknown operation %q", req.Operation), nil)
	}
}

// notifyResult sends finished passes as pass results and passes that never
// started as errors. Lock contention is not reported.
func (d *Daemon) notifyResult(req Request, report scan.Report, err error) {
	if errors.Is(err, services.ErrScanInProgress) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	var notifyErr error
	switch {
	case report.RunID != "":
		notifyErr = d.notify.NotifyPassFinished(ctx, report, req.Trigger)
	case err != nil && !errors.Is(err, context.Canceled):
		notifyErr = d.notify.NotifyError(ctx, err, fmt.Sprintf("%s (%s)", req.Operation, req.Trigger))
	}
	if notifyErr != nil {
		logging.WarnWithContext(d.logger, "notification failed", "notification_failed",
			logging.Error(notifyErr),
			logging.String(logging.FieldImpact, "pass result was not pushed to ntfy"),
		)
	}
}

// Launch starts req in the background under the daemon lifetime. It fails
// fast when a pass is already running in this process.
func (d *Daemon) Launch(req Request) error {
	if !d.running.Load() || d.ctx == nil {
		return errors.New("daemon not running")
	}
	if current, busy := d.orch.Current(); busy {
		return services.Wrap(services.ErrScanInProgress, "daemon", "launch",
			fmt.Sprintf("%s %s already running", current.Operation, current.ID), nil)
	}
	ctx := d.ctx
	d.passes.Add(1)
	go func() {
		defer d.passes.Done()
		d.logResult(req, d.execute(ctx, req))
	}()
	return nil
}

func (d *Daemon) execute(ctx context.Context, req Request) error {
	_, err := d.Execute(ctx, req)
	return err
}

func (d *Daemon) runScheduled(ctx context.Context, scope scan.Scope, fullRefresh bool) {
	if ctx.Err() != nil {
		return
	}
	d.passes.Add(1)
	defer d.passes.Done()
	req := Request{Operation: OpScan, Scope: scope, FullRefresh: fullRefresh, Trigger: TriggerSchedule}
	d.logResult(req, d.execute(ctx, req))
}

func (d *Daemon) logResult(req Request, err error) {
	switch {
	case err == nil:
	case errors.Is(err, services.ErrScanInProgress):
		logging.WarnWithContext(d.logger, "pass skipped; another pass is running", "pass_skipped",
			logging.String("operation", string(req.Operation)),
			logging.String("trigger", req.Trigger),
		)
	case errors.Is(err, context.Canceled):
		d.logger.Info("pass cancelled", logging.String("operation", string(req.Operation)))
	default:
		logging.ErrorWithContext(d.logger, "pass failed", "pass_failed",
			logging.String("operation", string(req.Operation)),
			logging.String("trigger", req.Trigger),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "see earlier log entries for the failing item or dependency"),
		)
	}
}

// Runs returns the newest limit runs.
func (d *Daemon) Runs(ctx context.Context, limit int) ([]state.RunRecord, error) {
	return d.history.Runs(ctx, limit)
}

// Run returns one run, or nil when id is unknown.
func (d *Daemon) Run(ctx context.Context, id string) (*state.RunRecord, error) {
	return d.history.Run(ctx, id)
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Backend:      d.cfg.Library.Backend,
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
		Dependencies: deps.CheckBinaries([]deps.Requirement{deps.FFmpegRequirement(d.cfg.FFmpegBinary())}),
	}
	if current, ok := d.orch.Current(); ok {
		status.Current = &current
	}
	if runs, err := d.history.Runs(ctx, 1); err == nil && len(runs) > 0 {
		status.LastRun = &runs[0]
	}
	if info, ok := d.scheduler.info(); ok {
		status.Schedule = &info
	}
	return status
}
