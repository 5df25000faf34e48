package scan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"langtagger/internal/aggregate"
	"langtagger/internal/config"
	"langtagger/internal/deps"
	"langtagger/internal/extract"
	"langtagger/internal/library"
	"langtagger/internal/logging"
	"langtagger/internal/media/ffmpeg"
	"langtagger/internal/policy"
	"langtagger/internal/services"
	"langtagger/internal/state"
	"langtagger/internal/tags"
)

const (
	operationScan           = "scan"
	operationRemoveTags     = "remove-tags"
	operationNonMedia       = "non-media"
	operationRemoveNonMedia = "remove-non-media"
)

// RunStore persists pass history. *state.Store implements it.
type RunStore interface {
	BeginRun(ctx context.Context, run state.RunRecord) error
	FinishRun(ctx context.Context, run state.RunRecord) error
	PruneRuns(ctx context.Context, keep int) (int64, error)
}

// RunInfo identifies the pass currently holding the lock in this process.
type RunInfo struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Scope     Scope     `json:"scope,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Orchestrator runs passes against one library. It is safe for concurrent
// use; concurrent passes are rejected with services.ErrScanInProgress.
type Orchestrator struct {
	cfg    *config.Config
	lib    library.Library
	runs   RunStore
	logger *slog.Logger

	mu      sync.Mutex
	current *RunInfo
}

// New builds an orchestrator. runs may be nil to skip history.
func New(cfg *config.Config, lib library.Library, runs RunStore, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		lib:    lib,
		runs:   runs,
		logger: logging.NewComponentLogger(logger, "scan"),
	}
}

// Current returns the pass running in this process, if any.
func (o *Orchestrator) Current() (RunInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return RunInfo{}, false
	}
	return *o.current, true
}

// Scan tags the library sections selected by scope. fullRefresh is ORed
// with tagging.always_force_full_refresh. ffmpeg must be resolvable before
// anything is touched.
func (o *Orchestrator) Scan(ctx context.Context, fullRefresh bool, scope Scope) (Report, error) {
	scope, err := ParseScope(string(scope))
	if err != nil {
		return Report{}, err
	}
	binary, err := deps.ResolveFFmpeg(o.cfg.FFmpegBinary())
	if err != nil {
		return Report{}, err
	}
	p := policy.FromConfig(o.cfg, fullRefresh, o.logger)
	mode := aggregate.ModeTracks
	if scope == ScopeExternalSubtitles {
		mode = aggregate.ModeSidecars
	}

	return o.run(ctx, operationScan, scope, p.FullRefresh, func(ctx context.Context, report *Report) error {
		runner := ffmpeg.NewRunner(binary, p.Workers)
		extractor := extract.New(runner, extract.Options{DetectSidecarContent: p.DetectSidecarContent}, o.logger)
		store := tags.NewStore(o.lib, p.Prefixes())
		memo := aggregate.NewMemo()

		for _, part := range scope.parts() {
			if err := ctx.Err(); err != nil {
				return err
			}
			engine := aggregate.NewEngine(extractor, store, p, mode, o.logger).WithMemo(memo)
			section, err := o.scanSection(services.WithScope(ctx, string(part)), engine, part, p)
			report.Scopes = append(report.Scopes, section)
			if err != nil {
				return err
			}
		}
		o.logger.Debug("ffmpeg invocations",
			logging.Int64("count", runner.Invocations()),
			logging.Int("distinct_items", memo.Len()),
		)
		return nil
	})
}

func (o *Orchestrator) scanSection(ctx context.Context, engine *aggregate.Engine, part Scope, p policy.Policy) (ScopeReport, error) {
	logger := logging.WithContext(ctx, o.logger)
	section := ScopeReport{Scope: part}

	jobs, err := o.roots(ctx, part)
	if err != nil {
		if services.AbortsPass(err) {
			return section, err
		}
		logging.ErrorWithContext(logger, "failed to list library section", "library_list_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check library connectivity"),
		)
		return section, nil
	}
	section.Total = len(jobs)

	var processed, skipped atomic.Int64
	runJob := func(ctx context.Context, job rootJob) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		root, err := job.build(ctx)
		if err != nil {
			return err
		}
		if root == nil {
			skipped.Add(1)
			return nil
		}
		logger.Debug("hierarchy built",
			logging.String("root", root.Item.Label()),
			logging.Int("nodes", root.Count()),
		)
		if _, err := engine.Tag(ctx, root); err != nil {
			return err
		}
		processed.Add(1)
		return nil
	}

	if p.Synchronous || p.Workers <= 1 {
		for _, job := range jobs {
			if err = runJob(ctx, job); err != nil {
				break
			}
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(p.Workers)
		for _, job := range jobs {
			if groupCtx.Err() != nil {
				break
			}
			group.Go(func() error { return runJob(groupCtx, job) })
		}
		err = group.Wait()
		if err == nil {
			err = ctx.Err()
		}
	}

	section.Processed = int(processed.Load())
	section.Skipped = int(skipped.Load())
	section.Outcomes = engine.Tally().Flatten()
	logger.Info("scope finished",
		logging.Int("processed", section.Processed),
		logging.Int("total", section.Total),
		logging.Int("skipped", section.Skipped),
		logging.Any("outcomes", section.Outcomes),
	)
	return section, err
}

// run wraps one pass: lock, run record, status bookkeeping.
func (o *Orchestrator) run(ctx context.Context, operation string, scope Scope, fullRefresh bool, body func(context.Context, *Report) error) (Report, error) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "scan", "prepare", "state directory", err)
	}
	lock, err := acquireLock(o.cfg.LockPath())
	if err != nil {
		return Report{}, err
	}
	defer func() { _ = lock.Unlock() }()

	report := Report{
		RunID:       uuid.NewString(),
		Operation:   operation,
		Scope:       scope,
		FullRefresh: fullRefresh,
		Status:      state.RunRunning,
		StartedAt:   time.Now(),
	}
	ctx = services.WithScanID(ctx, report.RunID)
	logger := logging.WithContext(ctx, o.logger)

	o.setCurrent(&RunInfo{ID: report.RunID, Operation: operation, Scope: scope, StartedAt: report.StartedAt})
	defer o.setCurrent(nil)

	persistCtx := context.WithoutCancel(ctx)
	if o.runs != nil {
		record := report.record()
		record.Trigger, _ = services.TriggerFromContext(ctx)
		if err := o.runs.BeginRun(persistCtx, record); err != nil {
			logging.WarnWithContext(logger, "failed to record run start", "run_history_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "run missing from history"),
			)
		}
	}
	logger.Info("pass started",
		logging.String("operation", operation),
		logging.String(logging.FieldScope, string(scope)),
		logging.Bool("full_refresh", fullRefresh),
	)

	err = body(ctx, &report)
	report.FinishedAt = time.Now()
	switch {
	case err == nil:
		report.Status = state.RunCompleted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		report.Status = state.RunCancelled
		report.Error = err.Error()
	default:
		report.Status = state.RunFailed
		report.Error = err.Error()
	}

	if o.runs != nil {
		if ferr := o.runs.FinishRun(persistCtx, report.record()); ferr != nil {
			logging.WarnWithContext(logger, "failed to record run result", "run_history_failed",
				logging.Error(ferr),
				logging.String(logging.FieldImpact, "run shows as running in history"),
			)
		}
		if _, perr := o.runs.PruneRuns(persistCtx, o.cfg.Scan.HistoryLimit); perr != nil {
			logger.Debug("run history prune failed", logging.Error(perr))
		}
	}

	attrs := []logging.Attr{
		logging.String("operation", operation),
		logging.String("status", string(report.Status)),
		logging.Int("processed", report.Processed()),
		logging.Duration("duration", report.Duration()),
	}
	if report.Status == state.RunCompleted {
		logger.Info("pass finished", logging.Args(attrs...)...)
	} else {
		logging.WarnWithContext(logger, "pass ended early", "pass_incomplete", append(attrs,
			logging.Error(err),
			logging.String(logging.FieldImpact, "finished items keep their new tags; the rest are unchanged"),
		)...)
	}
	return report, err
}

func (o *Orchestrator) setCurrent(info *RunInfo) {
	o.mu.Lock()
	o.current = info
	o.mu.Unlock()
}
