package daemon

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"

	"langtagger/internal/config"
	"langtagger/internal/logging"
	"langtagger/internal/scan"
	"langtagger/internal/services"
)

// scheduler fires the configured scan on a cron expression. A nil scheduler
// means no schedule is configured.
type scheduler struct {
	cron        *cron.Cron
	entry       cron.EntryID
	expression  string
	scope       scan.Scope
	fullRefresh bool
	logger      *slog.Logger
}

func newScheduler(cfg *config.Config, run func(scan.Scope, bool), logger *slog.Logger) (*scheduler, error) {
	expression := strings.TrimSpace(cfg.Scan.Schedule)
	if expression == "" {
		return nil, nil
	}
	scope, err := scan.ParseScope(cfg.Scan.ScheduleScope)
	if err != nil {
		return nil, err
	}
	logger = logging.NewComponentLogger(logger, "scheduler")
	cronLog := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	s := &scheduler{
		cron:        c,
		expression:  expression,
		scope:       scope,
		fullRefresh: cfg.Scan.ScheduleFullRefresh,
		logger:      logger,
	}
	s.entry, err = c.AddFunc(expression, func() {
		logger.Info("scheduled scan firing",
			logging.String(logging.FieldScope, string(s.scope)),
			logging.Bool("full_refresh", s.fullRefresh),
		)
		run(s.scope, s.fullRefresh)
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "daemon", "schedule",
			fmt.Sprintf("invalid scan.schedule %q", expression), err)
	}
	return s, nil
}

func (s *scheduler) start() {
	if s == nil {
		return
	}
	s.cron.Start()
	if info, ok := s.info(); ok {
		s.logger.Info("scan schedule armed",
			logging.String("expression", s.expression),
			logging.String("next", info.Next.Format("2006-01-02 15:04:05")),
		)
	}
}

// stop halts scheduling and waits for a running job to return.
func (s *scheduler) stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *scheduler) info() (ScheduleInfo, bool) {
	if s == nil {
		return ScheduleInfo{}, false
	}
	return ScheduleInfo{
		Expression:  s.expression,
		Scope:       s.scope,
		FullRefresh: s.fullRefresh,
		Next:        s.cron.Entry(s.entry).Next,
	}, true
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	args := append([]any{logging.Error(err)}, keysAndValues...)
	l.logger.Error(msg, args...)
}
