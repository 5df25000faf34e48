package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RunStatus is the lifecycle state of a scan run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunCancelled RunStatus = "cancelled"
	RunFailed    RunStatus = "failed"
)

// ScopeCounts summarizes one scope of a run.
type ScopeCounts struct {
	Scope     string         `json:"scope"`
	Processed int            `json:"processed"`
	Total     int            `json:"total"`
	Outcomes  map[string]int `json:"outcomes,omitempty"`
}

// RunRecord is one persisted tagging pass.
type RunRecord struct {
	ID          string
	Scope       string
	FullRefresh bool
	Trigger     string
	Status      RunStatus
	Error       string
	Scopes      []ScopeCounts
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns the elapsed run time, measured to now for running runs.
func (r RunRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	end := r.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.StartedAt)
}

const runColumns = "id, scope, full_refresh, run_trigger, status, error_message, scopes_json, started_at, finished_at"

// BeginRun records a new running pass.
func (s *Store) BeginRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO scan_runs (id, scope, full_refresh, run_trigger, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Scope, boolToInt(run.FullRefresh), nullableString(run.Trigger), RunRunning, formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final status and counts of a run.
func (s *Store) FinishRun(ctx context.Context, run RunRecord) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	scopes, err := json.Marshal(run.Scopes)
	if err != nil {
		return fmt.Errorf("encode run scopes: %w", err)
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE scan_runs SET status = ?, error_message = ?, scopes_json = ?, finished_at = ? WHERE id = ?`,
		run.Status, nullableString(run.Error), string(scopes), formatTime(run.FinishedAt), run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// Run returns one run by ID.
func (s *Store) Run(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM scan_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

// Runs returns up to limit runs, newest first. A non-positive limit returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM scan_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// PruneRuns keeps the newest keep runs and deletes the rest.
func (s *Store) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM scan_runs WHERE id NOT IN (SELECT id FROM scan_runs ORDER BY started_at DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

// MarkInterruptedRuns fails runs still marked running, which happens when a
// process exits mid-pass.
func (s *Store) MarkInterruptedRuns(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`UPDATE scan_runs SET status = ?, error_message = ?, finished_at = ? WHERE status = ?`,
		RunFailed, "interrupted", formatTime(time.Now()), RunRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("mark interrupted runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*RunRecord, error) {
	var (
		run         RunRecord
		fullRefresh int
		trigger     sql.NullString
		status      string
		errorMsg    sql.NullString
		scopesRaw   sql.NullString
		startedRaw  sql.NullString
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&run.ID, &run.Scope, &fullRefresh, &trigger, &status, &errorMsg, &scopesRaw, &startedRaw, &finishedRaw); err != nil {
		return nil, err
	}
	run.FullRefresh = fullRefresh != 0
	run.Trigger = trigger.String
	run.Status = RunStatus(status)
	run.Error = errorMsg.String
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	if scopesRaw.Valid && scopesRaw.String != "" && scopesRaw.String != "null" {
		if err := json.Unmarshal([]byte(scopesRaw.String), &run.Scopes); err != nil {
			return nil, fmt.Errorf("decode run scopes: %w", err)
		}
	}
	return &run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
