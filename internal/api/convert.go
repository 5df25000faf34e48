package api

import (
	"time"

	"langtagger/internal/deps"
	"langtagger/internal/scan"
	"langtagger/internal/state"
)

// FromRunRecord converts a stored run to its API representation.
func FromRunRecord(run state.RunRecord) Run {
	dto := Run{
		ID:          run.ID,
		Scope:       run.Scope,
		FullRefresh: run.FullRefresh,
		Trigger:     run.Trigger,
		Status:      string(run.Status),
		Error:       run.Error,
		StartedAt:   formatTime(run.StartedAt),
		FinishedAt:  formatTime(run.FinishedAt),
		DurationMS:  run.Duration().Milliseconds(),
	}
	for _, scope := range run.Scopes {
		dto.Scopes = append(dto.Scopes, ScopeCounts{
			Scope:     scope.Scope,
			Processed: scope.Processed,
			Total:     scope.Total,
			Outcomes:  copyCounts(scope.Outcomes),
		})
	}
	return dto
}

// FromRunRecords converts a slice of stored runs.
func FromRunRecords(runs []state.RunRecord) []Run {
	out := make([]Run, 0, len(runs))
	for _, run := range runs {
		out = append(out, FromRunRecord(run))
	}
	return out
}

// FromReport converts a finished pass report.
func FromReport(report scan.Report, trigger string) Run {
	scope := string(report.Scope)
	if report.Operation != "scan" {
		scope = report.Operation
	}
	dto := Run{
		ID:          report.RunID,
		Scope:       scope,
		FullRefresh: report.FullRefresh,
		Trigger:     trigger,
		Status:      string(report.Status),
		Error:       report.Error,
		StartedAt:   formatTime(report.StartedAt),
		FinishedAt:  formatTime(report.FinishedAt),
		DurationMS:  report.Duration().Milliseconds(),
	}
	for _, section := range report.Scopes {
		outcomes := copyCounts(section.Outcomes)
		if section.Skipped > 0 {
			if outcomes == nil {
				outcomes = map[string]int{}
			}
			outcomes["branches_skipped"] = section.Skipped
		}
		dto.Scopes = append(dto.Scopes, ScopeCounts{
			Scope:     string(section.Scope),
			Processed: section.Processed,
			Total:     section.Total,
			Outcomes:  outcomes,
		})
	}
	return dto
}

// FromCurrent converts the in-flight pass.
func FromCurrent(info scan.RunInfo) *CurrentRun {
	return &CurrentRun{
		ID:        info.ID,
		Operation: info.Operation,
		Scope:     string(info.Scope),
		StartedAt: formatTime(info.StartedAt),
	}
}

// FromDependencies converts dependency checks.
func FromDependencies(statuses []deps.Status) []DependencyStatus {
	out := make([]DependencyStatus, len(statuses))
	for i, dep := range statuses {
		out[i] = DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Optional:    dep.Optional,
			Available:   dep.Available,
			Detail:      dep.Detail,
		}
	}
	return out
}

// ParseTime reads a timestamp produced by this package.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(dateTimeFormat, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(dateTimeFormat)
}

func copyCounts(in map[string]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
