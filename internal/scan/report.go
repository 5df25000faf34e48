package scan

import (
	"time"

	"langtagger/internal/state"
)

// ScopeReport summarizes one library section of a pass.
type ScopeReport struct {
	Scope     Scope
	Processed int
	Total     int
	// Skipped counts roots dropped before tagging: empty branches and
	// branches whose children could not be listed.
	Skipped  int
	Outcomes map[string]int
}

// Report describes a finished pass.
type Report struct {
	RunID       string
	Operation   string
	Scope       Scope
	FullRefresh bool
	Status      state.RunStatus
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Scopes      []ScopeReport
}

// Duration returns the wall-clock length of the pass.
func (r Report) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Processed sums processed roots across scopes.
func (r Report) Processed() int {
	total := 0
	for _, scope := range r.Scopes {
		total += scope.Processed
	}
	return total
}

func (r Report) record() state.RunRecord {
	scopes := make([]state.ScopeCounts, 0, len(r.Scopes))
	for _, s := range r.Scopes {
		outcomes := make(map[string]int, len(s.Outcomes)+1)
		for k, v := range s.Outcomes {
			outcomes[k] = v
		}
		if s.Skipped > 0 {
			outcomes["branches_skipped"] = s.Skipped
		}
		scopes = append(scopes, state.ScopeCounts{
			Scope:     string(s.Scope),
			Processed: s.Processed,
			Total:     s.Total,
			Outcomes:  outcomes,
		})
	}
	return state.RunRecord{
		ID:          r.RunID,
		Scope:       r.runScope(),
		FullRefresh: r.FullRefresh,
		Status:      r.Status,
		Error:       r.Error,
		Scopes:      scopes,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
	}
}

// runScope is the label stored in history: the scope for tagging passes,
// the operation name otherwise.
func (r Report) runScope() string {
	if r.Operation == operationScan {
		return string(r.Scope)
	}
	return r.Operation
}
