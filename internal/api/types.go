package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ScopeCounts summarizes one library section of a pass.
type ScopeCounts struct {
	Scope     string         `json:"scope"`
	Processed int            `json:"processed"`
	Total     int            `json:"total"`
	Outcomes  map[string]int `json:"outcomes,omitempty"`
}

// Run describes one tagging or maintenance pass.
type Run struct {
	ID          string        `json:"id"`
	Scope       string        `json:"scope"`
	FullRefresh bool          `json:"fullRefresh"`
	Trigger     string        `json:"trigger,omitempty"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	StartedAt   string        `json:"startedAt,omitempty"`
	FinishedAt  string        `json:"finishedAt,omitempty"`
	DurationMS  int64         `json:"durationMs"`
	Scopes      []ScopeCounts `json:"scopes,omitempty"`
}

// CurrentRun identifies the pass in progress.
type CurrentRun struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Scope     string `json:"scope,omitempty"`
	StartedAt string `json:"startedAt"`
}

// Schedule reports the cron configuration of the daemon.
type Schedule struct {
	Expression  string `json:"expression"`
	Scope       string `json:"scope"`
	FullRefresh bool   `json:"fullRefresh"`
	Next        string `json:"next,omitempty"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	Backend      string             `json:"backend"`
	DatabasePath string             `json:"databasePath"`
	LockFilePath string             `json:"lockFilePath"`
	Current      *CurrentRun        `json:"current,omitempty"`
	LastRun      *Run               `json:"lastRun,omitempty"`
	Schedule     *Schedule          `json:"schedule,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// RunListResponse wraps run history.
type RunListResponse struct {
	Runs []Run `json:"runs"`
}

// RunResponse wraps a single run.
type RunResponse struct {
	Run Run `json:"run"`
}

// AcceptedResponse is returned when a pass was started in the background.
type AcceptedResponse struct {
	Accepted  bool   `json:"accepted"`
	Operation string `json:"operation"`
	Scope     string `json:"scope,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
