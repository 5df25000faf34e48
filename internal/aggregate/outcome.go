package aggregate

import (
	"fmt"
	"sync"

	"langtagger/internal/tags"
)

// Outcome is the result of processing one item for one tag kind.
type Outcome int

const (
	// Skipped means existing tags were reused without inspection.
	Skipped Outcome = iota
	// Tagged means real languages were written.
	Tagged
	// Fallback means the undetermined tag was written.
	Fallback
	// Untagged means no languages were found and the fallback is disabled.
	Untagged
	// Failed means the item could not be inspected or persisted.
	Failed
)

var outcomeNames = [...]string{"skipped", "tagged", "fallback", "untagged", "failed"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Tally counts outcomes per kind. It is safe for concurrent use.
type Tally struct {
	mu     sync.Mutex
	counts map[tags.Kind]map[Outcome]int
	leaves int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[tags.Kind]map[Outcome]int)}
}

func (t *Tally) record(kind tags.Kind, outcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	byOutcome := t.counts[kind]
	if byOutcome == nil {
		byOutcome = make(map[Outcome]int)
		t.counts[kind] = byOutcome
	}
	byOutcome[outcome]++
}

func (t *Tally) leafDone() {
	t.mu.Lock()
	t.leaves++
	t.mu.Unlock()
}

// Count returns the number of items of kind that ended with outcome.
func (t *Tally) Count(kind tags.Kind, outcome Outcome) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[kind][outcome]
}

// Leaves returns how many distinct leaf items were processed.
func (t *Tally) Leaves() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.leaves
}

// Flatten returns the counts keyed "<kind>_<outcome>".
func (t *Tally) Flatten() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int)
	for kind, byOutcome := range t.counts {
		for outcome, n := range byOutcome {
			if n > 0 {
				out[kind.String()+"_"+outcome.String()] = n
			}
		}
	}
	return out
}
