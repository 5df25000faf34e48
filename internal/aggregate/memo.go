package aggregate

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo remembers the Contribution of every leaf processed in a pass.
// Concurrent requests for the same key share one execution.
type Memo struct {
	group singleflight.Group
	mu    sync.Mutex
	done  map[string]Contribution
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{done: make(map[string]Contribution)}
}

// Do returns the memoized value for key, running fn at most once per key
// across the memo's lifetime. Errors are not memoized. The boolean reports
// whether the value came from an earlier or concurrent execution.
func (m *Memo) Do(key string, fn func() (Contribution, error)) (Contribution, bool, error) {
	if value, ok := m.lookup(key); ok {
		return value, true, nil
	}
	ran := false
	value, err, _ := m.group.Do(key, func() (any, error) {
		if value, ok := m.lookup(key); ok {
			return value, nil
		}
		ran = true
		value, err := fn()
		if err != nil {
			return Contribution{}, err
		}
		m.mu.Lock()
		m.done[key] = value
		m.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return Contribution{}, false, err
	}
	return value.(Contribution), !ran, nil
}

// Len returns the number of memoized keys.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.done)
}

func (m *Memo) lookup(key string) (Contribution, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.done[key]
	return value, ok
}
