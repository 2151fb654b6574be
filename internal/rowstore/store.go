// Package rowstore keeps transformed runs in memory and indexes their rows
// by dimension value with Roaring bitmaps.
package rowstore

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Failure is a record that could not be transformed.
type Failure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Store holds the most recent runs. The oldest run is evicted once
// maxRuns is exceeded.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]*Run
	order   []string
	maxRuns int
}

// New creates a Store holding at most maxRuns runs (minimum 1).
func New(maxRuns int) *Store {
	if maxRuns < 1 {
		maxRuns = 1
	}
	return &Store{
		runs:    make(map[string]*Run),
		maxRuns: maxRuns,
	}
}

// Put indexes rows into a new run and returns it.
func (s *Store) Put(schema *insights.Schema, rows []insights.Row, failures []Failure) *Run {
	run := newRun(uuid.NewString(), schema, rows, failures)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > s.maxRuns {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, evicted)
		slog.Debug("evicted run", slog.String("run_id", evicted))
	}
	return run
}

// Get returns a run by ID.
func (s *Store) Get(id string) (*Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}

// RunSummary describes a stored run without its rows.
type RunSummary struct {
	ID          string              `json:"run_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Kind        insights.SchemaKind `json:"kind"`
	Fingerprint string              `json:"schema_fingerprint"`
	Rows        int                 `json:"rows"`
	Failures    int                 `json:"failures"`
}

// List returns summaries of stored runs, newest first.
func (s *Store) List() []RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RunSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.runs[s.order[i]].Summary())
	}
	return out
}

// Len returns the number of stored runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
