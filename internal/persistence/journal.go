package persistence

import (
	"sync"

	"github.com/talgya/hearthold/internal/engine"
)

// Journal buffers simulation events and writes them out on Flush. It
// implements engine.EventSink.
type Journal struct {
	db    *DB
	runID string

	mu      sync.Mutex
	pending []engine.Event
}

// NewJournal creates a journal for a run.
func NewJournal(db *DB, runID string) *Journal {
	return &Journal{db: db, runID: runID}
}

// RecordEvent implements engine.EventSink.
func (j *Journal) RecordEvent(e engine.Event) {
	j.mu.Lock()
	j.pending = append(j.pending, e)
	j.mu.Unlock()
}

// Pending returns the number of buffered events.
func (j *Journal) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending)
}

// Flush writes the buffered events. On failure they stay buffered.
func (j *Journal) Flush() error {
	j.mu.Lock()
	batch := j.pending
	j.pending = nil
	j.mu.Unlock()

	if err := j.db.SaveEvents(j.runID, batch); err != nil {
		j.mu.Lock()
		j.pending = append(batch, j.pending...)
		j.mu.Unlock()
		return err
	}
	return nil
}
