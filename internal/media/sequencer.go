package media

import "sync"

// FieldSequencer orders concurrent uploads targeting the same content field.
// Each upload takes a ticket before starting; when it completes, only the
// holder of the latest ticket may write its URL back into the field. A slow
// early upload finishing after a fast later one is simply discarded.
type FieldSequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewFieldSequencer constructs an empty sequencer.
func NewFieldSequencer() *FieldSequencer {
	return &FieldSequencer{latest: make(map[string]uint64)}
}

// Begin issues the next ticket for a field.
func (f *FieldSequencer) Begin(field string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[field]++
	return f.latest[field]
}

// Commit reports whether the ticket is still the latest issued for the
// field. Stale tickets must drop their result.
func (f *FieldSequencer) Commit(field string, ticket uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest[field] == ticket
}

// Forget clears the field's ticket history, typically when its block is
// deleted.
func (f *FieldSequencer) Forget(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.latest, field)
}
