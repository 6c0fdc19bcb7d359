package dedupe

import (
	"sync"
	"time"
)

// Tracker remembers which document IDs were recently indexed so the worker
// can drop replayed records. Entries expire after the ttl or when the
// capacity is exceeded, oldest first.
type Tracker struct {
	mu       sync.Mutex
	seen     map[string]time.Time
	queue    []queued
	capacity int
	ttl      time.Duration
}

type queued struct {
	id string
	at time.Time
}

// NewTracker creates a tracker with the provided capacity and ttl.
func NewTracker(capacity int, ttl time.Duration) *Tracker {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tracker{
		seen:     make(map[string]time.Time, capacity),
		queue:    make([]queued, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Seen reports whether the document ID was recorded inside the ttl window.
// It does not record the ID; use Record for that.
func (t *Tracker) Seen(id string) bool {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	at, ok := t.seen[id]
	return ok && now.Sub(at) <= t.ttl
}

// Record marks a document ID as processed.
func (t *Tracker) Record(id string) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seen[id] = now
	t.queue = append(t.queue, queued{id: id, at: now})
	t.evict(now)
}

// evict drops expired entries and, when over capacity, the oldest ones.
// A queue entry only removes the map entry if the timestamps still match,
// so a re-recorded ID survives eviction of its older queue slot.
func (t *Tracker) evict(now time.Time) {
	cutoff := now.Add(-t.ttl)

	for len(t.queue) > 0 && (len(t.seen) > t.capacity || t.queue[0].at.Before(cutoff)) {
		oldest := t.queue[0]
		t.queue = t.queue[1:]

		if at, ok := t.seen[oldest.id]; ok && at.Equal(oldest.at) {
			delete(t.seen, oldest.id)
		}
	}
}
