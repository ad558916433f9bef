package scheduler

import (
	"sync"
	"time"
)

type eventKey struct {
	userID  string
	eventID string
}

// notifiedSet tracks (user, event) pairs for which a reminder was already
// dispatched. Each entry carries the time it was recorded so stale entries
// can be swept instead of clearing the whole set. Safe for concurrent use.
type notifiedSet struct {
	mu         sync.Mutex
	entries    map[eventKey]time.Time
	maxEntries int
}

func newNotifiedSet(maxEntries int) *notifiedSet {
	return &notifiedSet{
		entries:    make(map[eventKey]time.Time),
		maxEntries: maxEntries,
	}
}

// Claim atomically checks for the key and inserts it when absent. It returns
// false if a reminder was already dispatched for this pair.
func (s *notifiedSet) Claim(userID, eventID string, now time.Time) bool {
	key := eventKey{userID: userID, eventID: eventID}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = now
	return true
}

// Release removes a claimed key so the pair becomes eligible again. Used when
// the notification that justified the claim could not be delivered.
func (s *notifiedSet) Release(userID, eventID string) {
	s.mu.Lock()
	delete(s.entries, eventKey{userID: userID, eventID: eventID})
	s.mu.Unlock()
}

// Sweep drops entries recorded before the cutoff, then evicts oldest entries
// until the set fits the size bound. Returns the number of removed entries.
func (s *notifiedSet) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, recordedAt := range s.entries {
		if recordedAt.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}

	for len(s.entries) > s.maxEntries {
		var oldestKey eventKey
		var oldestAt time.Time
		first := true
		for key, recordedAt := range s.entries {
			if first || recordedAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = recordedAt
				first = false
			}
		}
		delete(s.entries, oldestKey)
		removed++
	}

	return removed
}

func (s *notifiedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
