package apperr

import "sync"

// DefaultHistoryCap bounds the in-memory diagnostic history.
const DefaultHistoryCap = 50

// History is a bounded, most-recent-first record of classified errors kept
// for diagnostic retrieval. It lives for the process lifetime and is owned
// by whoever constructs it; there is no package-level instance.
type History struct {
	mu      sync.RWMutex
	cap     int
	entries []*Error
}

// NewHistory creates a history capped at max entries. Non-positive max falls
// back to DefaultHistoryCap.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistoryCap
	}
	return &History{cap: max}
}

// Record prepends the error and trims to capacity.
func (h *History) Record(err *Error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]*Error{err}, h.entries...)
	if len(h.entries) > h.cap {
		h.entries = h.entries[:h.cap]
	}
}

// Recent returns a copy of the recorded errors, most recent first.
func (h *History) Recent() []*Error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Error, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports how many errors are currently retained.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
