package dashboard

import (
	"sync"
)

// Sequencer orders in-flight list requests. Every issued request gets a
// monotonically increasing sequence number; a response is applied only when
// it belongs to the latest issued request. This replaces "last debounce timer
// wins" with an explicit guarantee: the view reflects the most recently
// issued query, never merely the most recently completed one.
type Sequencer struct {
	mu     sync.Mutex
	issued uint64
}

// Next issues a new sequence number for an outgoing request
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept reports whether a response with the given sequence number may be
// applied to the view. Stale responses are discarded.
func (s *Sequencer) Accept(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.issued
}
