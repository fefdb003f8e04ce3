package bulkorder

import "sync"

// Session guards against the stale-response race: the caller re-runs the
// pipeline while earlier passes may still be resolving catalog or rate
// lookups. Each pass begins with a monotonically increasing sequence number
// and only the pass holding the most recently issued number may publish its
// result. There is no cancellation of in-flight passes; stale results are
// simply discarded on commit.
type Session struct {
	mu     sync.Mutex
	issued uint64
	latest *ValidationResult
}

// NewSession creates an empty validation session.
func NewSession() *Session {
	return &Session{}
}

// Begin issues the sequence number for a new validation pass.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit publishes a finished pass. It reports whether the result was
// accepted; a pass superseded by a later Begin is dropped.
func (s *Session) Commit(seq uint64, result *ValidationResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued {
		return false
	}
	s.latest = result
	return true
}

// Latest returns the most recently accepted result, or nil before the first
// successful commit.
func (s *Session) Latest() *ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
