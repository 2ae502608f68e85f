package scheduler

import "go.uber.org/atomic"

// Stats counts alarm lifecycle events across all roles. The counters are
// atomic because the producer increments outside the coordinator's lock
// while the dispatcher and workers increment inside it.
type Stats struct {
	// Accepted counts valid request lines inserted into the registry.
	Accepted atomic.Int64
	// Rejected counts malformed request lines.
	Rejected atomic.Int64
	// Dispatched counts alarms routed to a worker.
	Dispatched atomic.Int64
	// Expired counts alarms whose countdown completed.
	Expired atomic.Int64
}

// KV returns the counters as key-value pairs for structured logging.
func (s *Stats) KV() []any {
	return []any{
		"accepted", s.Accepted.Load(),
		"rejected", s.Rejected.Load(),
		"dispatched", s.Dispatched.Load(),
		"expired", s.Expired.Load(),
	}
}
