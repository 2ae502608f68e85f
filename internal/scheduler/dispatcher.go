package scheduler

import (
	"context"

	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// RunDispatcher pops the earliest-expiring alarm from the registry and
// routes it to exactly one worker, forever. Routing is a pure function of
// the expiry instant's parity, never of load: same-parity bursts keep one
// worker busy while the other idles, and that is accepted behavior.
//
// The loop pauses for DispatcherPause after every iteration, routed or
// not, which is what lets the producer grab the lock to insert new work.
// It returns when the coordinator is stopped or the context is canceled.
func (c *Coordinator) RunDispatcher(ctx context.Context) {
	ctx = logger.WithName(ctx, "dispatcher")
	logger.Debugf(ctx, "Dispatcher started")

	for {
		c.mu.Lock()

		if c.stopped {
			c.mu.Unlock()
			logger.Debugf(ctx, "Dispatcher stopped")

			return
		}

		if a, ok := c.pending.PopEarliest(); ok {
			// The slot is overwritten unconditionally. A routed alarm
			// is consumed by its worker well within one pause, so the
			// slot is free again by the time the next pop happens.
			c.handoff = a
			c.handoffFor = a.Route()

			c.wake(c.handoffFor).Signal()
			c.notifier.Dispatched(ctx, c.handoffFor, a)
			c.stats.Dispatched.Inc()
		}

		c.mu.Unlock()

		if !c.sleep(ctx, DispatcherPause) {
			logger.Debugf(ctx, "Dispatcher stopped")

			return
		}
	}
}
