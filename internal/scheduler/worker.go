package scheduler

import (
	"context"

	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// RunWorker waits for alarms routed to the given worker and displays
// their countdown, forever. It returns when the coordinator is stopped or
// the context is canceled.
//
// The countdown runs with the lock held. That is the load-bearing part of
// the design, not an accident: while one worker displays, the other
// worker, the dispatcher, and the producer all stall behind the lock, so
// at most one alarm is in active display system-wide.
func (c *Coordinator) RunWorker(ctx context.Context, id domain.WorkerID) {
	ctx = logger.WithName(ctx, id.String())
	logger.Debugf(ctx, "Worker started")

	wake := c.wake(id)

	for {
		c.mu.Lock()

		if c.stopped {
			c.mu.Unlock()
			logger.Debugf(ctx, "Worker stopped")

			return
		}

		// The dispatcher may route an alarm here during the gap between
		// finishing the previous one and waiting again; its signal would
		// then hit before Wait and be lost. Consuming an already-routed
		// alarm first keeps the slot and the signal in step, so every
		// wake from Wait corresponds to exactly one routed record and no
		// further re-check is needed afterwards.
		if c.handoff == nil || c.handoffFor != id {
			wake.Wait()

			if c.stopped {
				c.mu.Unlock()
				logger.Debugf(ctx, "Worker stopped")

				return
			}
		}

		a := c.handoff
		c.handoff = nil

		c.notifier.Received(ctx, id, a)

		// Countdown with the lock held until the alarm expires.
		for now := c.now(); !a.Expired(now); now = c.now() {
			c.notifier.Progress(ctx, id, a, a.Remaining(now))

			if !c.sleep(ctx, WorkerPause) {
				c.mu.Unlock()
				logger.Debugf(ctx, "Worker stopped")

				return
			}
		}

		c.notifier.Expired(ctx, id, a)
		c.stats.Expired.Inc()

		c.mu.Unlock()
		// Nothing references the record anymore; it is gone.
	}
}
