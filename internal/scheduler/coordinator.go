package scheduler

import (
	"context"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/registry"
)

const (
	// DispatcherPause is the fixed pause the dispatcher takes after every
	// iteration, whether or not it routed an alarm. It also bounds how
	// long a freshly inserted alarm waits before it can be dispatched.
	DispatcherPause = time.Second

	// WorkerPause is the fixed pause between countdown progress
	// notifications. It is deliberately longer than DispatcherPause.
	WorkerPause = 2 * time.Second
)

// Coordinator owns the state shared by the producer, the dispatcher, and
// the two workers: the pending registry, the single-record handoff slot,
// the one lock guarding both, and one wakeup condition per worker.
//
// The lock's scope is part of the contract: a worker keeps it for the
// entire countdown of a routed alarm, so at most one alarm is displaying
// system-wide at any instant and everything else stalls behind it.
type Coordinator struct {
	// mu guards the pending registry, the handoff slot, and stopped.
	// The worker conditions are bound to it.
	mu sync.Mutex
	// pending is the ordered registry of alarms awaiting dispatch.
	pending *registry.List
	// handoff passes exactly one alarm from the dispatcher to a worker.
	handoff *domain.Alarm
	// handoffFor names the worker the handed-off alarm is routed to.
	handoffFor domain.WorkerID
	// wakeA and wakeB wake the respective worker when an alarm has been
	// routed to it. Only the dispatcher signals them, and only the owning
	// worker waits on them.
	wakeA *sync.Cond
	wakeB *sync.Cond
	// stopped ends every role loop once set. It is flipped exactly once,
	// under mu, by Stop.
	stopped bool

	// notifier receives one callback per lifecycle event.
	notifier Notifier
	// stats counts lifecycle events across all roles.
	stats *Stats
	// now and sleep are the time sources of all roles. Tests replace
	// them; production uses the wall clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewCoordinator creates a coordinator with an empty registry.
// A nil notifier falls back to log output.
func NewCoordinator(notifier Notifier) *Coordinator {
	if notifier == nil {
		notifier = LogNotifier{}
	}

	c := &Coordinator{
		pending:  registry.New(),
		notifier: notifier,
		stats:    new(Stats),
		now:      time.Now,
		sleep:    sleepContext,
	}

	c.wakeA = sync.NewCond(&c.mu)
	c.wakeB = sync.NewCond(&c.mu)

	return c
}

// wake returns the wakeup condition owned by the given worker.
func (c *Coordinator) wake(id domain.WorkerID) *sync.Cond {
	if id == domain.WorkerA {
		return c.wakeA
	}

	return c.wakeB
}

// Stats returns the coordinator's lifecycle counters.
func (c *Coordinator) Stats() *Stats {
	return c.stats
}

// PendingAlarms samples the registry under the lock and returns the
// alarms in dispatch order.
func (c *Coordinator) PendingAlarms() []*domain.Alarm {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pending.Snapshot()
}

// Stop ends all role loops. Workers blocked on their condition are woken;
// roles blocked on a pause exit once their context is canceled. Stop
// blocks while a worker holds the lock for an active countdown.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	c.stopped = true
	c.wakeA.Broadcast()
	c.wakeB.Broadcast()
}

// sleepContext pauses for the given duration or until the context is
// canceled, reporting whether the full pause elapsed.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
