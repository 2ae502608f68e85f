package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
)

// clockFactor compresses virtual time for tests: one virtual second passes
// in 20 milliseconds of wall time, so the literal pause constants keep
// their ratio while the suite stays fast.
const clockFactor = 50

// awaitTimeout bounds how long tests wait for an expected event.
const awaitTimeout = 10 * time.Second

// fastClock is a virtual clock. It stays frozen at its epoch until Start
// is called and then advances clockFactor times faster than the wall
// clock. Freezing lets tests submit alarms with exact expiry instants
// (and therefore exact parity) before any role runs.
type fastClock struct {
	mu      sync.Mutex
	epoch   time.Time
	started time.Time
}

func newFastClock(epochSeconds int64) *fastClock {
	return &fastClock{epoch: time.Unix(epochSeconds, 0)}
}

// Now returns the current virtual instant.
func (c *fastClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started.IsZero() {
		return c.epoch
	}

	return c.epoch.Add(time.Since(c.started) * clockFactor)
}

// Start unfreezes the clock.
func (c *fastClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = time.Now()
}

// Sleep pauses for the scaled-down wall equivalent of the virtual duration.
func (c *fastClock) Sleep(ctx context.Context, d time.Duration) bool {
	return sleepContext(ctx, d/clockFactor)
}

// event is one recorded lifecycle callback.
type event struct {
	// kind is one of accepted, rejected, dispatched, received, progress, expired.
	kind string
	// worker is set for dispatched, received, progress, and expired events.
	worker domain.WorkerID
	// message identifies the alarm; rejected events carry the raw line instead.
	message string
	// remaining is set for progress events.
	remaining int64
	// at is the virtual instant the event was recorded.
	at time.Time
}

// recorder is a Notifier that captures every event with a virtual timestamp.
type recorder struct {
	clock *fastClock

	mu     sync.Mutex
	events []event
}

func (r *recorder) record(e event) {
	e.at = r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recorder) Accepted(_ context.Context, a *domain.Alarm) {
	r.record(event{kind: "accepted", message: a.Message})
}

func (r *recorder) Rejected(_ context.Context, line string, _ error) {
	r.record(event{kind: "rejected", message: line})
}

func (r *recorder) Dispatched(_ context.Context, target domain.WorkerID, a *domain.Alarm) {
	r.record(event{kind: "dispatched", worker: target, message: a.Message})
}

func (r *recorder) Received(_ context.Context, id domain.WorkerID, a *domain.Alarm) {
	r.record(event{kind: "received", worker: id, message: a.Message})
}

func (r *recorder) Progress(_ context.Context, id domain.WorkerID, a *domain.Alarm, remaining int64) {
	r.record(event{kind: "progress", worker: id, message: a.Message, remaining: remaining})
}

func (r *recorder) Expired(_ context.Context, id domain.WorkerID, a *domain.Alarm) {
	r.record(event{kind: "expired", worker: id, message: a.Message})
}

// snapshot returns a copy of the events recorded so far.
func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event(nil), r.events...)
}

// await polls until the predicate holds for the recorded events, failing
// the test after awaitTimeout.
func (r *recorder) await(t *testing.T, what string, predicate func([]event) bool) []event {
	t.Helper()

	deadline := time.Now().Add(awaitTimeout)
	for time.Now().Before(deadline) {
		events := r.snapshot()
		if predicate(events) {
			return events
		}

		time.Sleep(2 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %s; events: %+v", what, r.snapshot())

	return nil
}

// awaitKind waits until at least count events of the given kind exist.
func (r *recorder) awaitKind(t *testing.T, kind string, count int) []event {
	t.Helper()

	return r.await(t, kind, func(events []event) bool {
		return countKind(events, kind) >= count
	})
}

func countKind(events []event, kind string) int {
	n := 0
	for _, e := range events {
		if e.kind == kind {
			n++
		}
	}

	return n
}

// firstEvent returns the first event matching kind and message.
func firstEvent(t *testing.T, events []event, kind, message string) event {
	t.Helper()

	for _, e := range events {
		if e.kind == kind && e.message == message {
			return e
		}
	}

	t.Fatalf("no %s event for %q in %+v", kind, message, events)

	return event{}
}

// eventIndex returns the position of the first event matching kind and message.
func eventIndex(t *testing.T, events []event, kind, message string) int {
	t.Helper()

	for i, e := range events {
		if e.kind == kind && e.message == message {
			return i
		}
	}

	t.Fatalf("no %s event for %q in %+v", kind, message, events)

	return -1
}

// harness runs a coordinator against a fast clock and a recorder.
type harness struct {
	coordinator *Coordinator
	clock       *fastClock
	recorder    *recorder

	cancel context.CancelFunc
	roles  sync.WaitGroup
}

// newHarness builds a coordinator on a clock frozen at the given epoch.
func newHarness(t *testing.T, epochSeconds int64) *harness {
	t.Helper()

	clock := newFastClock(epochSeconds)
	rec := &recorder{clock: clock}

	c := NewCoordinator(rec)
	c.now = clock.Now
	c.sleep = clock.Sleep

	h := &harness{
		coordinator: c,
		clock:       clock,
		recorder:    rec,
	}

	t.Cleanup(h.stop)

	return h
}

// submit feeds request lines through the producer while the clock is
// still frozen, giving every alarm an exact, parity-stable expiry.
func (h *harness) submit(t *testing.T, lines ...string) {
	t.Helper()

	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, h.coordinator.RunProducer(context.Background(), input, nil, ""))
}

// start launches both workers, gives them time to block on their
// conditions, then launches the dispatcher and unfreezes the clock.
func (h *harness) start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	for _, id := range []domain.WorkerID{domain.WorkerA, domain.WorkerB} {
		h.roles.Add(1)

		go func() {
			defer h.roles.Done()
			h.coordinator.RunWorker(ctx, id)
		}()
	}

	// Let the workers reach their condition wait before anything is
	// dispatched, as process startup does naturally.
	time.Sleep(20 * time.Millisecond)

	h.roles.Add(1)

	go func() {
		defer h.roles.Done()
		h.coordinator.RunDispatcher(ctx)
	}()

	h.clock.Start()
}

// startDispatcherOnly launches the dispatcher without any workers.
func (h *harness) startDispatcherOnly() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	h.roles.Add(1)

	go func() {
		defer h.roles.Done()
		h.coordinator.RunDispatcher(ctx)
	}()

	h.clock.Start()
}

// stop tears the roles down and waits for them to exit.
func (h *harness) stop() {
	if h.cancel == nil {
		return
	}

	h.cancel()
	h.coordinator.Stop()
	h.roles.Wait()
	h.cancel = nil
}
