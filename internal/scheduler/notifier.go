package scheduler

import (
	"context"
	"time"

	domain "github.com/oshokin/alarm-scheduler/internal/domain/alarm"
	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// Notifier receives one callback per alarm lifecycle event. The events
// and their cadence are part of the system's contract; how they are
// rendered is not. Every callback except Rejected runs with the
// coordinator's lock held, so implementations must not call back into
// the coordinator. Firing Accepted under the lock is what guarantees it
// always precedes Dispatched for the same record.
type Notifier interface {
	// Accepted fires after a valid request line has been inserted.
	Accepted(ctx context.Context, a *domain.Alarm)
	// Rejected fires exactly once per malformed request line.
	Rejected(ctx context.Context, line string, err error)
	// Dispatched fires when an alarm has been routed to a worker.
	Dispatched(ctx context.Context, target domain.WorkerID, a *domain.Alarm)
	// Received fires when the worker picks the alarm out of the handoff slot.
	Received(ctx context.Context, id domain.WorkerID, a *domain.Alarm)
	// Progress fires once per countdown step with the seconds remaining.
	Progress(ctx context.Context, id domain.WorkerID, a *domain.Alarm, remaining int64)
	// Expired fires once when the alarm's expiry instant has passed.
	Expired(ctx context.Context, id domain.WorkerID, a *domain.Alarm)
}

// LogNotifier renders every lifecycle event as one structured log line.
// Role names and timestamps come from the context logger.
type LogNotifier struct{}

// Accepted logs an accepted alarm request.
func (LogNotifier) Accepted(ctx context.Context, a *domain.Alarm) {
	logger.InfoKV(ctx, "Alarm request accepted",
		"seconds", a.Seconds,
		"message", a.Message,
		"expires_at", a.ExpiresAt.Format(time.RFC3339))
}

// Rejected logs a malformed request line.
func (LogNotifier) Rejected(ctx context.Context, line string, err error) {
	logger.ErrorKV(ctx, "Bad command", "line", line, "error", err.Error())
}

// Dispatched logs the routing decision for an alarm.
func (LogNotifier) Dispatched(ctx context.Context, target domain.WorkerID, a *domain.Alarm) {
	logger.InfoKV(ctx, "Alarm passed to worker",
		"worker", target.String(),
		"seconds", a.Seconds,
		"message", a.Message)
}

// Received logs that a worker took an alarm out of the handoff slot.
func (LogNotifier) Received(ctx context.Context, _ domain.WorkerID, a *domain.Alarm) {
	logger.InfoKV(ctx, "Alarm received",
		"seconds", a.Seconds,
		"message", a.Message,
		"expires_at", a.ExpiresAt.Format(time.RFC3339))
}

// Progress logs one countdown step.
func (LogNotifier) Progress(ctx context.Context, _ domain.WorkerID, a *domain.Alarm, remaining int64) {
	logger.InfoKV(ctx, "Seconds left",
		"remaining", remaining,
		"seconds", a.Seconds,
		"message", a.Message)
}

// Expired logs the end of an alarm's countdown.
func (LogNotifier) Expired(ctx context.Context, _ domain.WorkerID, a *domain.Alarm) {
	logger.InfoKV(ctx, "Alarm expired",
		"seconds", a.Seconds,
		"message", a.Message)
}
