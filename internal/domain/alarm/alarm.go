package alarm

import "time"

// MaxMessageLength is the maximum number of characters kept from a request
// message. Longer input is truncated, never rejected.
const MaxMessageLength = 63

// Alarm is one scheduled notification request. It has no identity beyond
// its content and its position in the pending registry.
type Alarm struct {
	// Seconds is the requested delay as given by the caller. It may be
	// zero or negative, producing an alarm that is already due.
	Seconds int
	// ExpiresAt is the absolute expiry instant (submission time plus
	// Seconds) and the registry's sort key. It has second granularity.
	ExpiresAt time.Time
	// Message is the text displayed while the alarm counts down.
	Message string
}

// New builds an alarm expiring Seconds after now. The expiry instant is
// truncated to whole seconds so that equal-expiry ordering and parity
// routing are well defined, and the message is truncated to
// MaxMessageLength characters.
func New(now time.Time, seconds int, message string) *Alarm {
	if len(message) > MaxMessageLength {
		message = message[:MaxMessageLength]
	}

	return &Alarm{
		Seconds:   seconds,
		ExpiresAt: time.Unix(now.Unix()+int64(seconds), 0),
		Message:   message,
	}
}

// Expired reports whether the alarm is due at the given instant.
// The comparison uses whole seconds, matching the expiry granularity.
func (a *Alarm) Expired(now time.Time) bool {
	return a.ExpiresAt.Unix() <= now.Unix()
}

// Remaining returns the number of whole seconds until expiry at the given
// instant. It is negative once the alarm is overdue.
func (a *Alarm) Remaining(now time.Time) int64 {
	return a.ExpiresAt.Unix() - now.Unix()
}

// Route returns the worker that must display this alarm. Routing is a pure
// function of the expiry instant's parity: odd Unix seconds go to worker A,
// even to worker B. It is not load-based, so same-parity bursts keep one
// worker busy while the other idles.
func (a *Alarm) Route() WorkerID {
	if a.ExpiresAt.Unix()%2 != 0 {
		return WorkerA
	}

	return WorkerB
}
