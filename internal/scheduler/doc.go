// Package scheduler implements the coordination core of the alarm
// scheduler: one producer, one dispatcher, and two display workers
// sharing an ordered registry through a single lock and two
// worker-specific wakeup conditions.
//
// The producer inserts alarms sorted by expiry instant, the dispatcher
// pops the earliest one and routes it by expiry parity through a
// one-record handoff slot, and the routed worker counts it down to expiry
// while holding the shared lock. The lock scope is deliberate: an active
// countdown serializes the whole system, including the idle worker.
package scheduler
