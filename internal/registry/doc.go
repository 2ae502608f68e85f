// Package registry holds the ordered list of pending alarms awaiting
// dispatch.
//
// The list is deliberately unsynchronized: the scheduler's coordinator
// guards it (together with the handoff slot) with a single lock, and the
// exact scope of that lock is part of the system's observable behavior.
package registry
