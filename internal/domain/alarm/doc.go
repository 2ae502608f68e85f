// Package alarm contains core domain types for the scheduler.
//
// It defines Alarm (one scheduled notification request with its absolute
// expiry instant) and WorkerID (which of the two display workers serves
// it), plus the parity routing rule that binds them.
package alarm
