package alarm

// WorkerID identifies one of the two fixed display workers.
type WorkerID uint8

const (
	// WorkerA serves alarms whose expiry instant has odd Unix seconds.
	WorkerA WorkerID = iota
	// WorkerB serves alarms whose expiry instant has even Unix seconds.
	WorkerB
)

// String returns the worker's role name as used in log output.
func (id WorkerID) String() string {
	switch id {
	case WorkerA:
		return "worker-a"
	case WorkerB:
		return "worker-b"
	default:
		return "worker-unknown"
	}
}
