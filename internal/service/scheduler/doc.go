// Package scheduler wires the coordination core to the process: it loads
// settings, configures logging, starts the dispatcher and both workers,
// and feeds the producer from the input stream until it is exhausted.
package scheduler
