// Package numa exposes the abstract "allocate on node N / interleaved"
// capability that the parallel parser (C8) consumes per worker. Topology
// discovery itself is an external collaborator and out of scope (spec
// §1); this package only offers the thinnest binding primitive a worker
// goroutine can call before it starts allocating its transient arena.
package numa

// Mode mirrors simdjson.NumaBinding's three values without creating an
// import cycle back into the root package.
type Mode uint8

const (
	None Mode = iota
	Local
	Interleaved
)

// Worker is what the parallel parser calls once per worker goroutine,
// before that worker starts allocating its transient structural-index and
// key/value staging buffers (spec §5 "Memory discipline").
type Worker interface {
	// BindWorker is called from inside the worker's own goroutine
	// (important: affinity and memory-policy syscalls apply to the
	// calling OS thread) with that worker's 0-based index. Implementations
	// must be best-effort: a binding failure is never fatal to the parse.
	BindWorker(workerIndex int)
}

type noopWorker struct{}

func (noopWorker) BindWorker(int) {}

// Binder returns the Worker implementation for mode on the current
// platform. On platforms without a binding backend (or when mode is
// None), it returns a no-op.
func Binder(mode Mode) Worker {
	if mode == None {
		return noopWorker{}
	}
	return platformBinder(mode)
}
