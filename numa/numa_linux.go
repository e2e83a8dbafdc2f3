//go:build linux

package numa

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// linuxWorker pins the calling OS thread to a CPU set derived from
// workerIndex, approximating node-local or interleaved placement without
// requiring a full NUMA topology probe (that remains an external
// collaborator per spec §1). This is a best-effort scheduling hint, not a
// guarantee: sched_setaffinity failures are swallowed.
type linuxWorker struct {
	mode Mode
}

func platformBinder(mode Mode) Worker {
	return linuxWorker{mode: mode}
}

func (w linuxWorker) BindWorker(workerIndex int) {
	ncpu := runtime.NumCPU()
	if ncpu <= 0 {
		return
	}
	runtime.LockOSThread()

	var set unix.CPUSet
	switch w.mode {
	case Local:
		// Pin to a single CPU associated with this worker, a cheap proxy
		// for "local" placement absent real topology information.
		set.Set(workerIndex % ncpu)
	case Interleaved:
		// Spread across every other CPU starting at workerIndex, a cheap
		// proxy for round-robin page placement across nodes.
		for c := workerIndex % ncpu; c < ncpu; c += 2 {
			set.Set(c)
		}
	default:
		return
	}

	_ = unix.SchedSetaffinity(0, &set)
}
