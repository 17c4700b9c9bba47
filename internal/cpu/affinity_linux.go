//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the calling OS thread to core cpuID % NumCPU.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	numCPU := runtime.NumCPU()
	cpuID %= numCPU
	if cpuID < 0 {
		cpuID += numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// Pin locks the calling goroutine to an OS thread and pins that thread to one core chosen
// from workerID. The returned function unlocks the thread; defer it.
//
// Pinning failures (for example inside a restricted cpuset) are ignored: the worker still
// runs, just without a fixed core.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	_ = pinToCore(workerID)

	return runtime.UnlockOSThread
}
