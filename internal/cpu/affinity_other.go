//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// Pin locks the calling goroutine to an OS thread. Core pinning is not implemented here.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
