//go:build darwin

package cpu

import "runtime"

// Pin locks the calling goroutine to an OS thread.
// macOS exposes no thread-to-core pinning, so workerID is unused.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
