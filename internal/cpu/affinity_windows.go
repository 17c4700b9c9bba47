//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the calling OS thread to core cpuID % NumCPU.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	numCPU := runtime.NumCPU()
	cpuID %= numCPU
	if cpuID < 0 {
		cpuID += numCPU
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return err
	}
	return nil
}

// Pin locks the calling goroutine to an OS thread and pins that thread to one core chosen
// from workerID. The returned function unlocks the thread; defer it.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	_ = pinToCore(workerID)

	return runtime.UnlockOSThread
}
