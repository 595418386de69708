// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// are located in separate files (affinity_linux.go, affinity_windows.go,
// etc.) guarded by build tags.
//
// Pinning the producer and consumer threads of a ring to distinct cores
// keeps their cursor cache lines from migrating.

package affinity

import "runtime"

// Pin locks the calling goroutine to its OS thread and binds that thread
// to the given logical CPU. On unsupported platforms returns an error
// with the thread still locked; callers that treat pinning as optional
// should Unpin on error.
func Pin(cpuID int) error {
	runtime.LockOSThread()
	return setAffinityPlatform(cpuID)
}

// Unpin releases the goroutine-to-thread lock. Any CPU binding stays with
// the thread until the scheduler reuses it.
func Unpin() {
	runtime.UnlockOSThread()
}
