//go:build linux

package runtime

import "golang.org/x/sys/unix"

// currentThreadID returns the real Linux thread id (gettid) of the OS
// thread the calling goroutine happens to be running on right now. It is
// only meaningful once the goroutine has been pinned with
// runtime.LockOSThread (see Current in threadlocal.go); absent that, the
// Go scheduler is free to move the goroutine between OS threads and the
// value is merely a snapshot.
func currentThreadID() int {
	return unix.Gettid()
}

func releaseThreadID(rt *PerThreadRuntime) {
	_ = rt
}
