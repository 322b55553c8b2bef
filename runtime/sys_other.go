//go:build !linux

package runtime

import "sync/atomic"

// synthTIDCounter hands out synthetic "thread ids" on platforms where
// gettid(2) doesn't apply (x/sys/unix.Gettid is Linux-only), so
// PerThreadRuntime.ThreadID still returns something stable and unique
// per runtime instance.
var synthTIDCounter int64

func currentThreadID() int {
	return int(atomic.AddInt64(&synthTIDCounter, 1))
}

func releaseThreadID(rt *PerThreadRuntime) {
	_ = rt
}
