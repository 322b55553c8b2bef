package runtime

import (
	"bytes"
	goruntime "runtime"
	"strconv"
	"sync"
)

// Go exposes no thread-local-storage primitive and no stable goroutine
// identifier, so the "lazily constructed per OS thread" registry the
// fiber specification describes is approximated here by keying on the
// calling goroutine's id (parsed out of a runtime.Stack dump, the same
// trick a handful of goroutine-local-storage shims use) combined with
// runtime.LockOSThread, which is the one standard-library call that
// actually pins a goroutine to one OS thread for its remaining lifetime.
// Current is therefore "one PerThreadRuntime per goroutine that has
// called Current", which coincides with "one per OS thread" for exactly
// as long as that goroutine stays locked — i.e. forever, since it is
// never unlocked until CloseCurrent.
var (
	registryMu sync.Mutex
	registry   = map[int64]*PerThreadRuntime{}
)

// Current returns the calling goroutine's PerThreadRuntime, lazily
// constructing one (and locking the goroutine to its current OS thread)
// on first call.
func Current() *PerThreadRuntime {
	gid := goroutineID()

	registryMu.Lock()
	rt, ok := registry[gid]
	if !ok {
		goruntime.LockOSThread()
		rt = New()
		registry[gid] = rt
	}
	registryMu.Unlock()

	return rt
}

// CloseCurrent closes and forgets the calling goroutine's runtime, if
// any, then unlocks it from its OS thread.
func CloseCurrent() {
	gid := goroutineID()

	registryMu.Lock()
	rt, ok := registry[gid]
	if ok {
		delete(registry, gid)
	}
	registryMu.Unlock()

	if !ok {
		return
	}
	rt.Close()
	goruntime.UnlockOSThread()
}

// goroutineID extracts the numeric id Go prints at the head of a stack
// trace ("goroutine 37 [running]: ..."). It is not a public API and
// could in principle change format across Go releases; it is only ever
// used as a registry key here, never for anything load-bearing about
// correctness beyond "the same goroutine maps to the same key".
func goroutineID() int64 {
	var buf [64]byte
	n := goruntime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]

	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
