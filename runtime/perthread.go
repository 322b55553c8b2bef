package runtime

import "container/list"

// maxCache bounds the number of exited fibers kept around for stack
// reuse; excess is freed eagerly at switch-out time.
const maxCache = 1000

// liveGrowStep is how many slots the live-fiber table grows by once it
// fills up.
const liveGrowStep = 128

// PerThreadRuntime is the scheduler state owned by a single OS thread.
// Fibers created against one PerThreadRuntime never run against another:
// there is no cross-thread migration and no locking inside any of its
// methods, because only one fiber (or the runtime's own origin context)
// is ever logically active at a time.
type PerThreadRuntime struct {
	ready *list.List // of *Fiber, Ready prepends, Yield appends, pop-head
	dead  *list.List // of *Fiber, EXITING fibers cached for reuse

	live []*Fiber // slot table; live[f.slot] == f for every entry

	running *Fiber // currently executing fiber, nil while origin is active

	origin          *fiberContext // the scheduler's own saved context
	originErrno     int           // errno shadow read when no fiber is running
	originSaveErrno bool          // origin-context analog of FlagSaveErrno

	idgen    int64
	count    int   // number of non-system live fibers
	switched int64 // total switch events

	nlocal int // high-water number of local-storage keys issued

	hookEnabled bool
	exitCode    int

	tid int // OS thread id this runtime is pinned to, see sys_*.go
}

// New constructs a fresh PerThreadRuntime. Callers that want the
// single-active-context guarantee to hold against the real OS scheduler,
// not just this package's bookkeeping, should call runtime.LockOSThread
// themselves before using it (Current does this automatically).
func New() *PerThreadRuntime {
	rt := &PerThreadRuntime{
		ready: list.New(),
		dead:  list.New(),
		live:  make([]*Fiber, 0, liveGrowStep),
		origin: newFiberContext(),
		tid:    currentThreadID(),
	}
	rt.originErrno = 0
	return rt
}

// Ndead returns the number of fibers currently cached in the dead queue.
func (rt *PerThreadRuntime) Ndead() int {
	return rt.dead.Len()
}

// Count returns the number of live, user-visible (non-system) fibers.
func (rt *PerThreadRuntime) Count() int {
	return rt.count
}

// Switched returns the total number of context-switch events observed so
// far by this runtime.
func (rt *PerThreadRuntime) Switched() int64 {
	return rt.switched
}

// ExitCode returns the code set by the most recent call to Exit.
func (rt *PerThreadRuntime) ExitCode() int {
	return rt.exitCode
}

// ThreadID returns the OS thread id this runtime believes it is pinned
// to (best-effort; see sys_linux.go / sys_other.go).
func (rt *PerThreadRuntime) ThreadID() int {
	return rt.tid
}

// addLive appends f to the live table, assigning f.slot.
func (rt *PerThreadRuntime) addLive(f *Fiber) {
	if len(rt.live) == cap(rt.live) {
		grown := make([]*Fiber, len(rt.live), cap(rt.live)+liveGrowStep)
		copy(grown, rt.live)
		rt.live = grown
	}
	f.slot = len(rt.live)
	rt.live = append(rt.live, f)
}

// removeLive performs the O(1) swap-with-last removal of f from the live
// table, described in the fiber specification's slot invariant.
func (rt *PerThreadRuntime) removeLive(f *Fiber) {
	last := len(rt.live) - 1
	moved := rt.live[last]
	rt.live[f.slot] = moved
	moved.slot = f.slot
	rt.live[last] = nil
	rt.live = rt.live[:last]
}

// Close drains and frees every fiber on the dead queue. Go has no
// thread-exit destructor hook, so callers that want the teardown the
// original implementation performs at thread exit must call Close
// themselves before the owning goroutine returns.
func (rt *PerThreadRuntime) Close() {
	for {
		f := rt.popDeadStack()
		if f == nil {
			break
		}
		freeFiber(f)
	}
	releaseThreadID(rt)
}
