package runtime

// Create allocates (or recycles from the dead cache) a fiber that will
// run fn(fiber, arg) once dispatched, and enqueues it ready. It does not
// run the fiber itself — that happens on the next Schedule/Switch/Yield
// that reaches it.
//
// If a recycled stack is smaller than size it is grown; otherwise the
// recycled (possibly larger) stack is kept as-is, so the caller may be
// handed a bigger stack than it asked for. This mirrors the fiber
// specification's stack-allocator contract exactly.
func (rt *PerThreadRuntime) Create(fn EntryFunc, arg interface{}, size int) *Fiber {
	f := rt.popDeadStack()
	if f == nil {
		f = &Fiber{stack: newStackBuffer(size)}
	} else if f.stack.size < size {
		f.stack.growTo(size)
	}

	rt.idgen++
	f.id = rt.idgen
	f.errnum = 0
	f.entryFn = fn
	f.entryArg = arg
	f.flags = 0
	f.status = StatusReady
	f.locals = nil
	f.nlocal = 0
	f.sys = false
	f.rt = rt
	f.ctx = newFiberContext()

	rt.addLive(f)
	rt.count++

	go func() {
		contextSave(f.ctx)
		fiberTrampoline(f)
	}()

	rt.Ready(f)
	return f
}

// Running returns the fiber currently executing on this runtime, or nil
// if the runtime's own origin context is the one active.
func (rt *PerThreadRuntime) Running() *Fiber {
	return rt.running
}

// Self returns the id of the running fiber, or 0 from the origin
// context.
func (rt *PerThreadRuntime) Self() int64 {
	return rt.running.ID()
}

// Ready marks f READY and prepends it to the ready queue, unless f is
// EXITING (in which case it is left alone). Callers must not double
// enqueue a fiber already sitting on the ready queue.
func (rt *PerThreadRuntime) Ready(f *Fiber) {
	if f.status == StatusExiting {
		return
	}
	f.status = StatusReady
	f.elem = rt.ready.PushFront(f)
}

// Yield re-enqueues the running fiber and switches to the next ready
// fiber. If the ready queue is empty it is a no-op and returns 0;
// otherwise it returns the number of other switches that happened while
// this fiber was descheduled.
//
// Unlike Ready, which prepends (so freshly-created or freshly-woken
// fibers are dispatched first), a fiber re-enqueueing itself here goes
// to the back of the queue: prepending the caller would put it right
// back at the front it is about to be popped from, resuming itself
// instead of giving any other ready fiber a turn. Appending to the back
// preserves round-robin progress among fibers that repeatedly yield.
func (rt *PerThreadRuntime) Yield() int64 {
	if rt.ready.Len() == 0 {
		return 0
	}
	n := rt.switched
	self := rt.running
	self.status = StatusReady
	self.elem = rt.ready.PushBack(self)
	rt.Switch()
	return rt.switched - n - 1
}

// Switch performs an unconditional cooperative switch: if the ready
// queue is non-empty it pops and switches into the head fiber; otherwise
// it switches back to the scheduler's origin context. Unlike Yield it
// never re-enqueues the caller — callers that already parked themselves
// elsewhere (e.g. an I/O wait list) use this directly.
func (rt *PerThreadRuntime) Switch() {
	current := rt.running

	el := rt.ready.Front()
	if el == nil {
		rt.swap(current, nil)
		return
	}
	rt.ready.Remove(el)
	next := el.Value.(*Fiber)
	next.elem = nil

	rt.running = next
	next.status = StatusRunning
	rt.switched++

	rt.swap(current, next)
}

// Exit marks the running fiber EXITING with the given code and switches
// away from it for the last time; compaction of the live table and
// enqueuing onto the dead cache happens inside that switch.
func (rt *PerThreadRuntime) Exit(code int) {
	rt.exitCode = code
	rt.running.status = StatusExiting
	rt.Switch()
}

// Kill sets target's KILLED flag. If target is the caller, it returns
// immediately without switching — the caller observes the flag at its
// next cancellation check. Otherwise it detaches both the caller and the
// target from whatever list they're on, re-enqueues the target, and
// yields so the target runs again soon; this never force-unwinds
// anything, it only delivers an asynchronous wake.
func (rt *PerThreadRuntime) Kill(target *Fiber) {
	current := rt.running

	target.flags |= FlagKilled
	if target == current {
		return
	}

	rt.detach(current)
	rt.detach(target)
	rt.Ready(target)
	rt.Yield()
}

// Killed reports whether f's KILLED flag is set.
func Killed(f *Fiber) bool {
	return f.flags&FlagKilled != 0
}

// ID returns a fiber's id, or 0 for nil.
func ID(f *Fiber) int64 {
	return f.ID()
}

// StatusOf returns a fiber's lifecycle status.
func StatusOf(f *Fiber) Status {
	return f.StatusOf()
}

// System marks the running fiber as infrastructure: it is excluded from
// Count from this point on. Used by I/O-driver fibers that should not be
// visible to user-facing "how many fibers are left" accounting.
func (rt *PerThreadRuntime) System() {
	f := rt.running
	if !f.sys {
		f.sys = true
		rt.count--
	}
}

// CountInc/CountDec let external hook code adjust the user-visible fiber
// count directly, for bookkeeping that doesn't correspond 1:1 with a
// Create/Exit pair (e.g. a single I/O-driver fiber standing in for many
// logical waiters).
func (rt *PerThreadRuntime) CountInc() { rt.count++ }
func (rt *PerThreadRuntime) CountDec() { rt.count-- }

// detach removes f from whichever of ready/dead it currently sits on, if
// any. Safe to call on a fiber that isn't on either list.
func (rt *PerThreadRuntime) detach(f *Fiber) {
	if f == nil || f.elem == nil {
		return
	}
	rt.ready.Remove(f.elem)
	rt.dead.Remove(f.elem)
	f.elem = nil
}

// swap performs the low-level context switch from "from" (nil meaning
// the runtime's own origin) to "to" (nil meaning origin). If from is an
// EXITING fiber, this first compacts it out of the live table and onto
// the dead cache, evicting enough of the cache first that pushing from
// onto it never leaves more than maxCache entries behind, and then
// hands off control without saving from's context again — that fiber's
// goroutine is expected to return right after this call, it will never
// be resumed.
func (rt *PerThreadRuntime) swap(from, to *Fiber) {
	exiting := from != nil && from.status == StatusExiting

	if exiting {
		rt.removeLive(from)
		if !from.sys {
			rt.count--
		}
		if n := rt.dead.Len() + 1 - maxCache; n > 0 {
			rt.kickDead(n)
		}
		from.elem = rt.dead.PushFront(from)
	}

	fromCtx, toCtx := rt.origin, rt.origin
	if from != nil {
		fromCtx = from.ctx
	}
	if to != nil {
		toCtx = to.ctx
	}

	if exiting {
		contextJump(toCtx)
		return
	}
	switchContext(fromCtx, toCtx)
}

// fiberTrampoline is what every fiber goroutine runs once first
// dispatched: it calls the entry function, frees local-storage slots,
// and exits.
func fiberTrampoline(f *Fiber) {
	f.entryFn(f, f.entryArg)

	for _, slot := range f.locals {
		if slot == nil {
			continue
		}
		if slot.freeFn != nil {
			slot.freeFn(slot.value)
		}
	}
	f.locals = nil
	f.nlocal = 0

	f.rt.Exit(0)
}
