package runtime

import "log"

// Schedule is the runtime's dispatch loop: pop the head of the ready
// queue, switch into it, and repeat until no fiber is ready. Returning
// from Schedule means the ready queue is empty and every exited fiber
// has been drained and freed.
//
// Schedule toggles hook-layer integration on for its duration: from the
// moment it starts until it returns, an external syscall-hooking layer
// is expected to consult this runtime's SaveErrno/ErrnoLocation/park-
// unpark contract (see errno.go and hook.go).
func (rt *PerThreadRuntime) Schedule() {
	rt.hookEnabled = true

	for {
		el := rt.ready.Front()
		if el == nil {
			log.Println("------- no fibers now --------")
			break
		}
		rt.ready.Remove(el)
		f := el.Value.(*Fiber)
		f.elem = nil

		rt.running = f
		f.status = StatusRunning
		rt.switched++

		rt.swap(nil, f)
		rt.running = nil
	}

	for {
		f := rt.popDeadStack()
		if f == nil {
			break
		}
		freeFiber(f)
	}

	rt.hookEnabled = false
}

// HookEnabled reports whether Schedule is currently running (and
// therefore whether an external hook layer should be consulting this
// runtime).
func (rt *PerThreadRuntime) HookEnabled() bool {
	return rt.hookEnabled
}
