// Package runtime implements a per-thread cooperative fiber scheduler: a
// runtime runs many independently-stacked fibers one at a time through
// explicit, voluntary context switches.
//
// Every goroutine that calls Current gets its own independent
// PerThreadRuntime, lazily constructed on that first call and pinned to the
// underlying OS thread with runtime.LockOSThread. Each fiber runs on a
// goroutine of its own, and those goroutines are not locked to that OS
// thread, so a fiber may execute on a different OS thread than the
// goroutine that owns its runtime. Fibers created against
// one runtime never run on another: there is no work stealing, no
// preemption, and no locking inside the scheduler itself, because only one
// fiber (or the runtime's own "origin" context) is ever logically active
// at a time.
//
// Go gives user code no access to a raw stack pointer or instruction
// pointer, so the context-switch primitive described by the fiber
// specification this package implements (save/jump over callee-saved
// registers) is expressed instead as one unbuffered rendezvous channel per
// fiber (and one for the runtime's origin context): jumping into a fiber
// unblocks its goroutine, and that goroutine blocks on its own channel
// again the moment it yields or switches away, and returns once it exits.
// Exactly one goroutine runs at a time, which is the invariant the
// original register-level primitive exists to provide.
//
// Floating-point and vector state is never an issue here — Go goroutines
// don't expose it — but every other invariant (LIFO ready-queue order for
// newly created and woken fibers, bounded dead-fiber cache, O(1) live-slot
// removal, per-fiber errno isolation, typed local storage) is preserved.
// Yield is the one exception to LIFO order: it re-enqueues its caller at
// the back of the ready queue.
package runtime
