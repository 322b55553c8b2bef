package runtime

// fiberContext is the Go-native stand-in for the register/stack-pointer
// save area the fiber specification's context primitive operates on (see
// doc.go). It is a single-slot rendezvous: at most one pending resume is
// ever outstanding, because a fiber is only ever switched into by the
// single active context in the whole runtime.
type fiberContext struct {
	resume chan struct{}
}

func newFiberContext() *fiberContext {
	return &fiberContext{resume: make(chan struct{})}
}

// contextSave blocks the calling goroutine until something calls
// contextJump on this same context. This is the "save(ctx)" half of the
// primitive: control parks here and resumes here, exactly where it left
// off, with no stack unwinding.
func contextSave(ctx *fiberContext) {
	<-ctx.resume
}

// contextJump unblocks a goroutine previously parked in contextSave on
// ctx. It does not wait for that goroutine to do anything; the caller is
// expected to itself call contextSave immediately after, which is what
// switchContext does.
func contextJump(ctx *fiberContext) {
	ctx.resume <- struct{}{}
}

// switchContext performs an unconditional handoff: jump into to, then
// save the caller's own position in from so a later contextJump(from)
// resumes exactly here. Precisely one of from/to's goroutines is
// runnable at any instant, which reproduces the single-active-context
// invariant the original register-level switch primitive exists to
// provide, without any lock.
func switchContext(from, to *fiberContext) {
	contextJump(to)
	contextSave(from)
}
