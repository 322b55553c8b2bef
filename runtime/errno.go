package runtime

// SetErrno sets f's private errno shadow directly.
func SetErrno(f *Fiber, errnum int) {
	f.errnum = errnum
}

// Errno returns f's private errno shadow.
func Errno(f *Fiber) int {
	return f.errnum
}

// KeepErrno toggles FlagSaveErrno on f: while set, SaveErrno is a no-op
// for f, letting a caller preserve a previously saved errno across a
// sequence of syscalls it knows will clobber the real one. Per the
// reference implementation, the flag is left set on an early return from
// SaveErrno — whether that was intentional is an open question there
// too; this preserves the same behavior rather than guessing at a fix.
func KeepErrno(f *Fiber, yes bool) {
	if yes {
		f.flags |= FlagSaveErrno
	} else {
		f.flags &^= FlagSaveErrno
	}
}

// SaveErrno is called by hook code immediately after a failing syscall,
// passing the real errno value it observed. If the running fiber (or the
// origin, when no fiber is running) has FlagSaveErrno set, this is a
// no-op; otherwise errnum is copied into that context's private shadow.
func (rt *PerThreadRuntime) SaveErrno(errnum int) {
	cur := rt.running
	if cur == nil {
		if rt.originSaveErrno {
			return
		}
		rt.originErrno = errnum
		return
	}
	if cur.flags&FlagSaveErrno != 0 {
		return
	}
	cur.errnum = errnum
}

// ErrnoLocation returns the address of the running fiber's errno shadow,
// or the origin's when no fiber is running. A hooked syscall layer calls
// this (when HookEnabled reports true) to give each fiber the
// errno-isolation a real per-fiber errno location override provides;
// when hooking is disabled the caller is expected to fall back to the
// OS's own errno mechanism itself, since Go programs don't expose a
// single mutable process errno the way a libc override would.
func (rt *PerThreadRuntime) ErrnoLocation() *int {
	if rt.running != nil {
		return &rt.running.errnum
	}
	return &rt.originErrno
}

// SetOriginKeepErrno mirrors KeepErrno for the scheduler's own origin
// context, which has no *Fiber to hang a flag off of.
func (rt *PerThreadRuntime) SetOriginKeepErrno(yes bool) {
	rt.originSaveErrno = yes
}
