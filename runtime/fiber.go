package runtime

import "container/list"

// Status is the lifecycle state of a Fiber.
type Status int32

const (
	// StatusReady means the fiber sits on the ready queue, eligible for
	// dispatch.
	StatusReady Status = iota
	// StatusRunning means the fiber is the one currently executing.
	StatusRunning
	// StatusSuspend means an external hook has parked the fiber off the
	// ready queue (e.g. waiting on I/O); it is responsible for calling
	// Ready to wake it again. The hook itself is responsible for setting
	// this before switching away (see hook.go's TimerHook.ParkCurrent) —
	// the core never parks a fiber on its own.
	StatusSuspend
	// StatusExiting means the fiber has returned from its entry function
	// or called Exit; it will never run again.
	StatusExiting
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusRunning:
		return "RUNNING"
	case StatusSuspend:
		return "SUSPEND"
	case StatusExiting:
		return "EXITING"
	default:
		return "UNKNOWN"
	}
}

// Flag is a bitset of per-fiber behavioral markers.
type Flag uint32

const (
	// FlagSaveErrno suppresses SaveErrno overwriting the fiber's errno
	// shadow; a caller sets this to preserve a previously saved value
	// across a sequence of syscalls.
	FlagSaveErrno Flag = 1 << iota
	// FlagKilled is set by Kill; user and blocker code polls Killed at
	// suspension points. Kill never force-unwinds.
	FlagKilled
)

// EntryFunc is the function a Fiber runs. arg is the opaque value passed
// to Create.
type EntryFunc func(f *Fiber, arg interface{})

// Fiber is a stackful, cooperatively scheduled task with its own local
// storage, saved context, and fiber-private errno shadow.
type Fiber struct {
	id     int64
	status Status
	flags  Flag

	stack *stackBuffer
	ctx   *fiberContext

	entryFn  EntryFunc
	entryArg interface{}

	errnum int

	locals []*localSlot
	nlocal int

	// slot is this fiber's index in PerThreadRuntime.live; kept in sync
	// so removal is O(1) swap-with-last.
	slot int
	// sys marks infrastructure fibers (e.g. an I/O driver) that are
	// excluded from the user-visible Count.
	sys bool

	// elem is this fiber's node on whichever of ready/dead it currently
	// sits on, or nil if it is running, suspended, or untracked. A
	// fiber is never on more than one of those lists at once.
	elem *list.Element

	rt *PerThreadRuntime
}

// ID returns the fiber's identifier, unique within the lifetime of the
// runtime that created it. The sentinel 0 means "no fiber" and is also
// returned for a nil *Fiber.
func (f *Fiber) ID() int64 {
	if f == nil {
		return 0
	}
	return f.id
}

// StatusOf returns the fiber's current lifecycle status.
func (f *Fiber) StatusOf() Status {
	return f.status
}

// localSlot is one fiber-local storage cell: an opaque value plus the
// cleanup invoked on it when the owning fiber exits.
type localSlot struct {
	value  interface{}
	freeFn func(interface{})
}
