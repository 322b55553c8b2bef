package runtime

import (
	"container/heap"
	"time"
)

// TimerHook is a minimal timer-wheel style external collaborator built
// entirely on the handful of primitives the fiber core exposes to hook
// layers (Running, System, Ready, Switch, Yield, Count) — it never reaches into
// PerThreadRuntime's unexported fields. A timer wheel is explicitly
// listed among the out-of-scope external collaborators the core only
// needs to expose a contract to, so this lives alongside the core
// rather than inside it, the same relationship a real epoll-backed I/O
// hook layer would have.
//
// It also doubles as the worked example for the park_current/unpark
// pair described as the syscall-interposition boundary: ParkCurrent
// removes the calling fiber from the ready queue and records it against
// a deadline, Unpark (Ready) is how it comes back.
type TimerHook struct {
	rt     *PerThreadRuntime
	timers timerQueue
}

// NewTimerHook creates a timer hook bound to rt. Call
// rt.Create(hook.Drive, nil, size) once to give it a driver fiber before
// parking anything on it.
func NewTimerHook(rt *PerThreadRuntime) *TimerHook {
	h := &TimerHook{rt: rt}
	heap.Init(&h.timers)
	return h
}

// ParkCurrent parks the calling fiber until d has elapsed, then switches
// away. Nothing wakes the fiber back up unless a Drive fiber is also
// running against the same runtime.
func (h *TimerHook) ParkCurrent(d time.Duration) {
	f := h.rt.Running()
	if f == nil {
		return
	}
	heap.Push(&h.timers, &timerEntry{deadline: time.Now().Add(d), fiber: f})
	f.status = StatusSuspend
	h.rt.Switch()
}

// Unpark re-enqueues a fiber this hook (or any other caller) previously
// parked.
func (h *TimerHook) Unpark(f *Fiber) {
	h.rt.Ready(f)
}

// Drive is the entry function for this hook's driver fiber: it polls
// pending deadlines, unparks whatever has come due, and yields between
// checks so user fibers keep making progress. It marks itself a system
// fiber so it is excluded from Count, and returns once there is nothing
// left to wait for and no user fiber is alive.
func (h *TimerHook) Drive(f *Fiber, _ interface{}) {
	h.rt.System()
	for {
		now := time.Now()
		for h.timers.Len() > 0 && !h.timers[0].deadline.After(now) {
			e := heap.Pop(&h.timers).(*timerEntry)
			h.Unpark(e.fiber)
		}
		if h.timers.Len() == 0 && h.rt.Count() == 0 {
			return
		}
		h.rt.Yield()
	}
}

// Pending returns the number of timers still waiting to fire.
func (h *TimerHook) Pending() int {
	return h.timers.Len()
}

// timerEntry and timerQueue are a container/heap min-heap by deadline,
// the same shape the original event-loop timer wheel used, repurposed
// here to park/unpark fibers instead of invoking callbacks directly.
type timerEntry struct {
	deadline time.Time
	fiber    *Fiber
	index    int
}

type timerQueue []*timerEntry

func (q timerQueue) Len() int           { return len(q) }
func (q timerQueue) Less(i, j int) bool { return q[i].deadline.Before(q[j].deadline) }
func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x interface{}) {
	e := x.(*timerEntry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *timerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
