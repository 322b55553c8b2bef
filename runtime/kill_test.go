package runtime

import "testing"

// TestKill has fiber A create fiber B, which loops yielding while not
// killed; A kills B and yields. B must observe KILLED at its next poll
// and exit, and the runtime's dead accounting must reflect it once
// Schedule drains.
func TestKill(t *testing.T) {
	rt := New()

	var bRan, bSawKilled bool
	var bFiber *Fiber

	rt.Create(func(f *Fiber, _ interface{}) {
		bFiber = rt.Create(func(b *Fiber, _ interface{}) {
			for !Killed(b) {
				bRan = true
				rt.Yield()
			}
			bSawKilled = true
		}, nil, 4096)

		rt.Yield() // let B start running at least once

		rt.Kill(bFiber)
	}, nil, 4096)

	rt.Schedule()

	if !bRan {
		t.Fatal("fiber B never ran before being killed")
	}
	if !bSawKilled {
		t.Fatal("fiber B never observed KILLED")
	}
	if !Killed(bFiber) {
		t.Error("Killed(b) = false after kill, want true")
	}
	if rt.Ndead() != 0 {
		t.Errorf("Ndead() = %d, want 0 (Schedule drains after B exits)", rt.Ndead())
	}
}

// TestKillSelfIsNoSwitch exercises the self-kill fast path: killing the
// calling fiber only sets the flag and returns without switching away.
func TestKillSelfIsNoSwitch(t *testing.T) {
	rt := New()
	var reachedAfterKill, sawKilled bool

	rt.Create(func(f *Fiber, _ interface{}) {
		rt.Kill(f)
		reachedAfterKill = true
		sawKilled = Killed(f)
	}, nil, 4096)

	rt.Schedule()

	if !reachedAfterKill {
		t.Error("self-kill switched away instead of returning immediately")
	}
	if !sawKilled {
		t.Error("Killed(self) = false after self-kill")
	}
}
