package runtime

import "testing"

// TestYieldEmptyReady checks that a lone fiber calling Yield with
// nothing else on the ready queue observes 0 switches and simply runs
// to completion.
func TestYieldEmptyReady(t *testing.T) {
	rt := New()
	var got int64 = -1

	rt.Create(func(f *Fiber, _ interface{}) {
		got = rt.Yield()
	}, nil, 4096)

	rt.Schedule()

	if got != 0 {
		t.Errorf("Yield() = %d, want 0", got)
	}
	if rt.Ndead() != 0 {
		t.Errorf("Ndead() = %d, want 0 after Schedule drains dead queue", rt.Ndead())
	}
}

// TestRoundRobinLIFO creates three fibers A, B, C in that order, each
// recording its own label and yielding twice.
// Prepend+pop-head dispatch means creation order C,B,A fires first; each
// yield then rotates fairly among the three (see Yield's doc comment),
// reproducing the same C,B,A order on the second round.
func TestRoundRobinLIFO(t *testing.T) {
	rt := New()
	var order []string

	names := map[int64]string{}
	run := func(label string) EntryFunc {
		return func(f *Fiber, _ interface{}) {
			names[f.ID()] = label
			order = append(order, names[f.ID()])
			rt.Yield()
			order = append(order, names[f.ID()])
			rt.Yield()
		}
	}

	rt.Create(run("A"), nil, 4096)
	rt.Create(run("B"), nil, 4096)
	rt.Create(run("C"), nil, 4096)

	rt.Schedule()

	want := []string{"C", "B", "A", "C", "B", "A"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s (full: %v)", i, order[i], want[i], order)
		}
	}
}

// TestDeadCacheBounded creates many more fibers than MAX_CACHE, all
// exiting immediately in a single Schedule pass. The dead queue must
// never exceed maxCache at any switch-out point, and Schedule must
// fully drain it by the time it returns.
func TestDeadCacheBounded(t *testing.T) {
	rt := New()
	const total = 1500

	maxObserved := 0

	for i := 0; i < total; i++ {
		rt.Create(func(f *Fiber, _ interface{}) {
			if n := rt.Ndead(); n > maxObserved {
				maxObserved = n
			}
		}, nil, 4096)
	}

	rt.Schedule()

	if maxObserved > maxCache {
		t.Errorf("max observed dead queue length = %d, want <= %d", maxObserved, maxCache)
	}
	if rt.Ndead() != 0 {
		t.Errorf("Ndead() = %d, want 0 after Schedule drains", rt.Ndead())
	}
}

// TestStackReuseGrantsLargerStack exercises the create() contract: a
// stack popped from the dead cache that is already at least as large as
// requested is kept as-is, even if that means handing back a bigger
// stack than asked for. Recycling only happens within a single Schedule
// pass (Schedule drains and frees the whole dead queue before it
// returns), so both fibers are created from within the same run.
func TestStackReuseGrantsLargerStack(t *testing.T) {
	rt := New()
	var recycledSize int

	rt.Create(func(*Fiber, interface{}) {
		rt.Create(func(*Fiber, interface{}) {}, nil, 8192)
		rt.Yield() // let the bigger-stack fiber run to completion and land in dead

		b := rt.Create(func(*Fiber, interface{}) {}, nil, 1024)
		recycledSize = b.stack.size
	}, nil, 4096)

	rt.Schedule()

	if recycledSize < 8192 {
		t.Errorf("recycled stack size = %d, want >= 8192 (grown stacks are never shrunk)", recycledSize)
	}
}

// TestLocalsFreedOnExit checks that a fiber-local slot's registered
// free function is invoked exactly once with the stored value when the
// owning fiber exits.
func TestLocalsFreedOnExit(t *testing.T) {
	rt := New()

	type payload struct{ v int }
	want := &payload{v: 42}

	var freedWith interface{}
	freeCount := 0

	rt.Create(func(f *Fiber, _ interface{}) {
		key := 0
		rt.SetSpecific(&key, want, func(v interface{}) {
			freeCount++
			freedWith = v
		})
	}, nil, 4096)

	rt.Schedule()

	if freeCount != 1 {
		t.Fatalf("free function invoked %d times, want 1", freeCount)
	}
	if freedWith != interface{}(want) {
		t.Errorf("free function received %v, want %v", freedWith, want)
	}
}

// TestErrnoIsolation checks that two fibers each saving a distinct
// errno value later each observe only their own, never the other's.
func TestErrnoIsolation(t *testing.T) {
	rt := New()

	var aErrno, bErrno int

	rt.Create(func(f *Fiber, _ interface{}) {
		rt.SaveErrno(11)
		rt.Yield()
		aErrno = Errno(f)
	}, nil, 4096)

	rt.Create(func(f *Fiber, _ interface{}) {
		rt.SaveErrno(22)
		rt.Yield()
		bErrno = Errno(f)
	}, nil, 4096)

	rt.Schedule()

	if aErrno != 11 {
		t.Errorf("fiber A errno = %d, want 11", aErrno)
	}
	if bErrno != 22 {
		t.Errorf("fiber B errno = %d, want 22", bErrno)
	}
}

// TestKeepErrnoSuppressesSave exercises FlagSaveErrno: while set,
// SaveErrno must not overwrite the fiber's errno shadow.
func TestKeepErrnoSuppressesSave(t *testing.T) {
	rt := New()
	var observed int

	rt.Create(func(f *Fiber, _ interface{}) {
		rt.SaveErrno(5)
		KeepErrno(f, true)
		rt.SaveErrno(99)
		observed = Errno(f)
	}, nil, 4096)

	rt.Schedule()

	if observed != 5 {
		t.Errorf("errno = %d, want 5 (SaveErrno should have been suppressed)", observed)
	}
}
