package runtime

import "testing"

// TestSetErrnoAndErrno checks the direct get/set pair against a fiber's
// private errno shadow, independent of SaveErrno's suppression logic.
func TestSetErrnoAndErrno(t *testing.T) {
	rt := New()
	var f *Fiber

	rt.Create(func(fb *Fiber, _ interface{}) {
		f = fb
		SetErrno(fb, 7)
	}, nil, 4096)

	rt.Schedule()

	if got := Errno(f); got != 7 {
		t.Errorf("Errno() = %d, want 7", got)
	}
}

// TestOriginErrnoSaveAndKeep checks SaveErrno/ErrnoLocation/
// SetOriginKeepErrno against the scheduler's own origin context, the
// analog of KeepErrno/SaveErrno for code that runs before any fiber has
// been dispatched (or after Schedule has returned).
func TestOriginErrnoSaveAndKeep(t *testing.T) {
	rt := New()

	rt.SaveErrno(5)
	if got := *rt.ErrnoLocation(); got != 5 {
		t.Fatalf("origin errno = %d, want 5", got)
	}

	rt.SetOriginKeepErrno(true)
	rt.SaveErrno(99)
	if got := *rt.ErrnoLocation(); got != 5 {
		t.Errorf("origin errno = %d, want 5 (SaveErrno should have been suppressed)", got)
	}

	rt.SetOriginKeepErrno(false)
	rt.SaveErrno(99)
	if got := *rt.ErrnoLocation(); got != 99 {
		t.Errorf("origin errno = %d, want 99 once keep-errno is cleared", got)
	}
}
