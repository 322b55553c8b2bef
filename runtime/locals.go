package runtime

import "log"

// SetSpecific assigns a fiber-local storage slot on the running fiber.
// If *key is <= 0 a new key is minted (one past the runtime's current
// high-water mark) and written back through key; otherwise *key must
// name an already-issued key. value is retrievable later via
// GetSpecific, and freeFn — if non-nil — is invoked on value when the
// owning fiber exits.
//
// Overwriting an already-assigned key silently drops the previous slot
// without invoking its free function. This mirrors the reference
// implementation's acl_fiber_set_specific exactly and is a known leak
// risk, not an oversight here: callers that reuse a key are expected to
// either always store the same logical value or accept the leak.
func (rt *PerThreadRuntime) SetSpecific(key *int, value interface{}, freeFn func(interface{})) int {
	if key == nil {
		log.Printf("runtime: SetSpecific: key is nil")
		return -1
	}
	if rt.running == nil {
		log.Printf("runtime: SetSpecific: no running fiber")
		return -1
	}
	cur := rt.running

	if *key <= 0 {
		rt.nlocal++
		*key = rt.nlocal
	} else if *key > rt.nlocal {
		log.Printf("runtime: SetSpecific: invalid key %d > nlocal %d", *key, rt.nlocal)
		return -1
	}

	if cur.nlocal < rt.nlocal {
		cur.nlocal = rt.nlocal
		grown := make([]*localSlot, cur.nlocal)
		copy(grown, cur.locals)
		cur.locals = grown
	}

	cur.locals[*key-1] = &localSlot{value: value, freeFn: freeFn}
	return *key
}

// GetSpecific returns the value stored at key on the running fiber, or
// nil if the key is out of range or was never assigned.
func (rt *PerThreadRuntime) GetSpecific(key int) interface{} {
	if key <= 0 {
		return nil
	}
	cur := rt.running
	if cur == nil {
		log.Printf("runtime: GetSpecific: no running fiber")
		return nil
	}
	if key > cur.nlocal {
		log.Printf("runtime: GetSpecific: invalid key %d > nlocal %d", key, cur.nlocal)
		return nil
	}
	slot := cur.locals[key-1]
	if slot == nil {
		return nil
	}
	return slot.value
}
