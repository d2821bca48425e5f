package dispose

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

// Disposable is anything that can be released exactly once.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// Unit is the handle returned by every subscribe, bind and listen call.
// Dispose runs its cleanup actions once and removes the unit from the Bag it
// was registered in. The bag is referenced weakly: a collected custom bag does
// not keep the unit registered anywhere, and the unit does not keep the bag
// alive.
type Unit struct {
	key      Key
	bag      weak.Pointer[Bag]
	mu       sync.Mutex
	actions  []func()
	disposed atomic.Bool
	// anchor is the weak identity of the object a group belongs to.
	anchor any
}

func newUnit(key Key, bag *Bag, action func()) *Unit {
	u := &Unit{key: key}
	if bag != nil {
		u.bag = weak.Make(bag)
	}
	if action != nil {
		u.actions = []func(){action}
	}
	return u
}

// Func wraps fn in a detached Unit that belongs to no bag.
func Func(fn func()) *Unit {
	return newUnit(Key{}, nil, fn)
}

// Key returns the registry key the unit was created with.
func (u *Unit) Key() Key {
	return u.key
}

// IsDisposed reports whether Dispose has been called.
func (u *Unit) IsDisposed() bool {
	return u.disposed.Load()
}

// Dispose runs the cleanup actions on the first call and is a no-op after.
func (u *Unit) Dispose() {
	if !u.disposed.CompareAndSwap(false, true) {
		return
	}

	u.mu.Lock()
	actions := u.actions
	u.actions = nil
	u.mu.Unlock()

	for _, action := range actions {
		action()
	}

	if b := u.bag.Value(); b != nil {
		b.remove(u)
	}
}

// add appends a cleanup action, failing once the unit is disposed.
func (u *Unit) add(action func()) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.disposed.Load() {
		return false
	}
	u.actions = append(u.actions, action)
	return true
}

// TieTo disposes u once obj has been collected. Disposing u first cancels
// that. The cleanup only ever reaches u itself, so a later object allocated at
// the same address, and registered under the same key, is left alone.
func TieTo[T any](u *Unit, obj *T) {
	if u == nil || obj == nil {
		return
	}
	c := runtime.AddCleanup(obj, disposeUnit, weak.Make(u))
	if !u.add(c.Stop) {
		c.Stop()
	}
}

func disposeUnit(w weak.Pointer[Unit]) {
	if u := w.Value(); u != nil {
		u.Dispose()
	}
}
