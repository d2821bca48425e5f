// Package event wires control events and gestures to actions. Event runs a
// plain action; Eventable runs an action that delivers a payload into an
// observable value.
package event

import (
	"context"
	"runtime"
	"weak"

	"github.com/delaneyj/bindable/dispose"
	"github.com/delaneyj/bindable/toolkit"
)

type options struct {
	bag *dispose.Bag
}

// Option configures an emitter.
type Option func(*options)

// WithBag registers the emitter's handles in bag instead of dispose.Shared.
func WithBag(bag *dispose.Bag) Option {
	return func(o *options) {
		if bag != nil {
			o.bag = bag
		}
	}
}

// FromContext registers the emitter's handles in the bag carried by ctx.
func FromContext(ctx context.Context) Option {
	return WithBag(dispose.FromContext(ctx))
}

func buildOptions(opts []Option) options {
	o := options{bag: dispose.Shared()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// emitter is the part Event and Eventable share: an owner id in a bag, and
// the listener plumbing that calls fire.
type emitter struct {
	owner dispose.OwnerID
	bag   weak.Pointer[dispose.Bag]
	fire  func()
}

type ownerRef struct {
	owner dispose.OwnerID
	bag   weak.Pointer[dispose.Bag]
}

func releaseOwner(ref ownerRef) {
	if bag := ref.bag.Value(); bag != nil {
		bag.DisposeOwner(ref.owner)
	}
}

// setup initializes e. fire must reference the embedding emitter weakly, it ends
// up in listeners held by controls.
func (e *emitter) setup(o options, fire func()) {
	e.owner = dispose.NewOwner()
	e.bag = weak.Make(o.bag)
	e.fire = fire
	runtime.AddCleanup(e, releaseOwner, ownerRef{owner: e.owner, bag: e.bag})
}

// Owner returns the id the emitter registers its handles under.
func (e *emitter) Owner() dispose.OwnerID {
	return e.owner
}

// On fires the emitter whenever src fires any of kinds. Listening to the
// same source and kinds again replaces the previous listener.
func (e *emitter) On(src toolkit.EventSource, kinds toolkit.EventKind) *dispose.Unit {
	fire := e.fire
	remove := src.AddListener(kinds, func(toolkit.EventKind) {
		fire()
	})
	slot := dispose.SlotFor(src, "event:"+kinds.String())
	return e.bag.Value().Register(e.owner, slot, remove)
}

// OnGesture attaches a new recognizer of kind to view and fires the emitter
// each time it recognizes.
func (e *emitter) OnGesture(kind toolkit.GestureKind, view toolkit.View) *dispose.Unit {
	return e.OnRecognizer(toolkit.NewRecognizer(kind), view)
}

// OnRecognizer attaches r to view, enables user interaction on the view and
// fires the emitter when r reaches Ended, or Changed for continuous kinds.
// The handle detaches r and holds view until disposed.
func (e *emitter) OnRecognizer(r toolkit.Recognizer, view toolkit.View) *dispose.Unit {
	view.AddRecognizer(r)
	view.SetUserInteractionEnabled(true)

	fire := e.fire
	continuous := r.Kind().Continuous()
	removeState := r.AddStateListener(func(s toolkit.GestureState) {
		if s == toolkit.Ended || (continuous && s == toolkit.Changed) {
			fire()
		}
	})

	slot := dispose.SlotFor(r, "gesture")
	return e.bag.Value().Register(e.owner, slot, func() {
		removeState()
		view.RemoveRecognizer(r)
	})
}

// Dispose releases every handle of the emitter.
func (e *emitter) Dispose() {
	if bag := e.bag.Value(); bag != nil {
		bag.DisposeOwner(e.owner)
	}
}
