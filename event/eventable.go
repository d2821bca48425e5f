package event

import (
	"sync"
	"weak"

	"github.com/delaneyj/bindable/bindable"
	"github.com/delaneyj/bindable/dispose"
)

// Eventable is an Event whose action delivers a payload. Each delivery
// updates an internal Bindable, so the payload can be observed and bound like
// any other value. The action decides when, and how many times, to call
// deliver; it may do so after Signal returns.
type Eventable[T any] struct {
	emitter

	mu     sync.RWMutex
	action func(deliver func(T))
	value  *bindable.Bindable[T]
}

// NewEventable creates an Eventable with no payload yet.
func NewEventable[T any](action func(deliver func(T)), opts ...Option) *Eventable[T] {
	o := buildOptions(opts)
	return newEventable(bindable.New[T](bindable.WithBag(o.bag)), action, o)
}

// NewEventableOf creates an Eventable whose payload starts at initial.
func NewEventableOf[T any](initial T, action func(deliver func(T)), opts ...Option) *Eventable[T] {
	o := buildOptions(opts)
	return newEventable(bindable.Of(initial, bindable.WithBag(o.bag)), action, o)
}

func newEventable[T any](value *bindable.Bindable[T], action func(deliver func(T)), o options) *Eventable[T] {
	e := &Eventable[T]{action: action, value: value}
	we := weak.Make(e)
	e.emitter.setup(o, func() {
		if e := we.Value(); e != nil {
			e.Signal()
		}
	})
	return e
}

// SetAction replaces the action.
func (e *Eventable[T]) SetAction(action func(deliver func(T))) {
	e.mu.Lock()
	e.action = action
	e.mu.Unlock()
}

// Signal runs the action and returns the payload view.
func (e *Eventable[T]) Signal() *bindable.ReadOnly[T] {
	e.mu.RLock()
	action := e.action
	e.mu.RUnlock()

	if action != nil {
		wv := weak.Make(e.value)
		action(func(v T) {
			if value := wv.Value(); value != nil {
				value.Update(v)
			}
		})
	}
	return e.value.ReadOnly()
}

// AsBindable returns the payload view without signalling.
func (e *Eventable[T]) AsBindable() *bindable.ReadOnly[T] {
	return e.value.ReadOnly()
}

// Observe calls fn with every delivered payload.
func (e *Eventable[T]) Observe(fn func(T)) *dispose.Unit {
	return e.value.Observe(bindable.Always(), fn)
}

// Dispose releases the emitter's handles and every subscription to the
// payload.
func (e *Eventable[T]) Dispose() {
	e.emitter.Dispose()
	e.value.Dispose()
}
