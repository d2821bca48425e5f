package event

import (
	"sync"
	"weak"
)

// Event runs an action when signalled, either directly or by a control event
// or gesture it listens to.
type Event struct {
	emitter

	mu     sync.RWMutex
	action func()
}

// New creates an Event running action. action may be nil and set later.
func New(action func(), opts ...Option) *Event {
	e := &Event{action: action}
	we := weak.Make(e)
	e.emitter.setup(buildOptions(opts), func() {
		if e := we.Value(); e != nil {
			e.Signal()
		}
	})
	return e
}

// SetAction replaces the action.
func (e *Event) SetAction(action func()) {
	e.mu.Lock()
	e.action = action
	e.mu.Unlock()
}

// Signal runs the action.
func (e *Event) Signal() {
	e.mu.RLock()
	action := e.action
	e.mu.RUnlock()

	if action != nil {
		action()
	}
}
