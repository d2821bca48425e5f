package toolkit

import (
	"fmt"
	"sync"
)

// GestureKind names the built in gesture recognizers.
type GestureKind int

const (
	Tap GestureKind = iota
	Pinch
	Rotation
	Swipe
	Pan
	ScreenEdgePan
	LongPress
)

func (k GestureKind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case Pinch:
		return "Pinch"
	case Rotation:
		return "Rotation"
	case Swipe:
		return "Swipe"
	case Pan:
		return "Pan"
	case ScreenEdgePan:
		return "ScreenEdgePan"
	case LongPress:
		return "LongPress"
	default:
		return fmt.Sprintf("GestureKind(%d)", int(k))
	}
}

// Continuous reports whether the gesture reports Changed while in flight.
func (k GestureKind) Continuous() bool {
	switch k {
	case Pinch, Rotation, Pan, ScreenEdgePan, LongPress:
		return true
	default:
		return false
	}
}

// GestureState is the recognizer state machine.
type GestureState int

const (
	Possible GestureState = iota
	Began
	Changed
	Ended
	Cancelled
	Failed
)

func (s GestureState) String() string {
	switch s {
	case Possible:
		return "Possible"
	case Began:
		return "Began"
	case Changed:
		return "Changed"
	case Ended:
		return "Ended"
	case Cancelled:
		return "Cancelled"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("GestureState(%d)", int(s))
	}
}

// Recognizer turns touches on a view into gesture state transitions.
type Recognizer interface {
	Kind() GestureKind
	State() GestureState
	SetState(state GestureState)
	// AddStateListener calls fn on every state transition. The returned func
	// removes the listener.
	AddStateListener(fn func(GestureState)) (remove func())
}

// GestureRecognizer is the in-memory Recognizer.
type GestureRecognizer struct {
	kind GestureKind

	mu        sync.Mutex
	state     GestureState
	seq       uint64
	listeners map[uint64]func(GestureState)
}

// NewRecognizer creates a recognizer for kind in the Possible state.
func NewRecognizer(kind GestureKind) *GestureRecognizer {
	return &GestureRecognizer{
		kind:      kind,
		listeners: map[uint64]func(GestureState){},
	}
}

// Kind returns the gesture kind.
func (r *GestureRecognizer) Kind() GestureKind {
	return r.kind
}

// State returns the current state.
func (r *GestureRecognizer) State() GestureState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SetState moves to state and notifies listeners.
func (r *GestureRecognizer) SetState(state GestureState) {
	r.mu.Lock()
	r.state = state
	fns := make([]func(GestureState), 0, len(r.listeners))
	for id := uint64(1); id <= r.seq; id++ {
		if fn, ok := r.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// AddStateListener implements Recognizer.
func (r *GestureRecognizer) AddStateListener(fn func(GestureState)) func() {
	r.mu.Lock()
	r.seq++
	id := r.seq
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// ListenerCount returns the number of state listeners.
func (r *GestureRecognizer) ListenerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Recognize plays a complete gesture: Began, Changed, Ended for continuous
// kinds and straight to Ended for discrete ones. It ends back in Possible.
func (r *GestureRecognizer) Recognize() {
	if r.kind.Continuous() {
		r.SetState(Began)
		r.SetState(Changed)
	}
	r.SetState(Ended)
	r.SetState(Possible)
}
