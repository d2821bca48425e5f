// Package toolkit holds the widget contracts the binding layer consumes and a
// set of in-memory widgets implementing them.
package toolkit

import (
	"slices"
	"strings"
	"sync"
)

// EventKind is a bit set of control events.
type EventKind uint32

const (
	TouchDown EventKind = 1 << iota
	TouchUpInside
	TouchUpOutside
	ValueChanged
	EditingDidBegin
	EditingChanged
	EditingDidEnd
	PrimaryActionTriggered
)

// AllEvents matches every control event.
const AllEvents = TouchDown | TouchUpInside | TouchUpOutside | ValueChanged |
	EditingDidBegin | EditingChanged | EditingDidEnd | PrimaryActionTriggered

var eventNames = []string{
	"TouchDown",
	"TouchUpInside",
	"TouchUpOutside",
	"ValueChanged",
	"EditingDidBegin",
	"EditingChanged",
	"EditingDidEnd",
	"PrimaryActionTriggered",
}

// Has reports whether any bit of other is set in k.
func (k EventKind) Has(other EventKind) bool {
	return k&other != 0
}

func (k EventKind) String() string {
	if k == 0 {
		return "None"
	}
	var parts []string
	for i, name := range eventNames {
		if k&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// EventSource is anything control events can be observed on.
type EventSource interface {
	// AddListener calls fn with the matching subset of kinds each time one of
	// them fires. The returned func removes the listener.
	AddListener(kinds EventKind, fn func(EventKind)) (remove func())
}

// Control is an EventSource that can fire its own events.
type Control interface {
	EventSource
	SendActions(kinds EventKind)
}

type listener struct {
	id    uint64
	kinds EventKind
	fn    func(EventKind)
}

// Dispatcher is the listener registry embedded by every control. The remove
// funcs it hands out reference the registry only, never the control.
type Dispatcher struct {
	once sync.Once
	reg  *registry
}

type registry struct {
	mu        sync.Mutex
	seq       uint64
	listeners []listener
}

func (d *Dispatcher) registry() *registry {
	d.once.Do(func() {
		d.reg = &registry{}
	})
	return d.reg
}

// AddListener implements EventSource.
func (d *Dispatcher) AddListener(kinds EventKind, fn func(EventKind)) func() {
	reg := d.registry()
	reg.mu.Lock()
	reg.seq++
	id := reg.seq
	reg.listeners = append(reg.listeners, listener{id: id, kinds: kinds, fn: fn})
	reg.mu.Unlock()

	return func() {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		reg.listeners = slices.DeleteFunc(reg.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

// SendActions fires kinds to every listener registered for any of them.
// Listeners run outside the registry lock and may add or remove listeners.
func (d *Dispatcher) SendActions(kinds EventKind) {
	reg := d.registry()
	reg.mu.Lock()
	snapshot := slices.Clone(reg.listeners)
	reg.mu.Unlock()

	for _, l := range snapshot {
		if matched := l.kinds & kinds; matched != 0 {
			l.fn(matched)
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Dispatcher) ListenerCount() int {
	reg := d.registry()
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.listeners)
}
