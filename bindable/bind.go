package bindable

import (
	"weak"

	"github.com/delaneyj/bindable/dispose"
	"github.com/delaneyj/bindable/toolkit"
)

// Mode is the direction of a binding.
type Mode uint8

const (
	// OneWay pushes source changes into the target.
	OneWay Mode = iota
	// TwoWay also writes the target back into the source when the target
	// fires EditingChanged or ValueChanged.
	TwoWay
)

func (m Mode) String() string {
	if m == TwoWay {
		return "two-way"
	}
	return "one-way"
}

// TwoWayEvents are the control events a two way binding reads the target on.
const TwoWayEvents = toolkit.EditingChanged | toolkit.ValueChanged

// Binding describes how a source value flows into a field of a target:
// value, Source.Get, Map, Field.Set, then Done with the mapped value.
type Binding[T, F, X, R any] struct {
	// Source selects the part of the value to bind. The zero lens means the
	// whole value and requires F to be T.
	Source Lens[T, F]
	Target *X
	Field  Field[X, R]
	Mode   Mode
	// Map defaults to identity when F and R are the same type.
	Map func(F) R
	// Unmap converts the target field back for TwoWay bindings. It defaults
	// to identity when F and R are the same type.
	Unmap func(R) F
	Span  Span
	// Bag overrides the bag of the source container.
	Bag  *dispose.Bag
	Done func(R)
}

// Bind binds src into a field of a target. The slot is derived from the
// target and field name, so binding the same pair again disposes the previous
// binding first. The target is held weakly: once it is collected the binding
// is disposed, and a notification that finds it gone disposes the binding
// without spending its span.
func Bind[T, F, X, R any](src Source[T], bnd Binding[T, F, X, R]) *dispose.Unit {
	if src == nil {
		panic("bindable: bind without a source")
	}
	if bnd.Target == nil {
		panic("bindable: bind without a target")
	}
	if bnd.Field.Set == nil {
		panic("bindable: bind to field " + bnd.Field.Name + " without Set")
	}

	lens := bnd.Source
	if lens.Get == nil {
		get := identityAs[T, F]()
		if get == nil {
			panic("bindable: bind needs a source lens when the field type differs from the value type")
		}
		lens.Get = get
		if set, ok := any(Self[T]().Set).(func(T, F) T); ok && lens.Set == nil {
			lens.Set = set
		}
	}

	mapf := bnd.Map
	if mapf == nil {
		if mapf = identityAs[F, R](); mapf == nil {
			panic("bindable: bind to field " + bnd.Field.Name + " needs Map")
		}
	}

	b := src.source()
	bag := bnd.Bag
	if bag == nil {
		bag = b.Bag()
	}

	target := bnd.Target
	wt := weak.Make(target)
	slot := dispose.SlotFor(target, bnd.Field.Name)
	id := b.nextID()

	var release func()
	if bnd.Mode == TwoWay {
		release = twoWay(b, id, wt, lens, bnd)
	}

	set, done := bnd.Field.Set, bnd.Done
	u := b.subscribe(bag, slot, id, bnd.Span, func(v T) bool {
		t := wt.Value()
		if t == nil {
			return false
		}
		r := mapf(lens.Get(v))
		set(t, r)
		if done != nil {
			done(r)
		}
		return true
	}, release)
	dispose.TieTo(u, target)
	return u
}

// twoWay installs the write back listener on the target. Targets that fire
// no control events get no listener and the binding behaves as OneWay.
func twoWay[T, F, X, R any](b *Bindable[T], id uint64, wt weak.Pointer[X], lens Lens[T, F], bnd Binding[T, F, X, R]) func() {
	if bnd.Field.Get == nil {
		panic("bindable: two way bind to field " + bnd.Field.Name + " without Get")
	}
	if lens.Set == nil {
		panic("bindable: two way bind through lens " + lens.Name + " without Set")
	}
	unmap := bnd.Unmap
	if unmap == nil {
		if unmap = identityAs[R, F](); unmap == nil {
			panic("bindable: two way bind to field " + bnd.Field.Name + " needs Unmap")
		}
	}

	src, ok := any(bnd.Target).(toolkit.EventSource)
	if !ok {
		return nil
	}

	wb := weak.Make(b)
	get := bnd.Field.Get
	return src.AddListener(TwoWayEvents, func(toolkit.EventKind) {
		b, t := wb.Value(), wt.Value()
		if b == nil || t == nil {
			return
		}
		part := unmap(get(t))

		b.mu.Lock()
		defer b.mu.Unlock()
		b.updateExcept(lens.Set(b.value, part), id)
	})
}
