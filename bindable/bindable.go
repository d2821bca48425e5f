// Package bindable provides observable values that push changes into
// subscribers and bound widget fields, with every subscription tracked in a
// dispose.Bag under the owning container.
package bindable

import (
	"context"
	"runtime"
	"slices"
	"sync/atomic"
	"weak"

	"github.com/delaneyj/bindable/dispose"
)

// Source is anything that can be observed and bound: a *Bindable or its
// *ReadOnly view.
type Source[T any] interface {
	Value() (T, bool)
	Observe(span Span, fn func(T)) *dispose.Unit
	source() *Bindable[T]
}

type subscriber[T any] struct {
	id     uint64
	slot   dispose.SlotID
	unit   *dispose.Unit
	notify func(T)
}

// compactAt is the order length below which dead ids are left in place.
const compactAt = 32

// Bindable holds a value that may be absent and notifies subscribers on every
// update. Subscribers are registered in the container's bag under its owner
// id, so Dispose, or the container being collected, releases all of them.
type Bindable[T any] struct {
	mu      dispose.RecursiveMutex
	value   T
	present bool
	// subs indexes live subscribers by id. order keeps subscription order
	// and may still hold ids of removed subscribers until it is compacted.
	subs  map[uint64]subscriber[T]
	order []uint64

	owner dispose.OwnerID
	bag   weak.Pointer[dispose.Bag]
	seq   atomic.Uint64
}

type options struct {
	bag *dispose.Bag
}

// Option configures a Bindable.
type Option func(*options)

// WithBag registers the container's subscriptions in bag instead of
// dispose.Shared.
func WithBag(bag *dispose.Bag) Option {
	return func(o *options) {
		if bag != nil {
			o.bag = bag
		}
	}
}

// FromContext registers the container's subscriptions in the bag carried by
// ctx, see dispose.WithBag.
func FromContext(ctx context.Context) Option {
	return WithBag(dispose.FromContext(ctx))
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

// New creates a container with no value.
func New[T any](opts ...Option) *Bindable[T] {
	o := options{bag: dispose.Shared()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Bindable[T]{
		owner: dispose.NewOwner(),
		bag:   weak.Make(o.bag),
	}
	runtime.AddCleanup(b, releaseOwner, ownerRef{owner: b.owner, bag: b.bag})
	return b
}

// Of creates a container holding v.
func Of[T any](v T, opts ...Option) *Bindable[T] {
	b := New[T](opts...)
	b.value, b.present = v, true
	return b
}

func (b *Bindable[T]) source() *Bindable[T] {
	return b
}

// Owner returns the id the container registers its subscriptions under.
func (b *Bindable[T]) Owner() dispose.OwnerID {
	return b.owner
}

// Bag returns the bag subscriptions go to by default, nil once a custom bag
// has been collected.
func (b *Bindable[T]) Bag() *dispose.Bag {
	return b.bag.Value()
}

// Value returns the current value and whether one has been set.
func (b *Bindable[T]) Value() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.present
}

// Get returns the current value, or the zero value when none has been set.
func (b *Bindable[T]) Get() T {
	v, _ := b.Value()
	return v
}

// Update replaces the value and notifies every live subscriber once.
func (b *Bindable[T]) Update(v T) {
	b.updateExcept(v, 0)
}

// Modify replaces the value with fn applied to the current one.
func (b *Bindable[T]) Modify(fn func(T) T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateExcept(fn(b.value), 0)
}

func (b *Bindable[T]) updateExcept(v T, skip uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.value, b.present = v, true
	for _, s := range b.snapshot() {
		if s.id == skip || s.unit.IsDisposed() {
			continue
		}
		s.notify(v)
	}
}

// snapshot returns the live subscribers in subscription order. Callers hold mu.
func (b *Bindable[T]) snapshot() []subscriber[T] {
	subs := make([]subscriber[T], 0, len(b.subs))
	for _, id := range b.order {
		if s, ok := b.subs[id]; ok {
			subs = append(subs, s)
		}
	}
	return subs
}

// Len returns the number of live subscriptions.
func (b *Bindable[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dispose releases every subscription, including ones registered in another
// bag through ObserveIn or a binding's Bag. The value is kept and the
// container can be subscribed to again.
func (b *Bindable[T]) Dispose() {
	b.mu.Lock()
	subs := b.snapshot()
	b.mu.Unlock()

	units := make([]*dispose.Unit, 0, len(subs))
	for _, s := range subs {
		units = append(units, s.unit)
	}

	for _, u := range units {
		u.Dispose()
	}
	if bag := b.bag.Value(); bag != nil {
		bag.DisposeOwner(b.owner)
	}
}

// ReadOnly returns a view that can be observed and bound but not updated.
func (b *Bindable[T]) ReadOnly() *ReadOnly[T] {
	return &ReadOnly[T]{b: b}
}

// Observe calls fn with the current value, if any, and then on every update
// until span is exhausted or the returned unit is disposed.
func (b *Bindable[T]) Observe(span Span, fn func(T)) *dispose.Unit {
	return observe(b, b.Bag(), Self[T](), span, fn)
}

// ObserveIn is Observe with the subscription registered in bag.
func (b *Bindable[T]) ObserveIn(bag *dispose.Bag, span Span, fn func(T)) *dispose.Unit {
	return observe(b, bag, Self[T](), span, fn)
}

// ObserveOn starts a fluent observation.
func (b *Bindable[T]) ObserveOn() *ObserveBuilder[T, T] {
	return ObserveFieldOn[T, T](b, Self[T]())
}

// ObserveField observes the part of the value selected by lens.
func ObserveField[T, F any](src Source[T], lens Lens[T, F], span Span, fn func(F)) *dispose.Unit {
	b := src.source()
	return observe(b, b.Bag(), lens, span, fn)
}

func observe[T, F any](b *Bindable[T], bag *dispose.Bag, lens Lens[T, F], span Span, fn func(F)) *dispose.Unit {
	if fn == nil {
		panic("bindable: observe with nil callback")
	}
	if lens.Get == nil {
		panic("bindable: observe through lens " + lens.Name + " without Get")
	}
	return b.subscribe(bag, dispose.NewSlot(), b.nextID(), span, func(v T) bool {
		fn(lens.Get(v))
		return true
	}, nil)
}

func (b *Bindable[T]) nextID() uint64 {
	return b.seq.Add(1)
}

// subscribe registers deliver at (owner, slot) in bag, superseding whatever
// held the slot, replays the current value and then stores the subscriber.
// deliver reports false once it can no longer deliver, which disposes the
// unit without spending the span. release runs once when the unit is disposed.
func (b *Bindable[T]) subscribe(bag *dispose.Bag, slot dispose.SlotID, id uint64, span Span, deliver func(T) bool, release func()) *dispose.Unit {
	b.mu.Lock()
	defer b.mu.Unlock()

	wb := weak.Make(b)
	u := bag.Register(b.owner, slot, func() {
		if b := wb.Value(); b != nil {
			b.unsubscribe(id)
		}
		if release != nil {
			release()
		}
	})

	if b.present && !deliver(b.value) {
		u.Dispose()
		return u
	}
	if span.Exhausted() || u.IsDisposed() {
		u.Dispose()
		return u
	}

	if b.subs == nil {
		b.subs = map[uint64]subscriber[T]{}
	}
	b.subs[id] = subscriber[T]{
		id:   id,
		slot: slot,
		unit: u,
		notify: func(v T) {
			if !deliver(v) || span.Tick() {
				u.Dispose()
			}
		},
	}
	b.order = append(b.order, id)
	return u
}

func (b *Bindable[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	if len(b.order) >= compactAt && len(b.order) > 2*len(b.subs) {
		b.order = slices.DeleteFunc(b.order, func(id uint64) bool {
			_, ok := b.subs[id]
			return !ok
		})
	}
}

// ReadOnly is the observe-only view of a Bindable.
type ReadOnly[T any] struct {
	b *Bindable[T]
}

func (r *ReadOnly[T]) source() *Bindable[T] {
	return r.b
}

// Value returns the current value and whether one has been set.
func (r *ReadOnly[T]) Value() (T, bool) {
	return r.b.Value()
}

// Get returns the current value, or the zero value when none has been set.
func (r *ReadOnly[T]) Get() T {
	return r.b.Get()
}

// Owner returns the owner id of the underlying container.
func (r *ReadOnly[T]) Owner() dispose.OwnerID {
	return r.b.Owner()
}

// Len returns the number of live subscriptions.
func (r *ReadOnly[T]) Len() int {
	return r.b.Len()
}

// Observe is Bindable.Observe.
func (r *ReadOnly[T]) Observe(span Span, fn func(T)) *dispose.Unit {
	return r.b.Observe(span, fn)
}

// ObserveIn is Bindable.ObserveIn.
func (r *ReadOnly[T]) ObserveIn(bag *dispose.Bag, span Span, fn func(T)) *dispose.Unit {
	return r.b.ObserveIn(bag, span, fn)
}

// ObserveOn is Bindable.ObserveOn.
func (r *ReadOnly[T]) ObserveOn() *ObserveBuilder[T, T] {
	return r.b.ObserveOn()
}
