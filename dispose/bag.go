package dispose

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"weak"

	mapset "github.com/deckarep/golang-set/v2"
)

// Bag is the disposal registry. It maps (owner, slot) keys to live units so
// everything an owner subscribed to can be torn down in one call, and so a new
// registration at an occupied key supersedes the old one.
//
// Cleanup actions never run while the bag is mid-mutation: entries are
// unlinked under the lock and disposed after it is released.
type Bag struct {
	mu      RecursiveMutex
	entries map[Key]*Unit
	owners  map[OwnerID]mapset.Set[SlotID]
	logger  *slog.Logger
}

// Option configures a Bag.
type Option func(*Bag)

// WithLogger makes the bag emit debug records for each disposal.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bag) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBag creates an empty registry.
func NewBag(opts ...Option) *Bag {
	b := &Bag{
		entries: make(map[Key]*Unit),
		owners:  make(map[OwnerID]mapset.Set[SlotID]),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	shared     *Bag
	sharedOnce sync.Once
)

// Shared returns the process wide default bag.
func Shared() *Bag {
	sharedOnce.Do(func() {
		shared = NewBag()
	})
	return shared
}

type bagKey struct{}

// WithBag returns a context carrying b as the bag to register into.
func WithBag(ctx context.Context, b *Bag) context.Context {
	return context.WithValue(ctx, bagKey{}, b)
}

// FromContext returns the bag stored by WithBag, or Shared.
func FromContext(ctx context.Context) *Bag {
	if ctx != nil {
		if b, ok := ctx.Value(bagKey{}).(*Bag); ok && b != nil {
			return b
		}
	}
	return Shared()
}

// Register stores action under (owner, slot) and returns its unit. Whatever
// was registered at that exact key is disposed first. On a nil bag the unit is
// returned detached.
func (b *Bag) Register(owner OwnerID, slot SlotID, action func()) *Unit {
	key := Key{Owner: owner, Slot: slot}
	if b == nil {
		return newUnit(key, nil, action)
	}

	u := newUnit(key, b, action)
	for {
		b.mu.Lock()
		old, ok := b.entries[key]
		if !ok {
			b.insert(u)
			b.mu.Unlock()
			return u
		}
		b.unlink(key)
		b.mu.Unlock()

		b.logger.Debug("superseding entry", "key", key)
		old.Dispose()
	}
}

// DisposeOwner disposes every entry registered under owner.
func (b *Bag) DisposeOwner(owner OwnerID) {
	if b == nil {
		return
	}

	b.mu.Lock()
	slots, ok := b.owners[owner]
	if !ok {
		b.mu.Unlock()
		return
	}
	before := len(b.entries)
	units := make([]*Unit, 0, slots.Cardinality())
	for _, slot := range slots.ToSlice() {
		key := Key{Owner: owner, Slot: slot}
		if u, ok := b.entries[key]; ok {
			units = append(units, u)
		}
		b.unlink(key)
	}
	after := len(b.entries)
	b.mu.Unlock()

	b.logger.Debug("dispose owner", "owner", owner, "before", before, "after", after)
	for _, u := range units {
		u.Dispose()
	}
}

// DisposeObject disposes everything registered under the identity of obj.
func (b *Bag) DisposeObject(obj any) {
	b.DisposeOwner(OwnerOf(obj))
}

// DisposeSlot disposes the single entry at (owner, slot), if any.
func (b *Bag) DisposeSlot(owner OwnerID, slot SlotID) {
	if b == nil {
		return
	}

	key := Key{Owner: owner, Slot: slot}
	b.mu.Lock()
	u, ok := b.entries[key]
	if ok {
		b.unlink(key)
	}
	b.mu.Unlock()

	if ok {
		b.logger.Debug("dispose slot", "key", key)
		u.Dispose()
	}
}

// Group collects ds under owner so they can be released together, e.g. all
// the bindings of a reusable list row. Calling Group again for the same owner
// adds to the existing aggregate and returns it. Once the aggregate has been
// disposed the next call starts a new one.
func (b *Bag) Group(owner OwnerID, ds ...Disposable) Disposable {
	g, _ := b.group(owner, nil, ds)
	return g
}

// GroupFor is Group keyed by the identity of obj. The aggregate is disposed
// when obj is collected, and an aggregate left behind by a collected object
// that lived at the same address is disposed rather than extended.
func GroupFor[T any](b *Bag, obj *T, ds ...Disposable) Disposable {
	owner := OwnerOf(obj)
	g, created := b.group(owner, weak.Make(obj), ds)
	if created && b != nil {
		TieTo(g, obj)
	}
	return g
}

func (b *Bag) group(owner OwnerID, anchor any, ds []Disposable) (*Unit, bool) {
	members := slices.Clone(ds)
	action := func() {
		for _, d := range members {
			d.Dispose()
		}
	}

	key := Key{Owner: owner, Slot: GroupSlot}
	if b == nil {
		return newUnit(key, nil, action), true
	}

	b.mu.Lock()
	old, ok := b.entries[key]
	if ok && !stale(old, anchor) && old.add(action) {
		b.mu.Unlock()
		return old, false
	}
	if ok {
		b.unlink(key)
	}
	u := newUnit(key, b, action)
	u.anchor = anchor
	b.insert(u)
	b.mu.Unlock()

	if ok && !old.IsDisposed() {
		b.logger.Debug("dispose stale group", "key", key)
		old.Dispose()
	}
	return u, true
}

// DisposeAll disposes every entry. It is the final sweep for a bag that is
// about to be dropped, or for Shared at process exit.
func (b *Bag) DisposeAll() {
	if b == nil {
		return
	}

	b.mu.Lock()
	units := make([]*Unit, 0, len(b.entries))
	for _, u := range b.entries {
		units = append(units, u)
	}
	clear(b.entries)
	clear(b.owners)
	b.mu.Unlock()

	b.logger.Debug("dispose all", "before", len(units), "after", 0)
	for _, u := range units {
		u.Dispose()
	}
}

// Len returns the number of live entries.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// OwnerLen returns the number of live entries under owner.
func (b *Bag) OwnerLen(owner OwnerID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if slots, ok := b.owners[owner]; ok {
		return slots.Cardinality()
	}
	return 0
}

// Has reports whether (owner, slot) holds a live entry.
func (b *Bag) Has(owner OwnerID, slot SlotID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.entries[Key{Owner: owner, Slot: slot}]
	return ok
}

// stale reports whether g was grouped for a different object than anchor,
// which means that object has been collected and its address reused.
func stale(g *Unit, anchor any) bool {
	return anchor != nil && g.anchor != nil && g.anchor != anchor
}

func (b *Bag) remove(u *Unit) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cur, ok := b.entries[u.key]; ok && cur == u {
		b.unlink(u.key)
	}
}

func (b *Bag) insert(u *Unit) {
	b.entries[u.key] = u
	slots, ok := b.owners[u.key.Owner]
	if !ok {
		slots = mapset.NewThreadUnsafeSet[SlotID]()
		b.owners[u.key.Owner] = slots
	}
	slots.Add(u.key.Slot)
}

func (b *Bag) unlink(key Key) {
	delete(b.entries, key)
	if slots, ok := b.owners[key.Owner]; ok {
		slots.Remove(key.Slot)
		if slots.Cardinality() == 0 {
			delete(b.owners, key.Owner)
		}
	}
}
