package dispose

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// OwnerID identifies the object that owns a set of subscriptions.
type OwnerID uint64

// SlotID identifies a single subscription within an owner.
type SlotID uint64

// GroupSlot is reserved for the aggregate handle built by Bag.Group.
const GroupSlot SlotID = 0

// identityBit marks ids derived from object identity so they never collide
// with counter allocated ids.
const identityBit = 1 << 63

// Key is the composite registry key.
type Key struct {
	Owner OwnerID
	Slot  SlotID
}

func (k Key) String() string {
	return fmt.Sprintf("%x/%x", uint64(k.Owner), uint64(k.Slot))
}

var (
	ownerSeq atomic.Uint64
	slotSeq  atomic.Uint64
)

// NewOwner allocates a process unique owner id.
func NewOwner() OwnerID {
	return OwnerID(ownerSeq.Add(1) &^ identityBit)
}

// NewSlot allocates a process unique slot id, used by plain observers so any
// number of them can coexist under one owner.
func NewSlot() SlotID {
	return SlotID(slotSeq.Add(1) &^ identityBit)
}

// OwnerOf derives an owner id from the identity of obj, which must be a
// non-nil pointer, map or channel.
func OwnerOf(obj any) OwnerID {
	return OwnerID(uint64(addressOf(obj)) | identityBit)
}

// SlotFor derives the deterministic slot of a (target, field) pair. Binding
// the same pair twice lands on the same slot, which is what makes a rebind
// supersede the previous one.
func SlotFor(target any, field string) SlotID {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(addressOf(target)))

	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(field)
	return SlotID(d.Sum64() | identityBit)
}

func addressOf(obj any) uintptr {
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan:
		if v.IsNil() {
			panic("dispose: identity of a nil reference")
		}
		return v.Pointer()
	default:
		panic(fmt.Sprintf("dispose: %T has no identity, pass a pointer", obj))
	}
}
