package dispose_test

import (
	"testing"

	"github.com/delaneyj/bindable/dispose"
	"github.com/stretchr/testify/assert"
)

type widget struct{ text string }

func TestNewOwnerUnique(t *testing.T) {
	seen := map[dispose.OwnerID]bool{}
	for range 1000 {
		id := dispose.NewOwner()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestOwnerOfIdentity(t *testing.T) {
	a, b := &widget{}, &widget{}

	assert.Equal(t, dispose.OwnerOf(a), dispose.OwnerOf(a))
	assert.NotEqual(t, dispose.OwnerOf(a), dispose.OwnerOf(b))
	assert.NotEqual(t, dispose.OwnerOf(a), dispose.NewOwner())
}

func TestSlotForComposite(t *testing.T) {
	a, b := &widget{}, &widget{}

	assert.Equal(t, dispose.SlotFor(a, "text"), dispose.SlotFor(a, "text"))
	assert.NotEqual(t, dispose.SlotFor(a, "text"), dispose.SlotFor(a, "textColor"))
	assert.NotEqual(t, dispose.SlotFor(a, "text"), dispose.SlotFor(b, "text"))
	assert.NotEqual(t, dispose.GroupSlot, dispose.SlotFor(a, ""))
}

func TestIdentityNeedsReference(t *testing.T) {
	assert.Panics(t, func() { dispose.OwnerOf(widget{}) })
	assert.Panics(t, func() { dispose.OwnerOf((*widget)(nil)) })
	assert.Panics(t, func() { dispose.SlotFor(42, "value") })
}

func TestKeyString(t *testing.T) {
	k := dispose.Key{Owner: 0x2a, Slot: 0xff}
	assert.Equal(t, "2a/ff", k.String())
}
