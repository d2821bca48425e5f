package dispose

import (
	"testing"
	"weak"

	"github.com/stretchr/testify/assert"
)

type row struct {
	name string
}

// Two rows sharing one owner id stand in for a collected row whose address
// was handed to a new one before its cleanup ran.
func TestGroupReplacesStaleAggregate(t *testing.T) {
	bag := NewBag()
	owner := OwnerOf(&row{name: "shared"})
	oldRow, newRow := &row{name: "old"}, &row{name: "new"}

	oldCount, newCount := 0, 0
	stale, created := bag.group(owner, weak.Make(oldRow), []Disposable{Func(func() { oldCount++ })})
	assert.True(t, created)

	fresh, created := bag.group(owner, weak.Make(newRow), []Disposable{Func(func() { newCount++ })})
	assert.True(t, created)
	assert.NotSame(t, stale, fresh)
	assert.True(t, stale.IsDisposed())
	assert.Equal(t, 1, oldCount)

	again, created := bag.group(owner, weak.Make(newRow), []Disposable{Func(func() { newCount++ })})
	assert.False(t, created)
	assert.Same(t, fresh, again)

	bag.DisposeOwner(owner)
	assert.Equal(t, 1, oldCount)
	assert.Equal(t, 2, newCount)
	assert.Equal(t, 0, bag.Len())

	// a plain Group call on the same owner joins whatever aggregate is there
	g, _ := bag.group(owner, weak.Make(newRow), nil)
	assert.Same(t, g, bag.Group(owner))
}
