package event_test

import (
	"runtime"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/delaneyj/bindable/bindable"
	"github.com/delaneyj/bindable/dispose"
	"github.com/delaneyj/bindable/event"
	"github.com/delaneyj/bindable/toolkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSignal(t *testing.T) {
	callCount := 0
	e := event.New(func() { callCount++ })
	defer e.Dispose()

	e.Signal()
	e.Signal()
	assert.Equal(t, 2, callCount)

	e.SetAction(nil)
	e.Signal()
	assert.Equal(t, 2, callCount)
}

func TestEventOnControl(t *testing.T) {
	bag := dispose.NewBag()
	button := toolkit.NewButton("go")

	callCount := 0
	e := event.New(func() { callCount++ }, event.WithBag(bag))
	h := e.On(button, toolkit.TouchUpInside)

	button.Tap()
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, bag.OwnerLen(e.Owner()))

	h.Dispose()
	button.Tap()
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 0, button.ListenerCount())
	assert.Equal(t, 0, bag.Len())
}

func TestEventOnSameControlReplaces(t *testing.T) {
	bag := dispose.NewBag()
	field := toolkit.NewTextField()

	callCount := 0
	e := event.New(func() { callCount++ }, event.WithBag(bag))
	e.On(field, toolkit.EditingChanged)
	e.On(field, toolkit.EditingChanged)
	e.On(field, toolkit.EditingDidEnd)
	assert.Equal(t, 2, field.ListenerCount())

	field.Edit("x")
	assert.Equal(t, 1, callCount)

	e.Dispose()
	assert.Equal(t, 0, field.ListenerCount())
	assert.Equal(t, 0, bag.Len())
}

func listenTransient(bag *dispose.Bag, button *toolkit.Button) {
	e := event.New(func() {}, event.WithBag(bag))
	e.On(button, toolkit.PrimaryActionTriggered)
}

func TestCollectedEventReleasesListeners(t *testing.T) {
	bag := dispose.NewBag()
	button := toolkit.NewButton("go")
	listenTransient(bag, button)
	require.Equal(t, 1, button.ListenerCount())

	assert.Eventually(t, func() bool {
		runtime.GC()
		return bag.Len() == 0 && button.ListenerCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEventableSignal(t *testing.T) {
	e := event.NewEventable(func(deliver func(bool)) { deliver(true) })
	defer e.Dispose()

	target := false
	e.Observe(func(v bool) { target = v })
	got := e.Signal()
	assert.True(t, target)
	assert.True(t, got.Get())
}

func TestEventableInitialValue(t *testing.T) {
	e := event.NewEventableOf(3, func(deliver func(int)) { deliver(4) })
	defer e.Dispose()

	var seen []int
	e.Observe(func(v int) { seen = append(seen, v) })
	e.Signal()
	assert.Equal(t, []int{3, 4}, seen)
}

func TestEventableDeferredDelivery(t *testing.T) {
	var pending []func(string)
	e := event.NewEventable(func(deliver func(string)) {
		pending = append(pending, deliver)
	})
	defer e.Dispose()

	var seen []string
	e.Observe(func(v string) { seen = append(seen, v) })

	ro := e.Signal()
	_, ok := ro.Value()
	assert.False(t, ok)
	assert.Empty(t, seen)

	require.Len(t, pending, 1)
	pending[0]("late")
	pending[0]("later")
	assert.Equal(t, []string{"late", "later"}, seen)
}

func TestEventableDispose(t *testing.T) {
	bag := dispose.NewBag()
	button := toolkit.NewButton("go")
	e := event.NewEventable(func(deliver func(int)) { deliver(1) }, event.WithBag(bag))

	e.Observe(func(int) {})
	e.On(button, toolkit.TouchUpInside)
	assert.Equal(t, 2, bag.Len())

	e.Dispose()
	assert.Equal(t, 0, bag.Len())
	assert.Equal(t, 0, button.ListenerCount())
	assert.Equal(t, 0, e.AsBindable().Len())
}

func TestEventableOnButton(t *testing.T) {
	button := toolkit.NewButton("go")
	e := event.NewEventable(func(deliver func(bool)) { deliver(true) })
	defer e.Dispose()

	triggered := false
	e.Observe(func(v bool) { triggered = v })
	e.On(button, toolkit.TouchUpInside)
	button.Tap()
	assert.True(t, triggered)
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func TestEventableCapitalizesTextField(t *testing.T) {
	field := toolkit.NewTextField()
	e := event.NewEventable[string](nil)
	defer e.Dispose()

	bindable.BindOn(e.AsBindable(), field, bindable.TextFieldText).TwoWay().Done()
	e.SetAction(func(deliver func(string)) {
		deliver(capitalize(e.AsBindable().Get()))
	})
	e.On(field, toolkit.EditingChanged|toolkit.ValueChanged)

	field.Edit("new text")
	assert.Equal(t, "New Text", field.Text())
	assert.Equal(t, "New Text", e.AsBindable().Get())
}

func TestOnGestureKinds(t *testing.T) {
	kinds := []toolkit.GestureKind{
		toolkit.Tap,
		toolkit.Pinch,
		toolkit.Rotation,
		toolkit.Swipe,
		toolkit.Pan,
		toolkit.ScreenEdgePan,
		toolkit.LongPress,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			view := toolkit.NewLabel("")
			e := event.NewEventable(func(deliver func(bool)) { deliver(true) })
			defer e.Dispose()

			require.Empty(t, view.Recognizers())
			h := e.OnGesture(kind, view)
			assert.True(t, view.UserInteractionEnabled())
			require.Len(t, view.Recognizers(), 1)
			assert.Equal(t, kind, view.Recognizers()[0].Kind())

			view.Recognizers()[0].SetState(toolkit.Ended)
			assert.True(t, e.AsBindable().Get())

			h.Dispose()
			assert.Empty(t, view.Recognizers())
		})
	}
}

func TestGestureFiresOnRecognizedStates(t *testing.T) {
	view := toolkit.NewLabel("")

	taps, pans := 0, 0
	tap := event.New(func() { taps++ })
	pan := event.New(func() { pans++ })
	defer tap.Dispose()
	defer pan.Dispose()

	tap.OnGesture(toolkit.Tap, view)
	pan.OnGesture(toolkit.Pan, view)
	require.Len(t, view.Recognizers(), 2)

	for _, r := range view.Recognizers() {
		r.SetState(toolkit.Began)
		r.SetState(toolkit.Changed)
		r.SetState(toolkit.Cancelled)
	}
	assert.Equal(t, 0, taps)
	assert.Equal(t, 1, pans)

	for _, r := range view.Recognizers() {
		r.(*toolkit.GestureRecognizer).Recognize()
	}
	assert.Equal(t, 1, taps)
	assert.Equal(t, 3, pans)
}

func TestOnCustomRecognizer(t *testing.T) {
	view := toolkit.NewLabel("")
	r := toolkit.NewRecognizer(toolkit.Swipe)

	callCount := 0
	e := event.New(func() { callCount++ })
	defer e.Dispose()

	h := e.OnRecognizer(r, view)
	r.SetState(toolkit.Ended)
	assert.Equal(t, 1, callCount)

	h.Dispose()
	r.SetState(toolkit.Ended)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 0, r.ListenerCount())
	assert.Empty(t, view.Recognizers())
}
