package toolkit

import (
	"sync"
)

// Label displays read-only text.
type Label struct {
	ViewBase
	mu   sync.RWMutex
	text string
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// Text returns the displayed text.
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// SetText replaces the displayed text.
func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

// TextField is a single line editable text control.
type TextField struct {
	ControlBase
	mu   sync.RWMutex
	text string
}

// NewTextField creates an empty text field.
func NewTextField() *TextField {
	return &TextField{ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}}}
}

// Text returns the current text.
func (f *TextField) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// SetText replaces the text without firing events.
func (f *TextField) SetText(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()
}

// Edit replaces the text as if typed by the user and fires EditingChanged.
func (f *TextField) Edit(text string) {
	f.SetText(text)
	f.SendActions(EditingChanged)
}

// TextView is a multi line editable text area.
type TextView struct {
	ControlBase
	mu   sync.RWMutex
	text string
}

// NewTextView creates an empty text view.
func NewTextView() *TextView {
	return &TextView{ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}}}
}

// Text returns the current text.
func (v *TextView) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

// SetText replaces the text without firing events.
func (v *TextView) SetText(text string) {
	v.mu.Lock()
	v.text = text
	v.mu.Unlock()
}

// Edit replaces the text as if typed by the user and fires EditingChanged.
func (v *TextView) Edit(text string) {
	v.SetText(text)
	v.SendActions(EditingChanged)
}

// Switch is an on/off toggle.
type Switch struct {
	ControlBase
	mu sync.RWMutex
	on bool
}

// NewSwitch creates a switch in the given position.
func NewSwitch(on bool) *Switch {
	return &Switch{ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}}, on: on}
}

// IsOn returns the switch position.
func (s *Switch) IsOn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.on
}

// SetOn moves the switch without firing events.
func (s *Switch) SetOn(on bool) {
	s.mu.Lock()
	s.on = on
	s.mu.Unlock()
}

// Toggle flips the switch as if tapped and fires ValueChanged.
func (s *Switch) Toggle() {
	s.mu.Lock()
	s.on = !s.on
	s.mu.Unlock()
	s.SendActions(ValueChanged)
}

// Slider picks a value within [Min, Max].
type Slider struct {
	ControlBase
	min, max float32
	mu       sync.RWMutex
	value    float32
}

// NewSlider creates a slider over [min, max] positioned at min.
func NewSlider(min, max float32) *Slider {
	if max < min {
		min, max = max, min
	}
	return &Slider{ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}}, min: min, max: max, value: min}
}

// Min returns the lower bound.
func (s *Slider) Min() float32 { return s.min }

// Max returns the upper bound.
func (s *Slider) Max() float32 { return s.max }

// Value returns the current value.
func (s *Slider) Value() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// SetValue moves the thumb, clamped to the bounds, without firing events.
func (s *Slider) SetValue(value float32) {
	s.mu.Lock()
	s.value = max(s.min, min(s.max, value))
	s.mu.Unlock()
}

// Slide moves the thumb as if dragged and fires ValueChanged.
func (s *Slider) Slide(value float32) {
	s.SetValue(value)
	s.SendActions(ValueChanged)
}

// NoSegment is the selected index of a segmented control with no selection.
const NoSegment = -1

// SegmentedControl selects one of a fixed set of titled segments.
type SegmentedControl struct {
	ControlBase
	titles   []string
	mu       sync.RWMutex
	selected int
}

// NewSegmentedControl creates a control with one segment per title and no
// selection.
func NewSegmentedControl(titles ...string) *SegmentedControl {
	return &SegmentedControl{
		ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}},
		titles:      titles,
		selected:    NoSegment,
	}
}

// NumberOfSegments returns the segment count.
func (c *SegmentedControl) NumberOfSegments() int {
	return len(c.titles)
}

// TitleAt returns the title of segment i.
func (c *SegmentedControl) TitleAt(i int) string {
	if i < 0 || i >= len(c.titles) {
		return ""
	}
	return c.titles[i]
}

// SelectedIndex returns the selected segment or NoSegment.
func (c *SegmentedControl) SelectedIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// SetSelectedIndex selects segment i without firing events. Out of range
// indexes clear the selection.
func (c *SegmentedControl) SetSelectedIndex(i int) {
	if i < 0 || i >= len(c.titles) {
		i = NoSegment
	}
	c.mu.Lock()
	c.selected = i
	c.mu.Unlock()
}

// Select picks segment i as if tapped and fires ValueChanged.
func (c *SegmentedControl) Select(i int) {
	c.SetSelectedIndex(i)
	c.SendActions(ValueChanged)
}

// Button fires actions when tapped.
type Button struct {
	ControlBase
	mu    sync.RWMutex
	title string
}

// NewButton creates a button with title.
func NewButton(title string) *Button {
	return &Button{ControlBase: ControlBase{ViewBase: ViewBase{interactive: true}}, title: title}
}

// Title returns the button title.
func (b *Button) Title() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.title
}

// SetTitle replaces the button title.
func (b *Button) SetTitle(title string) {
	b.mu.Lock()
	b.title = title
	b.mu.Unlock()
}

// Tap simulates a touch that lands inside the button.
func (b *Button) Tap() {
	b.SendActions(TouchDown)
	b.SendActions(TouchUpInside | PrimaryActionTriggered)
}
