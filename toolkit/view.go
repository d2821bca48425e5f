package toolkit

import (
	"slices"
	"sync"
)

// View is the part of a widget gestures attach to.
type View interface {
	AddRecognizer(r Recognizer)
	RemoveRecognizer(r Recognizer)
	Recognizers() []Recognizer
	SetUserInteractionEnabled(enabled bool)
	UserInteractionEnabled() bool
}

// ViewBase implements View. Embed it to make a widget gesture capable.
type ViewBase struct {
	viewMu      sync.RWMutex
	recognizers []Recognizer
	interactive bool
}

// AddRecognizer attaches r. Attaching the same recognizer twice is a no-op.
func (v *ViewBase) AddRecognizer(r Recognizer) {
	v.viewMu.Lock()
	defer v.viewMu.Unlock()
	if !slices.Contains(v.recognizers, r) {
		v.recognizers = append(v.recognizers, r)
	}
}

// RemoveRecognizer detaches r.
func (v *ViewBase) RemoveRecognizer(r Recognizer) {
	v.viewMu.Lock()
	defer v.viewMu.Unlock()
	v.recognizers = slices.DeleteFunc(v.recognizers, func(x Recognizer) bool {
		return x == r
	})
}

// Recognizers returns a copy of the attached recognizers.
func (v *ViewBase) Recognizers() []Recognizer {
	v.viewMu.RLock()
	defer v.viewMu.RUnlock()
	return slices.Clone(v.recognizers)
}

// SetUserInteractionEnabled toggles whether the view receives touches.
func (v *ViewBase) SetUserInteractionEnabled(enabled bool) {
	v.viewMu.Lock()
	v.interactive = enabled
	v.viewMu.Unlock()
}

// UserInteractionEnabled reports whether the view receives touches.
func (v *ViewBase) UserInteractionEnabled() bool {
	v.viewMu.RLock()
	defer v.viewMu.RUnlock()
	return v.interactive
}

// ControlBase is ViewBase plus an event Dispatcher, the base of every
// interactive widget.
type ControlBase struct {
	ViewBase
	Dispatcher
}
