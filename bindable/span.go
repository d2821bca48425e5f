package bindable

import "fmt"

type spanKind uint8

const (
	spanAlways spanKind = iota
	spanOnce
	spanTimes
)

// Span is how many change notifications a subscription survives before it
// disposes itself. The replay of the current value on subscribe never counts.
// The zero Span is Always.
type Span struct {
	kind      spanKind
	remaining int
	spent     bool
}

// Always never expires; the subscription lives until disposed.
func Always() Span {
	return Span{kind: spanAlways}
}

// Once expires after the first change notification.
func Once() Span {
	return Span{kind: spanOnce}
}

// Times expires after n change notifications. With n <= 0 the span starts
// exhausted.
func Times(n int) Span {
	return Span{kind: spanTimes, remaining: n}
}

// Exhausted reports whether the span allows no further notifications.
func (s Span) Exhausted() bool {
	switch s.kind {
	case spanOnce:
		return s.spent
	case spanTimes:
		return s.remaining <= 0
	default:
		return false
	}
}

// Tick records one delivered notification and reports whether the span is now
// exhausted.
func (s *Span) Tick() bool {
	switch s.kind {
	case spanOnce:
		s.spent = true
	case spanTimes:
		if s.remaining > 0 {
			s.remaining--
		}
	}
	return s.Exhausted()
}

func (s Span) String() string {
	switch s.kind {
	case spanOnce:
		return "once"
	case spanTimes:
		return fmt.Sprintf("times(%d)", s.remaining)
	default:
		return "always"
	}
}
