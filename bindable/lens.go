package bindable

// Lens focuses on a part F of a source value T.
type Lens[T, F any] struct {
	Name string
	Get  func(T) F
	// Set returns a copy of the source with the part replaced. Only two way
	// bindings need it.
	Set func(T, F) T
}

// Self is the lens over the whole value.
func Self[T any]() Lens[T, T] {
	return Lens[T, T]{
		Name: "self",
		Get:  identity[T],
		Set:  func(_ T, v T) T { return v },
	}
}

// Prop builds a lens over one property of T.
func Prop[T, F any](name string, get func(T) F, set func(T, F) T) Lens[T, F] {
	return Lens[T, F]{Name: name, Get: get, Set: set}
}

// Field is a writable property of a bound target. Name takes part in the
// binding slot, so two fields of one target type need distinct names.
type Field[X, V any] struct {
	Name string
	Get  func(*X) V
	Set  func(*X, V)
}

// NewField builds a Field from an accessor pair, typically method expressions
// such as (*toolkit.Label).Text.
func NewField[X, V any](name string, get func(*X) V, set func(*X, V)) Field[X, V] {
	return Field[X, V]{Name: name, Get: get, Set: set}
}

func identity[T any](v T) T {
	return v
}

// identityAs returns the identity func typed as func(A) B, or nil when A and B
// are different types.
func identityAs[A, B any]() func(A) B {
	fn, _ := any(identity[A]).(func(A) B)
	return fn
}
