package bindable

import "github.com/delaneyj/bindable/dispose"

// ObserveBuilder assembles an observation step by step:
//
//	name.ObserveOn().Times(2).Done(func(v string) { ... })
type ObserveBuilder[T, F any] struct {
	src  Source[T]
	lens Lens[T, F]
	span Span
	bag  *dispose.Bag
}

// ObserveFieldOn starts a fluent observation of the part of src selected by
// lens.
func ObserveFieldOn[T, F any](src Source[T], lens Lens[T, F]) *ObserveBuilder[T, F] {
	return &ObserveBuilder[T, F]{src: src, lens: lens}
}

func (o *ObserveBuilder[T, F]) Once() *ObserveBuilder[T, F] {
	o.span = Once()
	return o
}

func (o *ObserveBuilder[T, F]) Always() *ObserveBuilder[T, F] {
	o.span = Always()
	return o
}

func (o *ObserveBuilder[T, F]) Times(n int) *ObserveBuilder[T, F] {
	o.span = Times(n)
	return o
}

// In registers the subscription in bag.
func (o *ObserveBuilder[T, F]) In(bag *dispose.Bag) *ObserveBuilder[T, F] {
	o.bag = bag
	return o
}

// Done subscribes fn. It panics when the builder has no source.
func (o *ObserveBuilder[T, F]) Done(fn func(F)) *dispose.Unit {
	if o.src == nil {
		panic("bindable: observe builder without a source")
	}
	b := o.src.source()
	bag := o.bag
	if bag == nil {
		bag = b.Bag()
	}
	return observe(b, bag, o.lens, o.span, fn)
}

// BindBuilder assembles a Binding step by step:
//
//	bindable.BindOn(name, label, bindable.LabelText).Once().Done()
type BindBuilder[T, F, X, R any] struct {
	src     Source[T]
	binding Binding[T, F, X, R]
}

// BindOn starts a fluent binding of the whole value of src to field of target.
func BindOn[T, X any](src Source[T], target *X, field Field[X, T]) *BindBuilder[T, T, X, T] {
	return BindFieldOn(src, Self[T](), target, field)
}

// BindFieldOn starts a fluent binding of the part of src selected by lens to
// field of target.
func BindFieldOn[T, F, X, R any](src Source[T], lens Lens[T, F], target *X, field Field[X, R]) *BindBuilder[T, F, X, R] {
	return &BindBuilder[T, F, X, R]{
		src: src,
		binding: Binding[T, F, X, R]{
			Source: lens,
			Target: target,
			Field:  field,
		},
	}
}

func (b *BindBuilder[T, F, X, R]) Once() *BindBuilder[T, F, X, R] {
	b.binding.Span = Once()
	return b
}

func (b *BindBuilder[T, F, X, R]) Always() *BindBuilder[T, F, X, R] {
	b.binding.Span = Always()
	return b
}

func (b *BindBuilder[T, F, X, R]) Times(n int) *BindBuilder[T, F, X, R] {
	b.binding.Span = Times(n)
	return b
}

// In registers the binding in bag.
func (b *BindBuilder[T, F, X, R]) In(bag *dispose.Bag) *BindBuilder[T, F, X, R] {
	b.binding.Bag = bag
	return b
}

func (b *BindBuilder[T, F, X, R]) OneWay() *BindBuilder[T, F, X, R] {
	b.binding.Mode = OneWay
	return b
}

func (b *BindBuilder[T, F, X, R]) TwoWay() *BindBuilder[T, F, X, R] {
	b.binding.Mode = TwoWay
	return b
}

// Map converts the source part into the field value.
func (b *BindBuilder[T, F, X, R]) Map(fn func(F) R) *BindBuilder[T, F, X, R] {
	b.binding.Map = fn
	return b
}

// Unmap converts the field value back for TwoWay bindings.
func (b *BindBuilder[T, F, X, R]) Unmap(fn func(R) F) *BindBuilder[T, F, X, R] {
	b.binding.Unmap = fn
	return b
}

// Done binds, calling completion with each value written to the target. It
// panics when source, target or field accessors are missing.
func (b *BindBuilder[T, F, X, R]) Done(completion ...func(R)) *dispose.Unit {
	if len(completion) > 0 {
		b.binding.Done = completion[0]
	}
	return Bind(b.src, b.binding)
}
