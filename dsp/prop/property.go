package prop

import "fmt"

// Number is the set of value types a Property can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Option configures a Property at construction.
type Option[T Number] func(*Property[T])

// WithBounds limits the property to the inclusive range [min, max].
// Swapped bounds are accepted.
func WithBounds[T Number](min, max T) Option[T] {
	return func(p *Property[T]) {
		if min > max {
			min, max = max, min
		}

		p.min, p.max = min, max
		p.bounded = true
	}
}

// WithStep sets the increment applied per unit by Step.
func WithStep[T Number](step T) Option[T] {
	return func(p *Property[T]) {
		p.step = step
	}
}

// Property is a named, bounded value cell with synchronous change
// notification. The zero value is not usable; construct with New.
//
// A Property has a single writer. It is not safe for concurrent use.
type Property[T Number] struct {
	name string

	value   T
	initial T
	min     T
	max     T
	step    T
	bounded bool

	subs      []*Subscription[T]
	notifying bool
}

// New returns a property holding value clamped to the configured bounds.
func New[T Number](name string, value T, opts ...Option[T]) *Property[T] {
	p := &Property[T]{name: name, step: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.value = p.clamp(value)
	p.initial = p.value

	return p
}

// Name returns the property name.
func (p *Property[T]) Name() string { return p.name }

// Get returns the current value.
func (p *Property[T]) Get() T { return p.value }

// Default returns the value the property was constructed with.
func (p *Property[T]) Default() T { return p.initial }

// Bounds returns the inclusive bounds and whether the property is bounded.
func (p *Property[T]) Bounds() (min, max T, ok bool) {
	return p.min, p.max, p.bounded
}

// StepSize returns the per-unit increment used by Step.
func (p *Property[T]) StepSize() T { return p.step }

// Set clamps value to the bounds, stores it and notifies every subscriber
// before returning. Subscribers are notified even when the value is unchanged.
func (p *Property[T]) Set(value T) {
	if p.notifying {
		panic(fmt.Sprintf("prop: %q written from its own change notification", p.name))
	}

	p.value = p.clamp(value)

	subs := p.subs
	if len(subs) == 0 {
		return
	}

	p.notifying = true
	defer func() { p.notifying = false }()

	for _, s := range subs {
		if s.fn != nil {
			s.fn(p.value)
		}
	}
}

// Step moves the value by n steps. The result saturates at the bounds, or
// at the range of T for unbounded integer properties, instead of wrapping.
func (p *Property[T]) Step(n int) {
	target := float64(p.value) + float64(n)*float64(p.step)

	lo, hi, ok := p.min, p.max, p.bounded
	if !ok {
		lo, hi, ok = limits[T]()
	}

	switch {
	case ok && target <= float64(lo):
		p.Set(lo)
	case ok && target >= float64(hi):
		p.Set(hi)
	default:
		p.Set(T(target))
	}
}

// Reset restores the construction value and notifies subscribers.
func (p *Property[T]) Reset() {
	p.Set(p.initial)
}

// Normalized returns the value mapped to [0, 1] across the bounds, or 0 for
// unbounded or degenerate ranges.
func (p *Property[T]) Normalized() float64 {
	if !p.bounded || p.max == p.min {
		return 0
	}

	return (float64(p.value) - float64(p.min)) / (float64(p.max) - float64(p.min))
}

// Subscribers returns the number of live subscriptions.
func (p *Property[T]) Subscribers() int { return len(p.subs) }

// OnChange registers fn to be called after every Set. The callback is not
// invoked now; call CallNow on the returned subscription for that.
func (p *Property[T]) OnChange(fn func(T)) *Subscription[T] {
	s := &Subscription[T]{prop: p, fn: fn}

	subs := make([]*Subscription[T], len(p.subs), len(p.subs)+1)
	copy(subs, p.subs)
	p.subs = append(subs, s)

	return s
}

func (p *Property[T]) remove(s *Subscription[T]) {
	for i, cur := range p.subs {
		if cur != s {
			continue
		}

		subs := make([]*Subscription[T], 0, len(p.subs)-1)
		subs = append(subs, p.subs[:i]...)
		p.subs = append(subs, p.subs[i+1:]...)

		return
	}
}

// limits returns the smallest and largest values of an integer T. It reports
// false for floating point types.
func limits[T Number]() (lo, hi T, ok bool) {
	half := 0.5
	if T(half) != 0 {
		return lo, hi, false
	}

	// Doubling from one ends on the top bit: the minimum for signed types.
	top := T(1)
	for top*2 != 0 {
		top *= 2
	}

	if top < 0 {
		return top, top - 1, true
	}

	var zero T

	return zero, zero - 1, true
}

func (p *Property[T]) clamp(v T) T {
	if !p.bounded {
		return v
	}

	if v < p.min {
		return p.min
	}

	if v > p.max {
		return p.max
	}

	return v
}

func (p *Property[T]) String() string {
	return fmt.Sprintf("%s=%v", p.name, p.value)
}
