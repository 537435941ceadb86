package prop

// Subscription is the handle returned by Property.OnChange. It is owned by
// the subscriber, which must Close it when it goes away.
type Subscription[T Number] struct {
	prop *Property[T]
	fn   func(T)
}

// CallNow invokes the callback once with the current value and returns the
// subscription for chaining. It does nothing after Close.
func (s *Subscription[T]) CallNow() *Subscription[T] {
	if s.fn != nil {
		s.fn(s.prop.value)
	}

	return s
}

// Close detaches the callback. A callback that is closed while its property
// is notifying will not be called again, including later in the same
// notification. Close is idempotent.
func (s *Subscription[T]) Close() {
	if s.fn == nil {
		return
	}

	s.fn = nil
	s.prop.remove(s)
}

// Active reports whether the subscription has not been closed.
func (s *Subscription[T]) Active() bool { return s.fn != nil }

// Closer is implemented by subscriptions of any value type.
type Closer interface {
	Close()
}

// Group collects subscriptions so that an owner can release them together.
type Group struct {
	subs []Closer
}

// Add records c and returns it.
func (g *Group) Add(c Closer) Closer {
	g.subs = append(g.subs, c)
	return c
}

// Len returns the number of recorded subscriptions.
func (g *Group) Len() int { return len(g.subs) }

// Close closes every recorded subscription in reverse order and empties the
// group.
func (g *Group) Close() {
	for i := len(g.subs) - 1; i >= 0; i-- {
		g.subs[i].Close()
	}

	g.subs = nil
}
