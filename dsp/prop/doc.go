// Package prop provides bounded, observable value cells for synthesizer
// parameters.
//
// A [Property] owns its current value, optional inclusive bounds, a step size
// and an ordered list of subscriptions. Every [Property.Set] clamps the value
// and then calls each subscriber synchronously, in subscription order, before
// returning. Subscribers may read and write other properties from inside a
// callback; writing the property that is currently notifying panics.
//
// Subscribing and invoking are separate steps:
//
//	sub := p.OnChange(func(v float64) { filter.SetCutoff(v) }).CallNow()
//	defer sub.Close()
//
// Subscriber lists are copy-on-write, so closing or adding a subscription
// from inside a callback does not affect the notification in flight. Set
// itself does not allocate.
package prop
