package host

import "sync"

type Disposable interface {
	Dispose()
}

type DisposeFunc func()

func (f DisposeFunc) Dispose() { f() }

// FromSubscription adapts a Subscription so it can be released with other
// disposables.
func FromSubscription(s Subscription) Disposable {
	return DisposeFunc(s.Unsubscribe)
}

type composite struct {
	once  sync.Once
	items []Disposable
}

// From combines items into one Disposable that releases them in order. Only
// the first Dispose call has an effect.
func From(items ...Disposable) Disposable {
	return &composite{items: items}
}

func (c *composite) Dispose() {
	c.once.Do(func() {
		for _, d := range c.items {
			if d != nil {
				d.Dispose()
			}
		}
		c.items = nil
	})
}
