package host

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Bus delivers events to subscribers serially, in subscription order, on the
// publishing goroutine.
type Bus struct {
	mu          sync.Mutex
	subscribers map[Channel][]*subscriber
	logger      *slog.Logger
}

type subscriber struct {
	handler Handler
	active  atomic.Bool
	bus     *Bus
	ch      Channel
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[Channel][]*subscriber),
		logger:      logger,
	}
}

func (b *Bus) Subscribe(ch Channel, handler Handler) Subscription {
	s := &subscriber{handler: handler, bus: b, ch: ch}
	s.active.Store(true)

	b.mu.Lock()
	b.subscribers[ch] = append(b.subscribers[ch], s)
	b.mu.Unlock()

	b.logger.Debug("Subscribed", "channel", ch)
	return s
}

// Publish calls every live subscriber of e.Channel. A subscriber removed while
// the event is in flight is skipped if it has not been reached yet.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]*subscriber, len(b.subscribers[e.Channel]))
	copy(subs, b.subscribers[e.Channel])
	b.mu.Unlock()

	b.logger.Debug("Publishing event", "channel", e.Channel, "subscribers", len(subs))
	for _, s := range subs {
		if !s.active.Load() {
			continue
		}
		s.handler(e)
	}
}

// Len reports the number of live subscribers on ch.
func (b *Bus) Len(ch Channel) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers[ch])
}

func (s *subscriber) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[s.ch]
	for i, other := range subs {
		if other == s {
			b.subscribers[s.ch] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	b.logger.Debug("Unsubscribed", "channel", s.ch)
}
