package feed

import (
	"sync"
)

// Broker fans change events out to subscribers. It is owned by the app
// container; there is no package-level instance.
type Broker struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool

	// OnPublish, if set, is called for every published event.
	OnPublish func(Event)
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscription is one registered listener. C has a single slot: while a
// signal is pending, further events coalesce into it.
type Subscription struct {
	C <-chan Event

	ch     chan Event
	broker *Broker
	once   sync.Once
}

// Subscribe registers a new listener. On a closed broker the returned
// subscription's channel is already closed.
func (b *Broker) Subscribe() *Subscription {
	ch := make(chan Event, 1)
	sub := &Subscription{C: ch, ch: ch, broker: b}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		sub.once.Do(func() { close(ch) })
		return sub
	}

	b.subs[sub] = struct{}{}
	return sub
}

// Publish delivers e to every subscriber without blocking.
func (b *Broker) Publish(e Event) {
	if e.Table == "" {
		e.Table = Table
	}

	if b.OnPublish != nil {
		b.OnPublish(e)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
			// a signal is already pending for this subscriber
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close releases every subscription. Later Subscribe calls get closed
// subscriptions and Publish becomes a no-op.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for sub := range b.subs {
		delete(b.subs, sub)
		sub.once.Do(func() { close(sub.ch) })
	}
}

// Close unregisters the subscription and closes C. Calling it more than once
// is a no-op.
func (s *Subscription) Close() {
	b := s.broker
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, s)
	s.once.Do(func() { close(s.ch) })
}
