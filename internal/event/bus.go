package event

import (
	"sync"

	"github.com/google/uuid"
)

// Topic names an event stream on the bus.
type Topic string

// TopicAll subscribes a handler to every published event.
const TopicAll Topic = "*"

// Handler receives published events.
type Handler func(topic Topic, evt any)

// Subscription identifies a registered handler.
type Subscription struct {
	id      string
	topic   Topic
	handler Handler
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the topic pattern the subscription was created with.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Bus delivers events synchronously to matching subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for a topic. Use TopicAll to receive
// every event. A nil handler returns a nil subscription.
func (b *Bus) Subscribe(t Topic, h Handler) *Subscription {
	if h == nil {
		return nil
	}

	sub := &Subscription{
		id:      uuid.New().String(),
		topic:   t,
		handler: h,
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes a subscription. It returns false when the
// subscription was not registered.
func (b *Bus) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers evt to every subscriber whose topic matches t,
// in subscription order. It blocks until all handlers return.
func (b *Bus) Publish(t Topic, evt any) {
	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if s.topic == t || s.topic == TopicAll {
			s.handler(t, evt)
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
