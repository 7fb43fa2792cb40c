// Package broadcast implements a small generic, type-safe publish/
// subscribe bus, adapted from the websocket delivery layer's connection
// registry pattern (each subscriber is a buffered channel the bus never
// blocks writing to) but generalized to carry any payload type rather
// than a single WebSocket message DTO.
package broadcast

import (
	"sync"

	"go.uber.org/zap"

	"halfearth/internal/logger"
)

// subscriberBuffer is how many pending messages a slow subscriber may
// accumulate before Publish starts dropping messages to it rather than
// blocking the publisher.
const subscriberBuffer = 16

// Bus fans a stream of T out to any number of subscribers. The zero value
// is not usable; construct with New.
type Bus[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

// New returns an empty Bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subs: map[int]chan T{}}
}

// Subscribe registers a new subscriber and returns its channel and an
// unsubscribe function. The caller must drain the channel; a subscriber
// that falls subscriberBuffer messages behind has new messages dropped
// for it rather than stalling the publisher.
func (b *Bus[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan T, subscriberBuffer)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

// Publish fans msg out to every current subscriber, dropping it for any
// subscriber whose buffer is full instead of blocking.
func (b *Bus[T]) Publish(msg T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- msg:
		default:
			logger.Get().Warn("broadcast: dropping message for slow subscriber", zap.Int("subscriber_id", id))
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Bus[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
