package utils

import (
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"
)

// DefaultBuffer is how many unread values a subscriber may fall behind by
// before it starts missing them.
const DefaultBuffer = 64

// Topic fans values out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the value.
type Topic[T any] struct {
	subscribers map[chan T]struct{}
	mutex       deadlock.Mutex
	dropped     atomic.Uint64
}

func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{
		subscribers: make(map[chan T]struct{}),
	}
}

func (t *Topic[T]) Publish(value T) {
	t.mutex.Lock()
	for subscriber := range t.subscribers {
		select {
		case subscriber <- value:
		default:
			t.dropped.Add(1)
		}
	}
	t.mutex.Unlock()
}

// Dropped counts values that some subscriber missed.
func (t *Topic[T]) Dropped() uint64 {
	return t.dropped.Load()
}

func (t *Topic[T]) NumSubscribers() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.subscribers)
}

type Subscriber[T any] struct {
	channel chan T
	topic   *Topic[T]
}

func (t *Topic[T]) Subscribe() *Subscriber[T] {
	return t.SubscribeBuffered(DefaultBuffer)
}

func (t *Topic[T]) SubscribeBuffered(size int) *Subscriber[T] {
	channel := make(chan T, size)
	t.mutex.Lock()
	t.subscribers[channel] = struct{}{}
	t.mutex.Unlock()

	return &Subscriber[T]{channel, t}
}

func (t *Subscriber[T]) Recv() <-chan T {
	return t.channel
}

// Done unsubscribes. Values already buffered can still be drained.
func (t *Subscriber[T]) Done() {
	topic := t.topic
	topic.mutex.Lock()
	delete(topic.subscribers, t.channel)
	topic.mutex.Unlock()
}
