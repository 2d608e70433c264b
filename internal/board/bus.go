package board

import "sync"

// Topic names a class of process-wide input events.
type Topic string

// TopicDragEnded fires on pointer release anywhere, independent of whether
// a drop target received the gesture.
const TopicDragEnded Topic = "drag_ended"

// Bus is a small process-wide input event bus. Components subscribe on
// construction and must unsubscribe on teardown; Publish never blocks on a
// subscriber's lock because handlers run outside the bus lock.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]func()
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[int]func())}
}

// Subscribe registers a handler for a topic and returns the subscription id
// needed to release it.
func (b *Bus) Subscribe(topic Topic, fn func()) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}
	b.subs[topic][id] = fn
	return id
}

// Unsubscribe releases a subscription. Releasing an unknown id is a no-op.
func (b *Bus) Unsubscribe(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.subs[topic]; ok {
		delete(handlers, id)
	}
}

// Publish invokes every handler subscribed to the topic, synchronously.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
