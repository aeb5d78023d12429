package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Topic names a kind of notification.
type Topic string

// StateChanged is published after every application state mutation. Data is the new state version.
const StateChanged Topic = "state.changed"

// Message is what subscribers receive. Data is untyped so one bus can carry any payload.
type Message struct {
	ctx       context.Context
	Topic     Topic
	Timestamp time.Time
	Data      any
}

func NewMessage(ctx context.Context, topic Topic, data any) Message {
	return Message{
		ctx:       ctx,
		Topic:     topic,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the publisher's context, or context.Background when none was given.
func (m Message) Context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

type subscriber struct {
	id uint64
	fn func(Message) error
}

// Bus is a synchronous dispatcher: Publish runs every subscriber of the topic, in subscription
// order, on the publisher's goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]subscriber
	nextId      uint64
}

func New() *Bus {
	return &Bus{subscribers: make(map[Topic][]subscriber)}
}

// Subscribe registers fn for topic and returns a function removing it again.
func (b *Bus) Subscribe(topic Topic, fn func(Message) error) (unsubscribe func()) {
	b.mu.Lock()
	b.nextId++
	id := b.nextId
	b.subscribers[topic] = append(b.subscribers[topic], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subscribers[topic]
		for i, s := range subs {
			if s.id == id {
				b.subscribers[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}
	}
}

// SubscribeTyped registers a subscriber that only sees messages whose Data is a T.
// Messages carrying another payload type are skipped.
func SubscribeTyped[T any](b *Bus, topic Topic, fn func(ctx context.Context, data T) error) (unsubscribe func()) {
	return b.Subscribe(topic, func(m Message) error {
		data, ok := m.Data.(T)
		if !ok {
			log.Debugf("bus: %s carries %T, expected %T, skipping", topic, m.Data, *new(T))
			return nil
		}
		return fn(m.Context(), data)
	})
}

// Publish delivers m to the subscribers of its topic. Subscriber errors and panics are logged and
// joined into the returned error; they do not stop delivery to the remaining subscribers.
func (b *Bus) Publish(m Message) error {
	if err := m.Context().Err(); err != nil {
		return fmt.Errorf("%s: context cancelled before publish: %w", m.Topic, err)
	}

	b.mu.RLock()
	subs := make([]subscriber, len(b.subscribers[m.Topic]))
	copy(subs, b.subscribers[m.Topic])
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := deliver(s, m); err != nil {
			log.Errorf("bus: subscriber %d failed on %s: %v", s.id, m.Topic, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver(s subscriber, m Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber %d panicked on %s: %v", s.id, m.Topic, r)
		}
	}()
	return s.fn(m)
}
