package console

import (
	"sync"
	"time"
)

type EventType int

type SubscriberID int

type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any
}

type subscriber struct {
	fn     func(Event)
	filter map[EventType]struct{}
}

// EventBus fans console events out to in-process subscribers. Delivery
// is synchronous, on the emitter's goroutine.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[SubscriberID]subscriber
	nextID SubscriberID
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[SubscriberID]subscriber)}
}

// Subscribe registers a handler. With no types it receives every event;
// otherwise only the listed types are delivered.
func (eb *EventBus) Subscribe(fn func(Event), types ...EventType) SubscriberID {
	var filter map[EventType]struct{}
	if len(types) > 0 {
		filter = make(map[EventType]struct{}, len(types))
		for _, t := range types {
			filter[t] = struct{}{}
		}
	}
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	eb.subs[eb.nextID] = subscriber{fn: fn, filter: filter}
	return eb.nextID
}

// Unsubscribe removes a subscriber by ID.
func (eb *EventBus) Unsubscribe(id SubscriberID) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.subs, id)
}

// Emit sends an event to all matching subscribers. Handlers registered
// while an emit is in flight see only later events.
func (eb *EventBus) Emit(evt Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	eb.mu.RLock()
	matched := make([]func(Event), 0, len(eb.subs))
	for _, s := range eb.subs {
		if s.filter != nil {
			if _, ok := s.filter[evt.Type]; !ok {
				continue
			}
		}
		matched = append(matched, s.fn)
	}
	eb.mu.RUnlock()

	for _, fn := range matched {
		fn(evt)
	}
}
