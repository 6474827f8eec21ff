package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events.
type EventType string

type envelope struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
}

// Context returns the context of the request that produced the event.
// Handlers read the current traveler from it.
func (e envelope) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// Event is published on the bus. Data stays untyped so one bus carries every payload;
// typed subscribers narrow it with SubscribeTyped.
type Event struct {
	envelope
	Data any
}

// NewEvent creates a new Event stamped with the current time.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		envelope: envelope{ctx: ctx, Type: eventType, Timestamp: time.Now()},
		Data:     data,
	}
}

// EventT is the typed event passed to handlers registered with SubscribeTyped.
type EventT[T any] struct {
	envelope
	Data T
}

type subscription struct {
	id uint64
	h  func(Event) error
}

// dispatch runs the handler, turning a panic into an error.
func (s subscription) dispatch(e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic (ID %d) for event %s: %v", s.id, e.Type, r)
		}
	}()
	return s.h(e)
}

// EventBus is a synchronous dispatcher. Handlers run in registration order inside Publish.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers h for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, h: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		subs := eb.subscribers[eventType]
		for i, s := range subs {
			if s.id == id {
				eb.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.subscribers[eventType]) == 0 {
			delete(eb.subscribers, eventType)
		}
	}
}

// SubscribeTyped registers a handler expecting payload type T. Events carrying another
// payload type are skipped. It is a free function because methods cannot take type parameters.
//
// Example:
//
//	unsub := event_bus.SubscribeTyped(bus, event_bus.ExpenseAddedType,
//	    func(e event_bus.EventT[event_bus.ExpenseAdded]) error {
//	        log.Infof("expense %s added to %s", e.Data.Id, e.Data.Category)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	wrapper := func(e Event) error {
		if e.Data == nil {
			log.Debugf("EventBus: nil data for event type %s, skipping typed handler", eventType)
			return nil
		}

		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: type mismatch for event %s: expected %T, got %T",
				eventType, *new(T), e.Data)
			return nil
		}

		return h(EventT[T]{envelope: e.envelope, Data: payload})
	}
	return eb.Subscribe(eventType, wrapper)
}

// Publish delivers the event to every handler of its type. A failing or panicking handler
// does not stop the others; all failures are joined into the returned error.
// A cancelled event context stops delivery.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := make([]subscription, len(eb.subscribers[e.Type]))
	copy(subs, eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}

		if err := sub.dispatch(e); err != nil {
			log.Errorf("EventBus: handler error (ID %d) for event %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}
