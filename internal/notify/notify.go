// Package notify provides the notification boundary between the macro engine
// and the presentation layer.
//
// The engine publishes typed events (toggle flips, dropped bindings, unknown
// keys, injection failures) and observers render or log them. Delivery is
// synchronous by default; a buffered asynchronous mode is available so slow
// observers cannot stall the dispatcher.
package notify

import (
	"sync"
	"time"

	"github.com/mfonda/keytrigger/internal/input"
)

// Kind classifies a notification event.
type Kind int

const (
	// KindToggle reports a change of the global enable state.
	KindToggle Kind = iota

	// KindBindingDropped reports a binding rejected at load time, either
	// malformed or a duplicate of an earlier binding.
	KindBindingDropped

	// KindFiringDropped reports a firing discarded at runtime because the
	// trigger's execution queue was full.
	KindFiringDropped

	// KindUnknownKey reports a key name or character with no mapping,
	// encountered during execution.
	KindUnknownKey

	// KindInjectionFailure reports a refused OS injection call. The
	// containing sequence was aborted and held keys drained.
	KindInjectionFailure

	// KindExecution reports the start or end of an action execution.
	KindExecution
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindBindingDropped:
		return "binding-dropped"
	case KindFiringDropped:
		return "firing-dropped"
	case KindUnknownKey:
		return "unknown-key"
	case KindInjectionFailure:
		return "injection-failure"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// Event is one notification from the engine.
type Event struct {
	Kind Kind
	Time time.Time

	// Enabled carries the new state for KindToggle.
	Enabled bool

	// Trigger is the trigger involved, when one applies.
	Trigger input.Trigger

	// ExecID correlates diagnostics from a single action execution.
	ExecID string

	// Key is the offending key name or character for KindUnknownKey.
	Key string

	// Detail is a human-readable description.
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Observer receives published events.
type Observer func(Event)

// Subscription is an active observer registration.
type Subscription struct {
	id  uint64
	hub *Hub
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.hub != nil {
		s.hub.unsubscribe(s.id)
	}
}

// Hub fans events out to observers.
type Hub struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64

	async  bool
	buffer chan Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewHub creates a synchronous hub. Publish calls each observer inline.
func NewHub() *Hub {
	return &Hub{observers: make(map[uint64]Observer)}
}

// NewAsyncHub creates a hub that delivers events from a single background
// goroutine through a buffer of the given size. When the buffer is full,
// Publish drops the event rather than block the publisher.
func NewAsyncHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	h := &Hub{
		observers: make(map[uint64]Observer),
		async:     true,
		buffer:    make(chan Event, bufferSize),
		done:      make(chan struct{}),
	}
	h.wg.Add(1)
	go h.deliverLoop()
	return h
}

// Subscribe registers an observer for all events.
func (h *Hub) Subscribe(o Observer) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.observers[id] = o
	return &Subscription{id: id, hub: h}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.observers, id)
}

// Publish delivers an event to all observers. The event time is stamped if
// unset.
func (h *Hub) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	if h.async {
		select {
		case h.buffer <- ev:
		default:
			// Buffer full. Dropping a notification is preferable to
			// stalling the dispatcher.
		}
		return
	}

	h.deliver(ev)
}

func (h *Hub) deliver(ev Event) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		o(ev)
	}
}

func (h *Hub) deliverLoop() {
	defer h.wg.Done()
	for {
		select {
		case ev := <-h.buffer:
			h.deliver(ev)
		case <-h.done:
			// Drain whatever is left before exiting.
			for {
				select {
				case ev := <-h.buffer:
					h.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

// Close stops asynchronous delivery after draining buffered events.
// Close is a no-op for synchronous hubs.
func (h *Hub) Close() {
	if !h.async {
		return
	}
	close(h.done)
	h.wg.Wait()
}
