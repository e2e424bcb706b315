package macro

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/notify"
)

// ToggleTrigger is the reserved identity that flips the global toggle. It is
// wired ahead of the registry and can never be bound by configuration.
var ToggleTrigger = input.KeyboardTrigger("Ctrl+`")

// defaultLaneQueue bounds how many firings of one trigger may wait behind a
// running execution.
const defaultLaneQueue = 16

// Dispatcher consumes edge events from all input sources, applies the global
// toggle, and hands bound actions to the interpreter.
//
// Execution never blocks event intake: each trigger gets a serialized lane
// running on its own goroutine, so re-entrant firings of one trigger queue
// behind each other while different triggers execute concurrently.
type Dispatcher struct {
	registry *Registry
	interp   *Interpreter
	hub      *notify.Hub

	enabled   atomic.Bool
	toggle    input.Trigger
	queueSize int

	mu    sync.Mutex
	lanes map[input.Trigger]*lane
	wg    sync.WaitGroup

	// stop is closed when Run exits, so lanes shut down even when the
	// context is still live (events channel closed).
	stop chan struct{}
}

// lane is the serialized execution queue for one trigger.
type lane struct {
	jobs chan job
}

type job struct {
	execID string
	action Action
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithToggle overrides the reserved toggle trigger.
func WithToggle(t input.Trigger) DispatcherOption {
	return func(d *Dispatcher) { d.toggle = t }
}

// WithLaneQueueSize bounds the per-trigger execution queue.
func WithLaneQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

// NewDispatcher creates a dispatcher over a built registry. Dispatch starts
// enabled.
func NewDispatcher(reg *Registry, interp *Interpreter, hub *notify.Hub, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		interp:    interp,
		hub:       hub,
		toggle:    ToggleTrigger,
		queueSize: defaultLaneQueue,
		lanes:     make(map[input.Trigger]*lane),
		stop:      make(chan struct{}),
	}
	d.enabled.Store(true)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enabled reports the current toggle state.
func (d *Dispatcher) Enabled() bool {
	return d.enabled.Load()
}

// Run consumes events until the context ends or the channel closes. It must
// be called at most once. On return every execution lane has stopped and any
// keys still held have been released.
func (d *Dispatcher) Run(ctx context.Context, events <-chan input.Event) error {
	defer func() {
		close(d.stop)
		d.wg.Wait()
		// Final safety net: a sequence aborted by shutdown has already
		// drained, but a Press left held by a completed sequence must not
		// outlive the process.
		_ = d.interp.KeyState().ReleaseAll()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.handle(ctx, ev)
		}
	}
}

// handle applies the dispatch rules to one edge event.
func (d *Dispatcher) handle(ctx context.Context, ev input.Event) {
	// Only rising edges drive dispatch.
	if ev.Edge != input.EdgePress {
		return
	}

	// The toggle is checked before its own gate: it flips in both states.
	if ev.Trigger == d.toggle {
		d.flip()
		return
	}

	if !d.enabled.Load() {
		return
	}

	act, ok := d.registry.Lookup(ev.Trigger)
	if !ok {
		return
	}

	d.enqueue(ctx, ev.Trigger, act)
}

// flip toggles the dispatch state and notifies the presentation layer.
// Only the Run goroutine writes the state; readers are concurrent.
func (d *Dispatcher) flip() {
	next := !d.enabled.Load()
	d.enabled.Store(next)
	d.hub.Publish(notify.Event{
		Kind:    notify.KindToggle,
		Enabled: next,
	})
}

// enqueue hands an action to the trigger's lane, creating the lane on first
// use. A full lane drops the firing with a diagnostic rather than block the
// capture path.
func (d *Dispatcher) enqueue(ctx context.Context, t input.Trigger, act Action) {
	ln := d.laneFor(ctx, t)

	j := job{execID: uuid.NewString(), action: act}
	select {
	case ln.jobs <- j:
	default:
		d.hub.Publish(notify.Event{
			Kind:    notify.KindFiringDropped,
			Trigger: t,
			ExecID:  j.execID,
			Detail:  "execution queue full, firing dropped",
			Err:     ErrQueueFull,
		})
	}
}

func (d *Dispatcher) laneFor(ctx context.Context, t input.Trigger) *lane {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ln, ok := d.lanes[t]; ok {
		return ln
	}

	ln := &lane{jobs: make(chan job, d.queueSize)}
	d.lanes[t] = ln

	d.wg.Add(1)
	go d.runLane(ctx, t, ln)

	return ln
}

// runLane executes queued jobs for one trigger, strictly one at a time.
func (d *Dispatcher) runLane(ctx context.Context, t input.Trigger, ln *lane) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			return
		case j := <-ln.jobs:
			err := d.interp.Execute(ctx, j.execID, j.action)
			d.hub.Publish(notify.Event{
				Kind:    notify.KindExecution,
				Trigger: t,
				ExecID:  j.execID,
				Detail:  "execution finished",
				Err:     err,
			})
		}
	}
}
