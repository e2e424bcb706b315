package macro

import (
	"context"
	"fmt"
	"time"

	"github.com/mfonda/keytrigger/internal/input/key"
	"github.com/mfonda/keytrigger/internal/notify"
)

// SleepFunc pauses the executing action. It returns an error when the pause
// was interrupted by context cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Interpreter executes one action definition to completion, issuing
// injection primitives in exactly the order the definition implies.
type Interpreter struct {
	inj    Injector
	keys   *KeyState
	delays *Resolver
	hub    *notify.Hub
	sleep  SleepFunc
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithResolver sets the delay resolver, for deterministic seeding.
func WithResolver(r *Resolver) InterpreterOption {
	return func(it *Interpreter) { it.delays = r }
}

// WithKeyState sets the shared key-state tracker.
func WithKeyState(ks *KeyState) InterpreterOption {
	return func(it *Interpreter) { it.keys = ks }
}

// WithHub sets the notification hub for diagnostics.
func WithHub(h *notify.Hub) InterpreterOption {
	return func(it *Interpreter) { it.hub = h }
}

// WithSleep replaces the pause implementation. Tests use this to make waits
// instantaneous while still recording them.
func WithSleep(fn SleepFunc) InterpreterOption {
	return func(it *Interpreter) { it.sleep = fn }
}

// NewInterpreter creates an interpreter over the given injection capability.
func NewInterpreter(inj Injector, opts ...InterpreterOption) *Interpreter {
	it := &Interpreter{
		inj:   inj,
		sleep: defaultSleep,
	}
	for _, opt := range opts {
		opt(it)
	}
	if it.delays == nil {
		it.delays = NewResolver()
	}
	if it.keys == nil {
		it.keys = NewKeyState(inj)
	}
	if it.hub == nil {
		it.hub = notify.NewHub()
	}
	return it
}

// KeyState returns the shared key-state tracker.
func (it *Interpreter) KeyState() *KeyState {
	return it.keys
}

// Execute runs one action to completion. A sequence that ends normally with
// keys still pressed leaves them held; any error drains every held key
// before returning.
func (it *Interpreter) Execute(ctx context.Context, execID string, act Action) error {
	var err error
	switch act.Kind {
	case KindTypeText:
		err = it.typeText(ctx, execID, act.Text, act.Delay)
	case KindSequence:
		err = it.runSequence(ctx, execID, act.Steps)
	case KindScript:
		err = it.runScript(ctx, execID, act.Script)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownAction, act.Kind)
	}

	if err != nil {
		// Abnormal termination. Drain held keys so nothing stays stuck.
		_ = it.keys.ReleaseAll()
	}
	return err
}

// runSequence iterates steps strictly in order. An unknown key name aborts
// only its own step: held keys are drained for safety and the sequence
// continues. An injection failure aborts the whole sequence.
func (it *Interpreter) runSequence(ctx context.Context, execID string, steps []Step) error {
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrExecutionAborted, err)
		}

		switch st.Kind {
		case StepKey:
			if err := it.runKeyStep(ctx, execID, st); err != nil {
				return err
			}
		case StepWait:
			var d time.Duration
			if st.Randomized {
				d = it.delays.ResolveRandom(st.Wait.Min)
			} else {
				d = it.delays.Resolve(st.Wait)
			}
			if err := it.sleep(ctx, d); err != nil {
				return err
			}
		case StepText:
			if err := it.typeText(ctx, execID, st.Text, st.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// runKeyStep performs one key operation and the trailing delay.
func (it *Interpreter) runKeyStep(ctx context.Context, execID string, st Step) error {
	name, ok := key.Canonical(st.Key)
	if !ok {
		// Skip only this step, but drain held keys first: continuing a
		// combo with a missing key risks stuck modifiers.
		it.hub.Publish(notify.Event{
			Kind:   notify.KindUnknownKey,
			ExecID: execID,
			Key:    st.Key,
			Detail: "key step skipped",
		})
		_ = it.keys.ReleaseAll()
		return nil
	}

	switch st.Action {
	case ActionPress:
		if err := it.pressKey(execID, name); err != nil {
			return err
		}
		it.keys.MarkHeld(name)
	case ActionRelease:
		if err := it.releaseKey(execID, name); err != nil {
			return err
		}
		it.keys.MarkReleased(name)
	case ActionComplete:
		if err := it.pressKey(execID, name); err != nil {
			return err
		}
		if err := it.releaseKey(execID, name); err != nil {
			return err
		}
	}

	return it.sleep(ctx, it.delays.Resolve(st.Delay))
}

// typeText types text character by character, shift-bracketing the ones that
// need it. Characters with no mapping fall back to the Unicode primitive; if
// that fails too they are skipped with a diagnostic and typing continues.
func (it *Interpreter) typeText(ctx context.Context, execID, text string, delay DelaySpec) error {
	runes := []rune(text)
	for i, r := range runes {
		stroke, ok := key.StrokeForRune(r)
		if !ok {
			if err := it.inj.TypeRune(r); err != nil {
				it.hub.Publish(notify.Event{
					Kind:   notify.KindUnknownKey,
					ExecID: execID,
					Key:    string(r),
					Detail: "character skipped",
					Err:    err,
				})
			}
		} else if err := it.typeStroke(execID, stroke); err != nil {
			return err
		}

		if i < len(runes)-1 {
			if err := it.sleep(ctx, it.delays.Resolve(delay)); err != nil {
				return err
			}
		}
	}
	return nil
}

// typeStroke issues the press/release pair for one character, bracketed by a
// transient Shift hold when required.
func (it *Interpreter) typeStroke(execID string, stroke key.Stroke) error {
	if stroke.Shift {
		if err := it.pressKey(execID, key.NameShift); err != nil {
			return err
		}
		it.keys.MarkHeld(key.NameShift)
	}

	if err := it.pressKey(execID, stroke.Key); err != nil {
		return err
	}
	if err := it.releaseKey(execID, stroke.Key); err != nil {
		return err
	}

	if stroke.Shift {
		if err := it.releaseKey(execID, key.NameShift); err != nil {
			return err
		}
		it.keys.MarkReleased(key.NameShift)
	}
	return nil
}

func (it *Interpreter) pressKey(execID, name string) error {
	if err := it.inj.PressKey(name); err != nil {
		return it.injectionFailed(execID, "press", name, err)
	}
	return nil
}

func (it *Interpreter) releaseKey(execID, name string) error {
	if err := it.inj.ReleaseKey(name); err != nil {
		return it.injectionFailed(execID, "release", name, err)
	}
	return nil
}

func (it *Interpreter) injectionFailed(execID, op, name string, err error) error {
	ierr := &InjectionError{Op: op, Key: name, Err: err}
	it.hub.Publish(notify.Event{
		Kind:   notify.KindInjectionFailure,
		ExecID: execID,
		Key:    name,
		Err:    ierr,
	})
	return ierr
}

// defaultSleep waits on a timer, returning early if the context ends.
func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrExecutionAborted, ctx.Err())
	case <-t.C:
		return nil
	}
}
