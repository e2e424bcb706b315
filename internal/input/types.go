package input

import (
	"context"
	"fmt"
	"time"
)

// Device identifies the kind of input hardware a trigger belongs to.
type Device int

const (
	// DeviceKeyboard is a physical keyboard key.
	DeviceKeyboard Device = iota

	// DeviceGamepad is a game-controller button.
	DeviceGamepad
)

// String returns the device name.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceGamepad:
		return "gamepad"
	default:
		return fmt.Sprintf("Device(%d)", d)
	}
}

// Trigger identifies a bindable key or button. Triggers are comparable and
// are used directly as registry map keys. Equality requires both the same
// device and the same name, so the keyboard and gamepad namespaces never
// collide.
type Trigger struct {
	Device Device
	Name   string
}

// KeyboardTrigger returns a trigger in the keyboard namespace.
func KeyboardTrigger(name string) Trigger {
	return Trigger{Device: DeviceKeyboard, Name: name}
}

// GamepadTrigger returns a trigger in the gamepad namespace.
func GamepadTrigger(name string) Trigger {
	return Trigger{Device: DeviceGamepad, Name: name}
}

// String returns a namespaced display form, e.g. "keyboard:F2" or "gamepad:A".
func (t Trigger) String() string {
	return t.Device.String() + ":" + t.Name
}

// Edge is a press or release transition reported by a source.
type Edge int

const (
	// EdgePress is a key-down or button-down transition.
	EdgePress Edge = iota

	// EdgeRelease is a key-up or button-up transition.
	EdgeRelease
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgePress:
		return "press"
	case EdgeRelease:
		return "release"
	default:
		return fmt.Sprintf("Edge(%d)", e)
	}
}

// Event is a single edge transition from an input source.
type Event struct {
	Trigger Trigger
	Edge    Edge
	Time    time.Time
}

// Source produces edge events. Run blocks, writing events to the shared
// channel until the context is cancelled. Sends must not block event capture
// indefinitely; a source may drop events if the consumer stalls.
type Source interface {
	// Name identifies the source in logs and diagnostics.
	Name() string

	// Run captures events until ctx is done. It returns nil on a clean
	// shutdown and an error if capture fails.
	Run(ctx context.Context, events chan<- Event) error
}
