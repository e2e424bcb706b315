// Package gamepad provides a controller Source backed by SDL2.
package gamepad

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mfonda/keytrigger/internal/input"
)

// DefaultPollInterval is how often the SDL event queue is drained.
const DefaultPollInterval = 16 * time.Millisecond

// Source reads controller button events from SDL. Controllers are opened
// as they attach and closed as they detach.
type Source struct {
	pollInterval time.Duration
	controllers  map[sdl.JoystickID]*sdl.GameController
}

// Option configures a Source.
type Option func(*Source)

// WithPollInterval overrides the event queue drain interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Source) { s.pollInterval = d }
}

// NewSource creates a controller source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		pollInterval: DefaultPollInterval,
		controllers:  make(map[sdl.JoystickID]*sdl.GameController),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies this source in logs.
func (s *Source) Name() string { return "gamepad" }

// Run drains the SDL event queue until ctx is cancelled, translating button
// edges into trigger events on the channel.
func (s *Source) Run(ctx context.Context, events chan<- input.Event) error {
	if err := sdl.Init(sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("init sdl: %w", err)
	}
	defer sdl.Quit()
	defer s.closeAll()

	// Controllers already attached at startup never produce an added event.
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if sdl.IsGameController(i) {
			s.open(i)
		}
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Loop until the queue is empty so a burst of presses resolves
			// within one tick.
			for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
				switch ev := ev.(type) {
				case *sdl.ControllerDeviceEvent:
					s.handleDevice(ev)
				case *sdl.ControllerButtonEvent:
					name, ok := buttonName(sdl.GameControllerButton(ev.Button))
					if !ok {
						continue
					}
					edge := input.EdgeRelease
					if ev.State == sdl.PRESSED {
						edge = input.EdgePress
					}
					out := input.Event{
						Trigger: input.GamepadTrigger(name),
						Edge:    edge,
						Time:    time.Now(),
					}
					select {
					case events <- out:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
	}
}

func (s *Source) handleDevice(ev *sdl.ControllerDeviceEvent) {
	switch ev.GetType() {
	case sdl.CONTROLLERDEVICEADDED:
		s.open(int(ev.Which))
	case sdl.CONTROLLERDEVICEREMOVED:
		id := sdl.JoystickID(ev.Which)
		if ctrl, ok := s.controllers[id]; ok {
			ctrl.Close()
			delete(s.controllers, id)
		}
	}
}

func (s *Source) open(index int) {
	ctrl := sdl.GameControllerOpen(index)
	if ctrl == nil {
		return
	}
	s.controllers[ctrl.Joystick().InstanceID()] = ctrl
}

func (s *Source) closeAll() {
	for id, ctrl := range s.controllers {
		ctrl.Close()
		delete(s.controllers, id)
	}
}

// buttonName maps an SDL controller button to its canonical trigger name.
func buttonName(b sdl.GameControllerButton) (string, bool) {
	switch b {
	case sdl.CONTROLLER_BUTTON_A:
		return "A", true
	case sdl.CONTROLLER_BUTTON_B:
		return "B", true
	case sdl.CONTROLLER_BUTTON_X:
		return "X", true
	case sdl.CONTROLLER_BUTTON_Y:
		return "Y", true
	case sdl.CONTROLLER_BUTTON_LEFTSHOULDER:
		return "LB", true
	case sdl.CONTROLLER_BUTTON_RIGHTSHOULDER:
		return "RB", true
	case sdl.CONTROLLER_BUTTON_LEFTSTICK:
		return "LS", true
	case sdl.CONTROLLER_BUTTON_RIGHTSTICK:
		return "RS", true
	case sdl.CONTROLLER_BUTTON_START:
		return "Start", true
	case sdl.CONTROLLER_BUTTON_BACK:
		return "Back", true
	case sdl.CONTROLLER_BUTTON_GUIDE:
		return "Guide", true
	case sdl.CONTROLLER_BUTTON_DPAD_UP:
		return "DUp", true
	case sdl.CONTROLLER_BUTTON_DPAD_DOWN:
		return "DDown", true
	case sdl.CONTROLLER_BUTTON_DPAD_LEFT:
		return "DLeft", true
	case sdl.CONTROLLER_BUTTON_DPAD_RIGHT:
		return "DRight", true
	default:
		return "", false
	}
}
