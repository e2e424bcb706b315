// Package terminal provides a keyboard Source backed by a tcell screen.
//
// Terminals only report key-down, so each observed key produces a press
// event immediately followed by a synthetic release.
package terminal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/input/key"
)

// Source reads keyboard events from a tcell screen.
type Source struct {
	screen tcell.Screen
}

// NewSource creates a Source on a fresh terminal screen.
func NewSource() (*Source, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Source{screen: screen}, nil
}

// NewSourceWithScreen creates a Source on an existing screen, such as a
// tcell simulation screen.
func NewSourceWithScreen(screen tcell.Screen) *Source {
	return &Source{screen: screen}
}

// Name identifies this source in logs.
func (s *Source) Name() string { return "keyboard" }

// Run polls the screen until ctx is cancelled, translating key events into
// trigger events on the channel. The screen is initialized on entry and
// finalized on return.
func (s *Source) Run(ctx context.Context, events chan<- input.Event) error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer s.screen.Fini()

	// PollEvent blocks. Wake it on cancellation with an interrupt event.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventKey:
			name, ok := triggerName(ev)
			if !ok {
				continue
			}
			trigger := input.KeyboardTrigger(name)
			now := time.Now()
			if err := s.emit(ctx, events, input.Event{Trigger: trigger, Edge: input.EdgePress, Time: now}); err != nil {
				return err
			}
			if err := s.emit(ctx, events, input.Event{Trigger: trigger, Edge: input.EdgeRelease, Time: now}); err != nil {
				return err
			}
		}
	}
}

func (s *Source) emit(ctx context.Context, events chan<- input.Event, ev input.Event) error {
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// triggerName converts a tcell key event into a canonical trigger name,
// e.g. "A", "F5" or "Ctrl+R". Unmappable keys return false.
func triggerName(ev *tcell.EventKey) (string, bool) {
	mods := ev.Modifiers()
	var base string

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			base = "Space"
			break
		}
		name, ok := key.Canonical(string(r))
		if !ok {
			return "", false
		}
		base = name
	case tcell.KeyEscape:
		base = "Escape"
	case tcell.KeyEnter:
		base = "Enter"
	case tcell.KeyTab:
		base = "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		base = "Backspace"
	case tcell.KeyDelete:
		base = "Delete"
	case tcell.KeyInsert:
		base = "Insert"
	case tcell.KeyHome:
		base = "Home"
	case tcell.KeyEnd:
		base = "End"
	case tcell.KeyPgUp:
		base = "PageUp"
	case tcell.KeyPgDn:
		base = "PageDown"
	case tcell.KeyUp:
		base = "Up"
	case tcell.KeyDown:
		base = "Down"
	case tcell.KeyLeft:
		base = "Left"
	case tcell.KeyRight:
		base = "Right"
	case tcell.KeyCtrlSpace:
		// Most terminals report Ctrl+` as NUL.
		base = "`"
		mods |= tcell.ModCtrl
	default:
		switch {
		case k >= tcell.KeyF1 && k <= tcell.KeyF12:
			base = "F" + strconv.Itoa(int(k-tcell.KeyF1)+1)
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			base = string(rune('A' + k - tcell.KeyCtrlA))
			mods |= tcell.ModCtrl
		default:
			return "", false
		}
	}

	if mods == 0 {
		return base, true
	}
	var b strings.Builder
	if mods&tcell.ModCtrl != 0 {
		b.WriteString(key.NameCtrl + "+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString(key.NameAlt + "+")
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString(key.NameShift + "+")
	}
	b.WriteString(base)
	return b.String(), true
}
