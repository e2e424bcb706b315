package config

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/macro"
)

func TestBuildFullDocument(t *testing.T) {
	doc, err := Parse([]byte(`
[[hotkeys]]
key = "F5"
action = "type_text"
text = "hello"
delay = { min = 5, max = 15 }

[[hotkeys]]
button = "LB"
action = "sequence"
steps = [
    { type = "key", key = "shift", action = "press" },
    { type = "key", key = "a", delay = 20 },
    { type = "wait", ms = 100 },
    { type = "key", key = "shift", action = "release" },
    { type = "text", text = "done" },
]

[[hotkeys]]
key = "ctrl+r"
action = "script"
script = "tap('enter')"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	bindings, verrs := Build(doc)
	if len(verrs) != 0 {
		t.Fatalf("Build() errors = %v", verrs)
	}
	if len(bindings) != 3 {
		t.Fatalf("Build() bindings = %d, want 3", len(bindings))
	}

	text := bindings[0]
	if text.Trigger != input.KeyboardTrigger("F5") {
		t.Errorf("trigger = %v, want keyboard F5", text.Trigger)
	}
	if text.Action.Kind != macro.KindTypeText || text.Action.Text != "hello" {
		t.Errorf("action = %+v, want type_text hello", text.Action)
	}
	wantDelay := macro.RangeDelay(5*time.Millisecond, 15*time.Millisecond)
	if text.Action.Delay != wantDelay {
		t.Errorf("delay = %+v, want %+v", text.Action.Delay, wantDelay)
	}

	seq := bindings[1]
	if seq.Trigger != input.GamepadTrigger("LB") {
		t.Errorf("trigger = %v, want gamepad LB", seq.Trigger)
	}
	steps := seq.Action.Steps
	if len(steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(steps))
	}
	if steps[0].Kind != macro.StepKey || steps[0].Key != "Shift" || steps[0].Action != macro.ActionPress {
		t.Errorf("step 0 = %+v, want press Shift", steps[0])
	}
	if steps[1].Key != "A" || steps[1].Action != macro.ActionComplete {
		t.Errorf("step 1 = %+v, want complete A", steps[1])
	}
	if steps[1].Delay != macro.FixedDelay(20*time.Millisecond) {
		t.Errorf("step 1 delay = %+v, want fixed 20ms", steps[1].Delay)
	}
	if steps[2].Kind != macro.StepWait || steps[2].Wait != macro.FixedDelay(100*time.Millisecond) {
		t.Errorf("step 2 = %+v, want wait 100ms", steps[2])
	}
	if steps[4].Kind != macro.StepText || steps[4].Text != "done" {
		t.Errorf("step 4 = %+v, want text done", steps[4])
	}
	if steps[4].Delay != macro.FixedDelay(DefaultTypeDelay) {
		t.Errorf("step 4 delay = %+v, want default", steps[4].Delay)
	}

	script := bindings[2]
	if script.Trigger != input.KeyboardTrigger("Ctrl+R") {
		t.Errorf("trigger = %v, want keyboard Ctrl+R", script.Trigger)
	}
	if script.Action.Kind != macro.KindScript || script.Action.Script != "tap('enter')" {
		t.Errorf("action = %+v, want script", script.Action)
	}
}

func TestBuildTypeTextDefaultDelay(t *testing.T) {
	doc := &Document{Hotkeys: []Hotkey{
		{Key: "F1", Action: "type_text", Text: "x"},
	}}
	bindings, verrs := Build(doc)
	if len(verrs) != 0 {
		t.Fatalf("Build() errors = %v", verrs)
	}
	if got := bindings[0].Action.Delay; got != macro.FixedDelay(DefaultTypeDelay) {
		t.Errorf("delay = %+v, want fixed %v", got, DefaultTypeDelay)
	}
}

func TestBuildRejectsInvertedDelayRange(t *testing.T) {
	doc, err := Parse([]byte(`
[[hotkeys]]
key = "F2"
action = "type_text"
text = "x"
delay = { min = 20, max = 10 }
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	bindings, verrs := Build(doc)
	if len(bindings) != 0 {
		t.Fatalf("inverted range produced a binding: %+v", bindings)
	}
	if len(verrs) != 1 {
		t.Fatalf("Build() errors = %d, want 1", len(verrs))
	}
	if !errors.Is(verrs[0], ErrInvalidDelay) {
		t.Errorf("error = %v, want ErrInvalidDelay", verrs[0])
	}
}

func TestBuildSkipsInvalidBindingAndContinues(t *testing.T) {
	doc := &Document{Hotkeys: []Hotkey{
		{Key: "F1", Action: "type_text", Text: "first"},
		{Key: "nosuchkey", Action: "type_text", Text: "bad"},
		{Key: "F3", Action: "type_text", Text: "third"},
	}}
	bindings, verrs := Build(doc)
	if len(bindings) != 2 {
		t.Fatalf("bindings = %d, want 2", len(bindings))
	}
	if len(verrs) != 1 {
		t.Fatalf("errors = %d, want 1", len(verrs))
	}
	if verrs[0].Index != 1 {
		t.Errorf("error index = %d, want 1", verrs[0].Index)
	}
	if bindings[0].Action.Text != "first" || bindings[1].Action.Text != "third" {
		t.Errorf("surviving bindings = %+v", bindings)
	}
}

func TestBuildTriggerValidation(t *testing.T) {
	tests := []struct {
		name    string
		hk      Hotkey
		wantErr error
	}{
		{"no trigger", Hotkey{Action: "type_text", Text: "x"}, ErrMissingTrigger},
		{"both key and button", Hotkey{Key: "a", Button: "A", Action: "type_text", Text: "x"}, ErrAmbiguousTrigger},
		{"unknown button", Hotkey{Button: "Z", Action: "type_text", Text: "x"}, macro.ErrUnknownKey},
		{"reserved toggle", Hotkey{Key: "ctrl+`", Action: "type_text", Text: "x"}, ErrReservedTrigger},
		{"unknown action", Hotkey{Key: "F4", Action: "explode"}, ErrUnknownAction},
		{"empty sequence", Hotkey{Key: "F4", Action: "sequence"}, ErrUnknownAction},
		{"empty script", Hotkey{Key: "F4", Action: "script", Script: "  "}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings, verrs := Build(&Document{Hotkeys: []Hotkey{tt.hk}})
			if len(bindings) != 0 {
				t.Fatalf("invalid binding loaded: %+v", bindings)
			}
			if len(verrs) != 1 {
				t.Fatalf("errors = %d, want 1", len(verrs))
			}
			if !errors.Is(verrs[0], tt.wantErr) {
				t.Errorf("error = %v, want %v", verrs[0], tt.wantErr)
			}
		})
	}
}

func TestBuildRejectsRandomWaitRange(t *testing.T) {
	doc := &Document{Hotkeys: []Hotkey{
		{Key: "F6", Action: "sequence", Steps: []StepTable{
			{Type: "wait", Ms: map[string]any{"min": int64(0), "max": int64(10)}, Random: true},
		}},
	}}
	bindings, verrs := Build(doc)
	if len(bindings) != 0 {
		t.Fatalf("random range wait loaded: %+v", bindings)
	}
	if len(verrs) != 1 || !errors.Is(verrs[0], ErrInvalidDelay) {
		t.Fatalf("errors = %v, want one ErrInvalidDelay", verrs)
	}
}

func TestBuildRandomWaitScalar(t *testing.T) {
	doc := &Document{Hotkeys: []Hotkey{
		{Key: "F6", Action: "sequence", Steps: []StepTable{
			{Type: "wait", Ms: int64(250), Random: true},
		}},
	}}
	bindings, verrs := Build(doc)
	if len(verrs) != 0 {
		t.Fatalf("Build() errors = %v", verrs)
	}
	step := bindings[0].Action.Steps[0]
	if !step.Randomized || step.Wait != macro.FixedDelay(250*time.Millisecond) {
		t.Errorf("step = %+v, want randomized 250ms", step)
	}
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    macro.DelaySpec
		wantErr bool
	}{
		{"integer ms", int64(15), macro.FixedDelay(15 * time.Millisecond), false},
		{"zero", int64(0), macro.FixedDelay(0), false},
		{"negative", int64(-1), macro.DelaySpec{}, true},
		{"range", map[string]any{"min": int64(5), "max": int64(15)}, macro.RangeDelay(5*time.Millisecond, 15*time.Millisecond), false},
		{"range missing max", map[string]any{"min": int64(5)}, macro.DelaySpec{}, true},
		{"range inverted", map[string]any{"min": int64(20), "max": int64(10)}, macro.DelaySpec{}, true},
		{"wrong type", "fast", macro.DelaySpec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDelay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDelay(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseDelay(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoaderResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"keytrigger.toml": {Data: []byte("")},
		"custom.toml":     {Data: []byte("")},
	}
	loader := NewLoader(fsys)

	path, err := loader.Resolve("custom.toml")
	if err != nil {
		t.Fatalf("Resolve(custom) error = %v", err)
	}
	if path != "custom.toml" {
		t.Errorf("Resolve(custom) = %q", path)
	}

	path, err = loader.Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if path != DefaultFileName {
		t.Errorf("Resolve() = %q, want %q", path, DefaultFileName)
	}

	if _, err := loader.Resolve("missing.toml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLoaderLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"keytrigger.toml": {Data: []byte(`
[[hotkeys]]
key = "F5"
action = "type_text"
text = "ok"
`)},
	}
	doc, err := NewLoader(fsys).Load("keytrigger.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Hotkeys) != 1 || doc.Hotkeys[0].Key != "F5" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	if _, err := Parse([]byte("[[hotkeys]\nkey =")); err == nil {
		t.Fatal("Parse() accepted malformed input")
	}
}
