package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfonda/keytrigger/internal/input"
	"github.com/mfonda/keytrigger/internal/input/key"
	"github.com/mfonda/keytrigger/internal/macro"
)

// DefaultTypeDelay is the inter-character pause used by type_text actions
// that do not specify one.
const DefaultTypeDelay = 10 * time.Millisecond

// Build validates the document and converts it into bindings. Invalid
// bindings are skipped and reported; the rest of the document still loads.
func Build(doc *Document) ([]macro.Binding, []*ValidationError) {
	var (
		bindings []macro.Binding
		errs     []*ValidationError
	)
	for i, hk := range doc.Hotkeys {
		b, err := buildBinding(i, hk)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		bindings = append(bindings, b)
	}
	return bindings, errs
}

func buildBinding(index int, hk Hotkey) (macro.Binding, *ValidationError) {
	spelled := hk.Key
	if spelled == "" {
		spelled = hk.Button
	}
	fail := func(field, msg string, err error) (macro.Binding, *ValidationError) {
		return macro.Binding{}, &ValidationError{
			Index:   index,
			Trigger: spelled,
			Field:   field,
			Message: msg,
			Err:     err,
		}
	}

	trigger, verr := buildTrigger(index, hk)
	if verr != nil {
		return macro.Binding{}, verr
	}

	switch hk.Action {
	case "type_text":
		delay := macro.FixedDelay(DefaultTypeDelay)
		if hk.Delay != nil {
			d, err := parseDelay(hk.Delay)
			if err != nil {
				return fail("delay", err.Error(), ErrInvalidDelay)
			}
			delay = d
		}
		return macro.Binding{Trigger: trigger, Action: macro.TypeText(hk.Text, delay)}, nil

	case "sequence":
		if len(hk.Steps) == 0 {
			return fail("steps", "sequence has no steps", ErrUnknownAction)
		}
		steps := make([]macro.Step, 0, len(hk.Steps))
		for j, st := range hk.Steps {
			field := fmt.Sprintf("steps[%d]", j)
			step, err := buildStep(st)
			if err != nil {
				return fail(field, err.Error(), err)
			}
			steps = append(steps, step)
		}
		return macro.Binding{Trigger: trigger, Action: macro.Sequence(steps...)}, nil

	case "script":
		if strings.TrimSpace(hk.Script) == "" {
			return fail("script", "script source is empty", ErrUnknownAction)
		}
		return macro.Binding{Trigger: trigger, Action: macro.Script(hk.Script)}, nil

	default:
		return fail("action", fmt.Sprintf("unknown action %q", hk.Action), ErrUnknownAction)
	}
}

func buildTrigger(index int, hk Hotkey) (input.Trigger, *ValidationError) {
	fail := func(field, msg string, err error) (input.Trigger, *ValidationError) {
		spelled := hk.Key
		if spelled == "" {
			spelled = hk.Button
		}
		return input.Trigger{}, &ValidationError{
			Index:   index,
			Trigger: spelled,
			Field:   field,
			Message: msg,
			Err:     err,
		}
	}

	switch {
	case hk.Key != "" && hk.Button != "":
		return fail("key", "specify key or button, not both", ErrAmbiguousTrigger)
	case hk.Key != "":
		name, ok := key.CanonicalChord(hk.Key)
		if !ok {
			return fail("key", fmt.Sprintf("unknown key %q", hk.Key), macro.ErrUnknownKey)
		}
		trigger := input.KeyboardTrigger(name)
		if trigger == macro.ToggleTrigger {
			return fail("key", fmt.Sprintf("%q is reserved for the global toggle", hk.Key), ErrReservedTrigger)
		}
		return trigger, nil
	case hk.Button != "":
		name, ok := input.CanonicalButton(hk.Button)
		if !ok {
			return fail("button", fmt.Sprintf("unknown button %q", hk.Button), macro.ErrUnknownKey)
		}
		return input.GamepadTrigger(name), nil
	default:
		return fail("key", "binding needs a key or a button", ErrMissingTrigger)
	}
}

func buildStep(st StepTable) (macro.Step, error) {
	switch st.Type {
	case "key":
		name, ok := key.Canonical(st.Key)
		if !ok {
			return macro.Step{}, fmt.Errorf("unknown key %q: %w", st.Key, macro.ErrUnknownKey)
		}
		action, err := parseKeyAction(st.Action)
		if err != nil {
			return macro.Step{}, err
		}
		step := macro.Step{Kind: macro.StepKey, Key: name, Action: action}
		if st.Delay != nil {
			d, err := parseDelay(st.Delay)
			if err != nil {
				return macro.Step{}, fmt.Errorf("%s: %w", err, ErrInvalidDelay)
			}
			step.Delay = d
		}
		return step, nil

	case "wait":
		if st.Ms == nil {
			return macro.Step{}, fmt.Errorf("wait step has no ms: %w", ErrInvalidDelay)
		}
		d, err := parseDelay(st.Ms)
		if err != nil {
			return macro.Step{}, fmt.Errorf("%s: %w", err, ErrInvalidDelay)
		}
		if st.Random && !d.IsFixed() {
			return macro.Step{}, fmt.Errorf("random wait takes a scalar ms, not a range: %w", ErrInvalidDelay)
		}
		return macro.Step{Kind: macro.StepWait, Wait: d, Randomized: st.Random}, nil

	case "text":
		delay := macro.FixedDelay(DefaultTypeDelay)
		if st.Delay != nil {
			d, err := parseDelay(st.Delay)
			if err != nil {
				return macro.Step{}, fmt.Errorf("%s: %w", err, ErrInvalidDelay)
			}
			delay = d
		}
		return macro.Step{Kind: macro.StepText, Text: st.Text, Delay: delay}, nil

	default:
		return macro.Step{}, fmt.Errorf("unknown step type %q: %w", st.Type, ErrUnknownAction)
	}
}

func parseKeyAction(name string) (macro.KeyAction, error) {
	switch name {
	case "", "complete":
		return macro.ActionComplete, nil
	case "press":
		return macro.ActionPress, nil
	case "release":
		return macro.ActionRelease, nil
	default:
		return 0, fmt.Errorf("unknown key action %q: %w", name, ErrUnknownAction)
	}
}

// parseDelay accepts the two TOML spellings of a delay: an integer
// millisecond count or an inline table {min = N, max = M}.
func parseDelay(v any) (macro.DelaySpec, error) {
	switch val := v.(type) {
	case int64:
		if val < 0 {
			return macro.DelaySpec{}, fmt.Errorf("delay must not be negative, got %d", val)
		}
		return macro.FixedDelay(time.Duration(val) * time.Millisecond), nil
	case float64:
		if val < 0 {
			return macro.DelaySpec{}, fmt.Errorf("delay must not be negative, got %v", val)
		}
		return macro.FixedDelay(time.Duration(val * float64(time.Millisecond))), nil
	case map[string]any:
		min, err := delayField(val, "min")
		if err != nil {
			return macro.DelaySpec{}, err
		}
		max, err := delayField(val, "max")
		if err != nil {
			return macro.DelaySpec{}, err
		}
		if min < 0 || max < min {
			return macro.DelaySpec{}, fmt.Errorf("delay range {min = %d, max = %d} is not ordered", min, max)
		}
		minD := time.Duration(min) * time.Millisecond
		maxD := time.Duration(max) * time.Millisecond
		return macro.RangeDelay(minD, maxD), nil
	default:
		return macro.DelaySpec{}, fmt.Errorf("delay must be an integer or a {min, max} table, got %T", v)
	}
}

func delayField(table map[string]any, name string) (int64, error) {
	raw, ok := table[name]
	if !ok {
		return 0, fmt.Errorf("delay range is missing %q", name)
	}
	n, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf("delay range %q must be an integer, got %T", name, raw)
	}
	return n, nil
}
