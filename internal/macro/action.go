package macro

import (
	"github.com/mfonda/keytrigger/internal/input"
)

// KeyAction selects what a key step does to its key. The zero value is
// ActionComplete, matching the configuration default.
type KeyAction int

const (
	// ActionComplete issues a key-down immediately followed by a key-up.
	ActionComplete KeyAction = iota

	// ActionPress issues only a key-down; the key stays held.
	ActionPress

	// ActionRelease issues only a key-up.
	ActionRelease
)

// String returns the action name as spelled in configuration.
func (a KeyAction) String() string {
	switch a {
	case ActionComplete:
		return "complete"
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	default:
		return "unknown"
	}
}

// StepKind tags the variant of a sequence step.
type StepKind int

const (
	// StepKey performs one key operation.
	StepKey StepKind = iota

	// StepWait pauses the sequence.
	StepWait

	// StepText types a string inline.
	StepText
)

// Step is one unit of a sequence action. Kind selects which fields apply.
type Step struct {
	Kind StepKind

	// Key fields (StepKey).
	Key    string
	Action KeyAction

	// Delay applies after a key operation (StepKey) or between characters
	// (StepText).
	Delay DelaySpec

	// Wait fields (StepWait). When Randomized is set the effective pause is
	// drawn uniformly from [0, Wait.Min] instead of resolving the spec;
	// randomized waits carry a scalar value, enforced at load time.
	Wait       DelaySpec
	Randomized bool

	// Text is the string to type (StepText).
	Text string
}

// ActionKind tags the variant of an action definition.
type ActionKind int

const (
	// KindTypeText types a string, character by character.
	KindTypeText ActionKind = iota

	// KindSequence runs an ordered list of steps.
	KindSequence

	// KindScript runs a Lua chunk against the scripting API.
	KindScript
)

// String returns the kind name as spelled in configuration.
func (k ActionKind) String() string {
	switch k {
	case KindTypeText:
		return "type_text"
	case KindSequence:
		return "sequence"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// Action is one action definition. Kind selects which fields apply.
// Actions are built once at load time and never mutated afterwards.
type Action struct {
	Kind ActionKind

	// TypeText fields.
	Text  string
	Delay DelaySpec

	// Sequence field. Steps execute strictly in order.
	Steps []Step

	// Script field: Lua source.
	Script string
}

// TypeText builds a text-typing action.
func TypeText(text string, delay DelaySpec) Action {
	return Action{Kind: KindTypeText, Text: text, Delay: delay}
}

// Sequence builds a step-sequence action.
func Sequence(steps ...Step) Action {
	return Action{Kind: KindSequence, Steps: steps}
}

// Script builds a Lua script action.
func Script(source string) Action {
	return Action{Kind: KindScript, Script: source}
}

// Binding couples a trigger with the action it fires.
type Binding struct {
	Trigger input.Trigger
	Action  Action
}
