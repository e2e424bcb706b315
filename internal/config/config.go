package config

// Document is the top-level TOML structure.
type Document struct {
	Hotkeys []Hotkey `toml:"hotkeys"`
}

// Hotkey is a single [[hotkeys]] table. Exactly one of Key and Button must
// be set; which one determines the trigger's device namespace.
type Hotkey struct {
	Key    string `toml:"key"`
	Button string `toml:"button"`

	// Action selects the action kind: "type_text", "sequence" or "script".
	Action string `toml:"action"`

	// Text is the payload for type_text actions.
	Text string `toml:"text"`

	// Delay is the inter-character delay for type_text. Either an integer
	// millisecond count or an inline table {min = N, max = M}.
	Delay any `toml:"delay"`

	// Steps is the step list for sequence actions.
	Steps []StepTable `toml:"steps"`

	// Script is the Lua source for script actions.
	Script string `toml:"script"`
}

// StepTable is one step of a sequence action. Type is "key", "wait" or
// "text".
type StepTable struct {
	Type string `toml:"type"`

	// Key step fields.
	Key    string `toml:"key"`
	Action string `toml:"action"`
	Delay  any    `toml:"delay"`

	// Wait step fields. Ms is an integer millisecond count or an inline
	// {min, max} table; Random draws a uniform pause in [0, ms] instead.
	Ms     any  `toml:"ms"`
	Random bool `toml:"random"`

	// Text step payload.
	Text string `toml:"text"`
}
