// Package config loads and validates the declarative binding document.
//
// The document is TOML: an ordered list of [[hotkeys]] tables, each naming a
// trigger (a keyboard "key" or a gamepad "button") and an action of kind
// type_text, sequence, or script. Loading is forgiving per-binding: a
// malformed entry is rejected with a ValidationError diagnostic and the rest
// of the document still loads.
//
// The package produces validated macro.Binding records; it owns no runtime
// state and is not consulted again after startup.
package config
