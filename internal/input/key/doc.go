// Package key provides canonical key naming and character-to-keystroke
// translation.
//
// Key names are canonicalized so that configuration spellings ("esc",
// "ESCAPE", "Escape") all resolve to one registry identity. Trigger names may
// carry modifier prefixes ("Ctrl+`", "ctrl+shift+a"); step key names are
// single keys.
//
// StrokeForRune maps a character to the key press that produces it on a US
// layout, including the transient Shift hold needed for uppercase letters and
// shifted symbols.
package key
