package key

import (
	"strings"
	"unicode"
)

// Modifier key names in canonical form.
const (
	NameShift = "Shift"
	NameCtrl  = "Ctrl"
	NameAlt   = "Alt"
)

// nameMap maps lowercase spellings to canonical key names.
var nameMap = map[string]string{
	"escape":    "Escape",
	"esc":       "Escape",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"backspace": "Backspace",
	"bs":        "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"space":     "Space",
	"shift":     NameShift,
	"ctrl":      NameCtrl,
	"control":   NameCtrl,
	"alt":       NameAlt,
	"f1":        "F1",
	"f2":        "F2",
	"f3":        "F3",
	"f4":        "F4",
	"f5":        "F5",
	"f6":        "F6",
	"f7":        "F7",
	"f8":        "F8",
	"f9":        "F9",
	"f10":       "F10",
	"f11":       "F11",
	"f12":       "F12",
}

// punctuation keys named by their unshifted rune.
var punctuation = map[rune]bool{
	'`': true, '-': true, '=': true, '[': true, ']': true, '\\': true,
	';': true, '\'': true, ',': true, '.': true, '/': true,
}

// Canonical returns the canonical form of a single key name.
// Letters become uppercase ("a" -> "A"), named keys take their canonical
// spelling ("esc" -> "Escape"), digits and punctuation are returned as-is.
// The second return value is false if the name is not a known key.
func Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	if canon, ok := nameMap[strings.ToLower(name)]; ok {
		return canon, true
	}

	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		switch {
		case unicode.IsLetter(r) && r < 128:
			return strings.ToUpper(name), true
		case unicode.IsDigit(r):
			return name, true
		case punctuation[r]:
			return name, true
		}
	}

	return "", false
}

// CanonicalChord returns the canonical form of a trigger name that may carry
// modifier prefixes, e.g. "ctrl+shift+a" -> "Ctrl+Shift+A". Modifiers are
// ordered Ctrl, Alt, Shift regardless of input order. A bare key name is
// returned in its Canonical form.
func CanonicalChord(name string) (string, bool) {
	parts := strings.Split(name, "+")
	if len(parts) == 1 {
		return Canonical(name)
	}

	// A trailing "+" means the key itself is "+", which is not a named key;
	// only a "++"-free split is supported.
	base, ok := Canonical(parts[len(parts)-1])
	if !ok {
		return "", false
	}

	var ctrl, alt, shift bool
	for _, p := range parts[:len(parts)-1] {
		mod, ok := Canonical(p)
		if !ok {
			return "", false
		}
		switch mod {
		case NameCtrl:
			ctrl = true
		case NameAlt:
			alt = true
		case NameShift:
			shift = true
		default:
			return "", false
		}
	}

	var b strings.Builder
	if ctrl {
		b.WriteString(NameCtrl + "+")
	}
	if alt {
		b.WriteString(NameAlt + "+")
	}
	if shift {
		b.WriteString(NameShift + "+")
	}
	b.WriteString(base)
	return b.String(), true
}

// IsModifier reports whether the canonical name is a modifier key.
func IsModifier(name string) bool {
	return name == NameShift || name == NameCtrl || name == NameAlt
}
