package input

import "strings"

// Gamepad button names in canonical form, following the Xbox-style naming
// the configuration document uses.
var buttonNames = map[string]string{
	"a":      "A",
	"b":      "B",
	"x":      "X",
	"y":      "Y",
	"lb":     "LB",
	"rb":     "RB",
	"ls":     "LS",
	"rs":     "RS",
	"start":  "Start",
	"back":   "Back",
	"guide":  "Guide",
	"dup":    "DUp",
	"ddown":  "DDown",
	"dleft":  "DLeft",
	"dright": "DRight",
}

// CanonicalButton returns the canonical spelling of a gamepad button name.
// The second return value is false for unknown buttons.
func CanonicalButton(name string) (string, bool) {
	canon, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	return canon, ok
}
