package key

import "unicode"

// Stroke describes the key press that produces one character: the key name
// and whether a transient Shift hold is required.
type Stroke struct {
	Key   string
	Shift bool
}

// shifted maps characters to the unshifted key that produces them with Shift
// held, per a US layout.
var shifted = map[rune]string{
	'!': "1", '@': "2", '#': "3", '$': "4", '%': "5",
	'^': "6", '&': "7", '*': "8", '(': "9", ')': "0",
	'_': "-", '+': "=", '{': "[", '}': "]", '|': "\\",
	':': ";", '"': "'", '<': ",", '>': ".", '?': "/",
	'~': "`",
}

// StrokeForRune returns the keystroke that types the given character.
// The second return value is false for characters with no key mapping; the
// caller falls back to the OS Unicode injection primitive for those.
func StrokeForRune(r rune) (Stroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Stroke{Key: string(unicode.ToUpper(r))}, true
	case r >= 'A' && r <= 'Z':
		return Stroke{Key: string(r), Shift: true}, true
	case r >= '0' && r <= '9':
		return Stroke{Key: string(r)}, true
	case r == ' ':
		return Stroke{Key: "Space"}, true
	case r == '\n' || r == '\r':
		return Stroke{Key: "Enter"}, true
	case r == '\t':
		return Stroke{Key: "Tab"}, true
	case punctuation[r]:
		return Stroke{Key: string(r)}, true
	}

	if base, ok := shifted[r]; ok {
		return Stroke{Key: base, Shift: true}, true
	}

	return Stroke{}, false
}
