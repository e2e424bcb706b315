package macro

// Injector is the OS input-injection capability. Implementations issue real
// key events to the operating system; the engine guarantees the calls arrive
// strictly in the order an action defines, with no reordering or batching.
type Injector interface {
	// PressKey issues a key-down for the named key.
	PressKey(name string) error

	// ReleaseKey issues a key-up for the named key.
	ReleaseKey(name string) error

	// TypeRune injects one Unicode character directly, for characters with
	// no virtual-key mapping.
	TypeRune(r rune) error
}
