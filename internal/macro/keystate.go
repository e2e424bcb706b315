package macro

import "sync"

// KeyState tracks which virtual keys the engine currently holds down. It is
// the safety net against leaving modifiers stuck in the foreground
// application: ReleaseAll is invoked whenever a sequence is aborted and on
// process shutdown.
//
// KeyState is shared across execution lanes, so it is safe for concurrent
// use. The lock is held only for the duration of one primitive operation,
// never across a wait.
type KeyState struct {
	mu   sync.Mutex
	inj  Injector
	held []string // insertion order, for deterministic draining
}

// NewKeyState creates a tracker that drains through the given injector.
func NewKeyState(inj Injector) *KeyState {
	return &KeyState{inj: inj}
}

// MarkHeld records that a key-down was issued without a matching key-up.
// Marking a key already held is a no-op.
func (ks *KeyState) MarkHeld(name string) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	for _, h := range ks.held {
		if h == name {
			return
		}
	}
	ks.held = append(ks.held, name)
}

// MarkReleased records that the key is no longer held.
func (ks *KeyState) MarkReleased(name string) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	for i, h := range ks.held {
		if h == name {
			ks.held = append(ks.held[:i], ks.held[i+1:]...)
			return
		}
	}
}

// Held returns the currently held keys in the order they were pressed.
func (ks *KeyState) Held() []string {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	out := make([]string, len(ks.held))
	copy(out, ks.held)
	return out
}

// HeldCount returns the number of held keys.
func (ks *KeyState) HeldCount() int {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return len(ks.held)
}

// ReleaseAll issues a release for every held key, most recent first, and
// clears the tracked state. Injection errors do not stop the drain; the
// first one is returned after every key has been attempted.
func (ks *KeyState) ReleaseAll() error {
	ks.mu.Lock()
	held := ks.held
	ks.held = nil
	ks.mu.Unlock()

	var firstErr error
	for i := len(held) - 1; i >= 0; i-- {
		if err := ks.inj.ReleaseKey(held[i]); err != nil && firstErr == nil {
			firstErr = &InjectionError{Op: "release", Key: held[i], Err: err}
		}
	}
	return firstErr
}
