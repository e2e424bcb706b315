package macro

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// recorder is a fake injector that captures every primitive call in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func newRecorder() *recorder {
	return &recorder{fail: make(map[string]error)}
}

// failOn makes the named call (e.g. "press:A") return err.
func (r *recorder) failOn(call string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[call] = err
}

func (r *recorder) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.fail[call]; ok {
		return err
	}
	r.calls = append(r.calls, call)
	return nil
}

func (r *recorder) PressKey(name string) error   { return r.record("press:" + name) }
func (r *recorder) ReleaseKey(name string) error { return r.record("release:" + name) }
func (r *recorder) TypeRune(ch rune) error       { return r.record("type:" + string(ch)) }

func (r *recorder) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// waitForOps polls until at least n calls have been recorded.
func (r *recorder) waitForOps(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(r.ops()) >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return len(r.ops()) >= n
}

// sleepRecorder is an instantaneous SleepFunc that records requested pauses.
type sleepRecorder struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrExecutionAborted, err)
	}
	s.mu.Lock()
	s.slept = append(s.slept, d)
	s.mu.Unlock()
	return nil
}

func (s *sleepRecorder) pauses() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.slept))
	copy(out, s.slept)
	return out
}

func equalOps(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
