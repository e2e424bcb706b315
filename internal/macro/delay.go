package macro

import (
	"math/rand"
	"sync"
	"time"
)

// DelaySpec is a delay specification: a fixed duration when Min == Max, or a
// bounded range resolved uniformly over [Min, Max] inclusive. Specs with
// Min > Max are invalid and rejected at load time; the resolver treats a
// stray one as Fixed(Min) rather than fail mid-sequence.
type DelaySpec struct {
	Min time.Duration
	Max time.Duration
}

// FixedDelay returns a spec that always resolves to d.
func FixedDelay(d time.Duration) DelaySpec {
	return DelaySpec{Min: d, Max: d}
}

// RangeDelay returns a spec resolved uniformly over [min, max].
func RangeDelay(min, max time.Duration) DelaySpec {
	return DelaySpec{Min: min, Max: max}
}

// IsZero reports whether the spec is the zero value (no delay).
func (s DelaySpec) IsZero() bool {
	return s.Min == 0 && s.Max == 0
}

// IsFixed reports whether the spec resolves deterministically.
func (s DelaySpec) IsFixed() bool {
	return s.Min == s.Max
}

// Valid reports whether the spec satisfies Min <= Max with both non-negative.
func (s DelaySpec) Valid() bool {
	return s.Min >= 0 && s.Min <= s.Max
}

// Resolver draws concrete durations from delay specifications. Every call
// draws independently; nothing is memoized. Safe for concurrent use.
type Resolver struct {
	mu  sync.Mutex
	rng *rand.Rand

	// onInvalid is called when an invalid spec reaches the resolver, which
	// indicates a validation gap upstream.
	onInvalid func(spec DelaySpec)
}

// NewResolver creates a resolver seeded from the current time.
func NewResolver() *Resolver {
	return NewResolverWithSeed(time.Now().UnixNano())
}

// NewResolverWithSeed creates a resolver with a deterministic seed.
func NewResolverWithSeed(seed int64) *Resolver {
	return &Resolver{rng: rand.New(rand.NewSource(seed))}
}

// OnInvalid installs a callback for invalid specs that slip past load-time
// validation.
func (r *Resolver) OnInvalid(fn func(spec DelaySpec)) {
	r.onInvalid = fn
}

// Resolve returns a concrete duration for the spec. Fixed specs resolve
// deterministically; ranges draw uniformly over the inclusive millisecond
// interval [Min, Max], freshly on every call.
func (r *Resolver) Resolve(spec DelaySpec) time.Duration {
	if spec.Min > spec.Max {
		// Must have been rejected at load time. Degrade to the lower bound.
		if r.onInvalid != nil {
			r.onInvalid(spec)
		}
		return spec.Min
	}
	if spec.Min == spec.Max {
		return spec.Min
	}
	return r.drawBetween(spec.Min, spec.Max)
}

// ResolveRandom returns a duration drawn uniformly from [0, max], used by
// randomized wait steps.
func (r *Resolver) ResolveRandom(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return r.drawBetween(0, max)
}

// drawBetween draws a whole-millisecond duration from [min, max] inclusive.
// Delays are specified in milliseconds, so the draw works on millisecond
// integers to keep both bounds reachable.
func (r *Resolver) drawBetween(min, max time.Duration) time.Duration {
	lo := min.Milliseconds()
	hi := max.Milliseconds()
	if hi <= lo {
		return min
	}

	r.mu.Lock()
	n := r.rng.Int63n(hi - lo + 1)
	r.mu.Unlock()

	return time.Duration(lo+n) * time.Millisecond
}
