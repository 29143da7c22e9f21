// Package rng implements the sim's sole source of stochasticity: a
// xorshift64* generator. Every stochastic decision anywhere in the core
// must draw from one Stream, in a fixed call order, so that two peers
// fed the same seed and the same inputs reach bit-identical state.
package rng

// Stream is a xorshift64* generator. The zero value is not usable; build
// one with New so seed-zero gets remapped to 1 per spec.
type Stream struct {
	state uint64
}

// New returns a Stream seeded with seed. A zero seed is remapped to 1,
// since xorshift64* can never recover from an all-zero state.
func New(seed uint64) *Stream {
	if seed == 0 {
		seed = 1
	}
	return &Stream{state: seed}
}

// Seed re-seeds the stream in place, applying the same zero-remap as New.
func (s *Stream) Seed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	s.state = seed
}

// State returns the raw internal state, chiefly for snapshotting.
func (s *Stream) State() uint64 {
	return s.state
}

// SetState restores a previously captured state. seed==0 is remapped to 1,
// preserving the invariant that rng_state is never zero.
func (s *Stream) SetState(state uint64) {
	if state == 0 {
		state = 1
	}
	s.state = state
}

// next advances the generator and returns the raw 64-bit output.
func (s *Stream) next() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * 2685821657736338717
}

// U32 returns the high 32 bits of the next draw.
func (s *Stream) U32() uint32 {
	return uint32(s.next() >> 32)
}

// F01 returns a deterministic float32 in [0,1), using the top 24 bits of
// the next draw as the mantissa source.
func (s *Stream) F01() float32 {
	bits := s.next()
	return float32(bits>>40) / float32(1<<24)
}

// IntN returns a deterministic value in [0,n) for n>0, built from F01 so
// every stochastic draw in the core funnels through the single stream.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.F01() * float32(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Sign returns -1 or 1 with equal probability.
func (s *Stream) Sign() float32 {
	if s.F01() < 0.5 {
		return -1
	}
	return 1
}
