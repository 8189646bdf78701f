package core

import (
	"encoding/binary"
	"hash/maphash"
	"sync/atomic"
)

// RngSeed seeds the fast random number generator.
//
// A runtime created with a fixed seed produces deterministic scheduling
// jitter, which is what reproducible tests want.
type RngSeed struct {
	s uint32
	r uint32
}

var (
	seedCounter  atomic.Uint64
	seedHashSeed = maphash.MakeSeed()
)

// NewRngSeed draws a seed from a process-level, non-cryptographic entropy
// source: a hash of an incrementing counter mixed with the process's hash
// randomization state.
func NewRngSeed() RngSeed {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seedCounter.Add(1))
	return RngSeedFromUint64(maphash.Bytes(seedHashSeed, buf[:]))
}

// RngSeedFromUint64 folds a 64-bit value into the two seed halves.
func RngSeedFromUint64(seed uint64) RngSeed {
	one := uint32(seed >> 32)
	two := uint32(seed)
	if two == 0 {
		// The xorshift recurrence is undefined at zero.
		two = 1
	}
	return RngSeedFromPair(one, two)
}

// RngSeedFromPair builds a seed from its two halves.
// The second half must not be zero; it is coerced to 1 if it is.
func RngSeedFromPair(s, r uint32) RngSeed {
	if r == 0 {
		r = 1
	}
	return RngSeed{s: s, r: r}
}

func (s RngSeed) pack() uint64 {
	return uint64(s.s)<<32 | uint64(s.r)
}

// FastRand is a fast random number generator.
//
// It implements xorshift64+: two 32-bit xorshift sequences added together,
// with the shift triplet [17,7,16] from Marsaglia's Xorshift paper
// (https://www.jstatsoft.org/article/view/v008i14/xorshift.pdf). The
// generator passes the SmallCrush suite of the TestU01 framework.
//
// A FastRand is owned by a single execution context at a time and must not
// be shared across goroutines.
type FastRand struct {
	one uint32
	two uint32
}

// NewFastRand initializes a generator from the default entropy source.
func NewFastRand() *FastRand {
	return FastRandFromSeed(NewRngSeed())
}

// FastRandFromSeed initializes a generator from a seed. Two generators
// built from equal seeds produce identical output sequences.
func FastRandFromSeed(seed RngSeed) *FastRand {
	return &FastRand{one: seed.s, two: seed.r}
}

// ReplaceSeed swaps in a new seed and returns the previous full state as a
// seed, so the caller can restore it later. The returned state is captured
// verbatim so that restoring it is exact.
func (r *FastRand) ReplaceSeed(seed RngSeed) RngSeed {
	old := RngSeed{s: r.one, r: r.two}
	r.one = seed.s
	r.two = seed.r
	return old
}

// Fastrand advances the recurrence and returns the next 32-bit value.
func (r *FastRand) Fastrand() uint32 {
	s1 := r.one
	s0 := r.two

	s1 ^= s1 << 17
	s1 = s1 ^ s0 ^ s1>>7 ^ s0>>16

	r.one = s0
	r.two = s1

	return s0 + s1
}

// FastrandN returns a value in [0, n).
//
// This is similar to Fastrand() % n, but faster: the raw draw is mapped
// down with a multiply-high reduction, trading the modulo for the standard
// near-uniformity of that technique.
// See https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func (r *FastRand) FastrandN(n uint32) uint32 {
	mul := uint64(r.Fastrand()) * uint64(n)
	return uint32(mul >> 32)
}

// RngSeedGenerator produces a deterministic stream of seeds from a base
// seed. Each scheduler handle owns one; entering a runtime draws a fresh
// per-entry seed from it.
//
// The state is a packed pair advanced by compare-and-swap, so concurrent
// callers never block and each advance is consumed by exactly one caller.
type RngSeedGenerator struct {
	state atomic.Uint64
}

// NewRngSeedGenerator builds a generator seeded with the given seed.
func NewRngSeedGenerator(seed RngSeed) *RngSeedGenerator {
	g := &RngSeedGenerator{}
	g.state.Store(seed.pack())
	return g
}

// NextSeed advances the internal stream and returns the next seed.
func (g *RngSeedGenerator) NextSeed() RngSeed {
	for {
		old := g.state.Load()
		rng := FastRand{one: uint32(old >> 32), two: uint32(old)}
		s := rng.Fastrand()
		r := rng.Fastrand()
		next := RngSeedFromPair(rng.one, rng.two)
		if g.state.CompareAndSwap(old, next.pack()) {
			return RngSeedFromPair(s, r)
		}
	}
}

// NextGenerator returns a new generator seeded from this one's stream.
func (g *RngSeedGenerator) NextGenerator() *RngSeedGenerator {
	return NewRngSeedGenerator(g.NextSeed())
}
