package proc

import (
	"math"
	"sync/atomic"
)

const gainInvertBit = uint64(1) << 32

// Gain scales every sample by a constant multiplier and can flip the
// signal's polarity. Any finite gain is accepted, including zero and
// negative values.
//
// Both parameters live in a single atomic word, so a control thread may
// update them while the audio thread is inside Process: the audio thread
// observes either the old or the new (gain, invert) pair, never a torn mix.
// The effective multiplier is recomputed from the current parameters on
// every call.
type Gain struct {
	params atomic.Uint64
}

// NewGain creates a gain processor with the given multiplier and polarity
// setting. No validation is performed.
func NewGain(gain float32, invert bool) *Gain {
	g := &Gain{}
	g.Set(gain, invert)
	return g
}

// Set atomically replaces both parameters at once.
func (g *Gain) Set(gain float32, invert bool) {
	word := uint64(math.Float32bits(gain))
	if invert {
		word |= gainInvertBit
	}
	g.params.Store(word)
}

// SetGain updates the multiplier, keeping the current polarity setting.
func (g *Gain) SetGain(gain float32) {
	bits := uint64(math.Float32bits(gain))
	for {
		old := g.params.Load()
		next := old&gainInvertBit | bits
		if g.params.CompareAndSwap(old, next) {
			return
		}
	}
}

// SetInvert updates the polarity setting, keeping the current multiplier.
func (g *Gain) SetInvert(invert bool) {
	for {
		old := g.params.Load()
		next := old &^ gainInvertBit
		if invert {
			next |= gainInvertBit
		}
		if g.params.CompareAndSwap(old, next) {
			return
		}
	}
}

// Params returns the current (gain, invert) pair as one consistent snapshot.
func (g *Gain) Params() (gain float32, invert bool) {
	word := g.params.Load()
	return math.Float32frombits(uint32(word)), word&gainInvertBit != 0
}

// Gain returns the current multiplier.
func (g *Gain) Gain() float32 {
	gain, _ := g.Params()
	return gain
}

// Invert reports whether polarity inversion is enabled.
func (g *Gain) Invert() bool {
	_, invert := g.Params()
	return invert
}

// Process multiplies each input sample by the effective multiplier
// (-gain when inverting, gain otherwise) and stores it in output.
// Single-precision IEEE-754 semantics apply throughout, so inverting a
// zero sample yields negative zero, which compares equal to zero.
func (g *Gain) Process(input, output []float32) {
	gain, invert := g.Params()
	mult := gain
	if invert {
		mult = -gain
	}

	n := len(input)
	if len(output) < n {
		n = len(output)
	}

	for i := 0; i < n; i++ {
		output[i] = input[i] * mult
	}
}
