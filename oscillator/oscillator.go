// Package oscillator implements the phase-accumulator oscillators at the
// heart of the resonance simulators. An oscillator holds a frequency and a
// phase; its output is always the height of its wave at the current phase.
// There is no validation of frequencies or time steps: degenerate inputs
// produce degenerate (NaN/Inf) output, which is the caller's responsibility.
package oscillator

import (
	"math"
	"math/rand"
)

const twoPi = 2 * math.Pi

// Oscillator is a single resonant unit. It does not decide; it responds.
type Oscillator struct {
	Name      string
	Frequency float64 // cycles per unit time
	Phase     float64 // radians, kept in [0, 2π)
	Amplitude float64
}

// New creates an oscillator with the given frequency and initial phase.
// The phase is wrapped into [0, 2π).
func New(name string, frequency, phase float64) *Oscillator {
	return &Oscillator{
		Name:      name,
		Frequency: frequency,
		Phase:     WrapPhase(phase),
		Amplitude: 1.0,
	}
}

// NewRandomPhase creates an oscillator whose initial phase is drawn
// uniformly from [0, 2π) using the supplied generator. The generator is
// injected rather than global so that seeded runs are reproducible.
func NewRandomPhase(name string, frequency float64, rng *rand.Rand) *Oscillator {
	return New(name, frequency, rng.Float64()*twoPi)
}

// Sample returns the wave height at time t for the current phase.
// It is a pure function: it never mutates the oscillator.
func (o *Oscillator) Sample(t float64) float64 {
	return o.Amplitude * math.Sin(twoPi*o.Frequency*t+o.Phase)
}

// Advance spins the oscillator forward by dt, with nudge added directly to
// the phase (phase modulation). The phase is re-wrapped into [0, 2π) and the
// new wave height is returned.
func (o *Oscillator) Advance(dt, nudge float64) float64 {
	o.Phase = WrapPhase(o.Phase + twoPi*o.Frequency*dt + nudge)
	return o.Amplitude * math.Sin(o.Phase)
}

// WrapPhase maps an arbitrary phase into [0, 2π). Negative inputs are
// possible mid-update since nudges may be negative.
func WrapPhase(p float64) float64 {
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}

// WrapError maps a phase difference onto the shortest arc (−π, π].
func WrapError(e float64) float64 {
	e = math.Mod(e+math.Pi, twoPi)
	if e < 0 {
		e += twoPi
	}
	return e - math.Pi
}
