package oscillator

import (
	"math"
	"math/rand"

	"github.com/lumen-phi/go-resonance/phi"
)

// PhaseLock is a memory cell that stores a phase angle instead of a weight.
// It learns by pulling its stored phase toward an input phase, with the
// step damped by the golden ratio so the correction converges without
// overshooting.
type PhaseLock struct {
	Frequency float64
	Memory    float64 // stored phase, radians
}

// NewPhaseLock creates a phase-lock cell with a random initial memory drawn
// from the supplied generator.
func NewPhaseLock(frequency float64, rng *rand.Rand) *PhaseLock {
	return &PhaseLock{
		Frequency: frequency,
		Memory:    rng.Float64() * twoPi,
	}
}

// Wave returns the cell's carrier wave at time t with the given phase shift.
func (p *PhaseLock) Wave(t, phaseShift float64) float64 {
	return math.Sin(twoPi*p.Frequency*t + phaseShift)
}

// Coherence compares an input wave against the stored memory wave at time t.
// The two waves are superposed and the magnitude of the mix is returned:
// 0 for opposite phases, 2 for perfect alignment.
func (p *PhaseLock) Coherence(t, inputPhase float64) float64 {
	in := p.Wave(t, inputPhase)
	mem := p.Wave(t, p.Memory)
	return math.Abs(in + mem)
}

// Learn pulls the stored phase toward inputPhase. The error is taken along
// the shortest arc and the update is rate/φ of it. Returns the error before
// the update.
func (p *PhaseLock) Learn(inputPhase, rate float64) float64 {
	err := WrapError(inputPhase - p.Memory)
	p.Memory += err * (rate / phi.Phi)
	return err
}
