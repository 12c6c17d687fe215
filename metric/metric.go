// Package metric provides the post-run reductions used as pass/fail oracles:
// trailing-window means over recorded resonance values, threshold
// classification, and the exponentially-smoothed coherence integrator used
// by the resonator-bank mode. All reductions are pure; recomputing a metric
// from the same recorded sequence always returns the same value.
package metric

import "math"

// DefaultSettleFraction is the share of a run discarded as transient before
// the trailing mean is taken.
const DefaultSettleFraction = 0.5

// TrailingMean returns the mean of values after discarding the leading
// settleFraction of the sequence. An empty window yields 0.
func TrailingMean(values []float64, settleFraction float64) float64 {
	start := int(float64(len(values)) * settleFraction)
	if start < 0 {
		start = 0
	}
	if start >= len(values) {
		return 0
	}
	sum := 0.0
	for _, v := range values[start:] {
		sum += v
	}
	return sum / float64(len(values)-start)
}

// Peak returns the maximum value after the settling window.
func Peak(values []float64, settleFraction float64) float64 {
	start := int(float64(len(values)) * settleFraction)
	if start < 0 {
		start = 0
	}
	peak := math.Inf(-1)
	for _, v := range values[start:] {
		if v > peak {
			peak = v
		}
	}
	if math.IsInf(peak, -1) {
		return 0
	}
	return peak
}

// Verdict is the outcome of a threshold evaluation.
type Verdict struct {
	Mean      float64
	Peak      float64
	Threshold float64
	Resonant  bool
}

// Evaluate reduces a recorded resonance sequence to a verdict: the
// post-settling mean compared against the threshold.
func Evaluate(values []float64, settleFraction, threshold float64) Verdict {
	mean := TrailingMean(values, settleFraction)
	return Verdict{
		Mean:      mean,
		Peak:      Peak(values, settleFraction),
		Threshold: threshold,
		Resonant:  mean > threshold,
	}
}

// Integrator is the exponentially-smoothed coherence accumulator used by
// the resonator-bank mode: state = decay·state + gain·|reference·input|.
// The steady state is bounded by the largest observed |reference·input|
// when gain = 1−decay.
type Integrator struct {
	Decay float64
	Gain  float64
	State float64
}

// NewIntegrator returns an integrator with the stock constants
// (decay 0.95, gain 0.05).
func NewIntegrator() *Integrator {
	return &Integrator{Decay: 0.95, Gain: 0.05}
}

// Update folds one reference/input product into the running state and
// returns the new state.
func (in *Integrator) Update(reference, input float64) float64 {
	in.State = in.Decay*in.State + in.Gain*math.Abs(reference*input)
	return in.State
}

// Resistance maps a total coherence level to an energy cost: resistance
// drops toward zero as coherence rises.
func Resistance(coherence float64) float64 {
	return 1.0 / (1.0 + coherence)
}
