// Package simulate provides the discrete-time driver that advances a fixed
// set of oscillators and couplings over a fixed step count, recording every
// step. A Loop describes a run; Run builds fresh oscillators each time, so
// the same Loop can be executed repeatedly and independent runs never share
// state.
package simulate

import (
	"math"
	"math/rand"

	"github.com/lumen-phi/go-resonance/oscillator"
)

// Coupling combines input samples into a single interaction signal.
type Coupling func(samples []float64) float64

// Multiply is the heterodyne coupling: the product of all input samples.
// For two inputs the trigonometric product identity splits the result into
// sum- and difference-frequency components, so a listener tuned to the
// difference frequency can lock onto the beat.
func Multiply(samples []float64) float64 {
	out := 1.0
	for _, s := range samples {
		out *= s
	}
	return out
}

// Superpose is the additive coupling: the sum of all input samples. This is
// the chord mode used by the vocabulary resonator bank.
func Superpose(samples []float64) float64 {
	out := 0.0
	for _, s := range samples {
		out += s
	}
	return out
}

// Step is the record appended once per simulation step. Records are
// read-only after creation.
type Step struct {
	Index       int
	Time        float64
	Inputs      []float64
	Listeners   []float64
	Interaction float64
	Resonance   float64
}

// Config holds the loop parameters. The defaults reproduce the documented
// three-oscillator demo configuration.
type Config struct {
	K      float64  // coupling strength applied to the interaction nudge
	Dt     float64  // time increment per step
	Steps  int      // total step count
	Couple Coupling // interaction mode; nil means Multiply
}

// DefaultConfig returns the stock demo configuration: k=1.5, dt=0.01,
// 1000 steps, multiplicative coupling.
func DefaultConfig() Config {
	return Config{K: 1.5, Dt: 0.01, Steps: 1000, Couple: Multiply}
}

// Osc describes an oscillator to be built fresh for each run. When
// RandomPhase is set the initial phase is drawn from the loop's generator;
// otherwise Phase is used as given.
type Osc struct {
	Name        string
	Frequency   float64
	Phase       float64
	RandomPhase bool
}

// Loop describes a complete simulation: input oscillators whose samples are
// coupled into an interaction signal, and listener oscillators nudged by
// k times that signal.
type Loop struct {
	Inputs    []Osc
	Listeners []Osc
	Config    Config
	Rng       *rand.Rand // used only for RandomPhase oscillators; may be nil
}

// Result is the full ordered sequence of step records for one run.
type Result struct {
	Steps         []Step
	InputNames    []string
	ListenerNames []string
}

func (l *Loop) build(specs []Osc) []*oscillator.Oscillator {
	out := make([]*oscillator.Oscillator, len(specs))
	for i, s := range specs {
		if s.RandomPhase && l.Rng != nil {
			out[i] = oscillator.NewRandomPhase(s.Name, s.Frequency, l.Rng)
		} else {
			out[i] = oscillator.New(s.Name, s.Frequency, s.Phase)
		}
	}
	return out
}

// Run executes the loop and returns the recorded steps. Each call allocates
// a fresh oscillator set, so successive runs are independent (apart from
// draws taken from the shared Rng when RandomPhase is used).
func (l *Loop) Run() *Result {
	cfg := l.Config
	if cfg.Couple == nil {
		cfg.Couple = Multiply
	}

	inputs := l.build(l.Inputs)
	listeners := l.build(l.Listeners)

	res := &Result{
		Steps:         make([]Step, 0, cfg.Steps),
		InputNames:    names(l.Inputs),
		ListenerNames: names(l.Listeners),
	}

	samples := make([]float64, len(inputs))
	for i := 0; i < cfg.Steps; i++ {
		t := float64(i) * cfg.Dt

		for j, osc := range inputs {
			samples[j] = osc.Advance(cfg.Dt, 0)
		}
		interaction := cfg.Couple(samples)

		outs := make([]float64, len(listeners))
		resonance := 0.0
		for j, osc := range listeners {
			outs[j] = osc.Advance(cfg.Dt, cfg.K*interaction)
			resonance += math.Abs(outs[j]) * math.Abs(interaction)
		}
		if len(listeners) > 0 {
			resonance /= float64(len(listeners))
		}

		res.Steps = append(res.Steps, Step{
			Index:       i,
			Time:        t,
			Inputs:      append([]float64(nil), samples...),
			Listeners:   outs,
			Interaction: interaction,
			Resonance:   resonance,
		})
	}

	return res
}

func names(specs []Osc) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}

// Times returns the time axis of the run.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Time
	}
	return out
}

// Input returns the time series of the i-th input oscillator.
func (r *Result) Input(i int) []float64 {
	out := make([]float64, len(r.Steps))
	for j, s := range r.Steps {
		out[j] = s.Inputs[i]
	}
	return out
}

// Listener returns the time series of the i-th listener oscillator.
func (r *Result) Listener(i int) []float64 {
	out := make([]float64, len(r.Steps))
	for j, s := range r.Steps {
		out[j] = s.Listeners[i]
	}
	return out
}

// Interactions returns the interaction signal time series.
func (r *Result) Interactions() []float64 {
	out := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Interaction
	}
	return out
}

// Resonances returns the per-step resonance values.
func (r *Result) Resonances() []float64 {
	out := make([]float64, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Resonance
	}
	return out
}
