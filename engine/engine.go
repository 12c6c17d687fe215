// Package engine provides a live simulation harness: it advances a
// resonance loop step by step in memory and triggers actions when the
// running metrics satisfy configured conditions. Unlike a batch run, the
// engine can be driven by a ticker and observed while it runs.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/oscillator"
	"github.com/lumen-phi/go-resonance/simulate"
)

// Snapshot is the observable state after one step.
type Snapshot struct {
	Step         int
	Time         float64
	Interaction  float64
	Resonance    float64
	TrailingMean float64 // mean resonance over the settled part of the history
}

// Condition is a predicate on the engine's current snapshot.
type Condition func(s Snapshot) bool

// Action is triggered when its condition is met. It receives the snapshot
// that satisfied the condition.
type Action func(s Snapshot) error

// Rule pairs a condition with an action.
type Rule struct {
	Name      string
	Condition Condition
	Action    Action
	Enabled   bool
}

// Engine advances a loop's oscillators one step at a time and evaluates
// rules after every step. All methods are safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	inputs    []*oscillator.Oscillator
	listeners []*oscillator.Oscillator
	cfg       simulate.Config
	step      int
	history   []float64
	last      Snapshot
	rules     []*Rule
	running   bool
	cancel    context.CancelFunc
}

// New builds an engine from a loop description. The oscillators are built
// once; Reset rebuilds them.
func New(loop *simulate.Loop) *Engine {
	e := &Engine{cfg: loop.Config}
	if e.cfg.Couple == nil {
		e.cfg.Couple = simulate.Multiply
	}
	e.inputs = buildOscillators(loop.Inputs)
	e.listeners = buildOscillators(loop.Listeners)
	return e
}

func buildOscillators(specs []simulate.Osc) []*oscillator.Oscillator {
	out := make([]*oscillator.Oscillator, len(specs))
	for i, s := range specs {
		out[i] = oscillator.New(s.Name, s.Frequency, s.Phase)
	}
	return out
}

// AddRule registers a condition-action rule, enabled immediately.
func (e *Engine) AddRule(name string, condition Condition, action Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, &Rule{
		Name:      name,
		Condition: condition,
		Action:    action,
		Enabled:   true,
	})
}

// Step advances the simulation by one step and returns the new snapshot.
// Rules are evaluated after the step, outside the state lock.
func (e *Engine) Step() Snapshot {
	e.mu.Lock()
	t := float64(e.step) * e.cfg.Dt

	samples := make([]float64, len(e.inputs))
	for i, osc := range e.inputs {
		samples[i] = osc.Advance(e.cfg.Dt, 0)
	}
	interaction := e.cfg.Couple(samples)

	resonance := 0.0
	for _, osc := range e.listeners {
		out := osc.Advance(e.cfg.Dt, e.cfg.K*interaction)
		resonance += abs(out) * abs(interaction)
	}
	if len(e.listeners) > 0 {
		resonance /= float64(len(e.listeners))
	}

	e.history = append(e.history, resonance)
	snap := Snapshot{
		Step:         e.step,
		Time:         t,
		Interaction:  interaction,
		Resonance:    resonance,
		TrailingMean: metric.TrailingMean(e.history, metric.DefaultSettleFraction),
	}
	e.step++
	e.last = snap

	rules := make([]*Rule, len(e.rules))
	copy(rules, e.rules)
	e.mu.Unlock()

	for _, rule := range rules {
		if rule.Enabled && rule.Condition(snap) {
			if err := rule.Action(snap); err != nil {
				e.disableRule(rule)
			}
		}
	}
	return snap
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// A failing action disables its rule rather than firing again every step.
func (e *Engine) disableRule(r *Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r.Enabled = false
}

// Last returns the most recent snapshot.
func (e *Engine) Last() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

// History returns a copy of the resonance series so far.
func (e *Engine) History() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]float64(nil), e.history...)
}

// Run advances the engine on a ticker until the context is canceled or
// Stop is called. It returns immediately; the loop runs in the background.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	childCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-childCtx.Done():
				e.mu.Lock()
				e.running = false
				e.mu.Unlock()
				return
			case <-ticker.C:
				e.Step()
			}
		}
	}()
}

// Stop halts a running engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.running = false
}

// IsRunning reports whether the background loop is active.
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// ResonanceAbove triggers when the instantaneous resonance exceeds the
// threshold.
func ResonanceAbove(threshold float64) Condition {
	return func(s Snapshot) bool {
		return s.Resonance > threshold
	}
}

// SettledAbove triggers when the trailing-window mean exceeds the
// threshold, i.e. when a batch run at this point would classify as
// resonant.
func SettledAbove(threshold float64) Condition {
	return func(s Snapshot) bool {
		return s.TrailingMean > threshold
	}
}

// After triggers once at least the given number of steps have run.
func After(steps int) Condition {
	return func(s Snapshot) bool {
		return s.Step >= steps
	}
}

// AllOf triggers when all given conditions are true.
func AllOf(conditions ...Condition) Condition {
	return func(s Snapshot) bool {
		for _, c := range conditions {
			if !c(s) {
				return false
			}
		}
		return true
	}
}

// AnyOf triggers when any given condition is true.
func AnyOf(conditions ...Condition) Condition {
	return func(s Snapshot) bool {
		for _, c := range conditions {
			if c(s) {
				return true
			}
		}
		return false
	}
}
