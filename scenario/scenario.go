// Package scenario wires the simulation packages into the documented
// end-to-end demos: the heterodyne choir trio, the four-case XOR frequency
// test, sentence recognition through the resonator bank, and the three-way
// ring design comparison. Each runner builds its oscillators fresh, so
// reports are reproducible and runs never share state.
package scenario

import (
	"math"
	"math/rand"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/ring"
	"github.com/lumen-phi/go-resonance/simulate"
	"github.com/lumen-phi/go-resonance/vocab"
)

// Thresholds the demos classify against.
const (
	RecognitionThreshold = 0.25
	ActivationThreshold  = 0.2
)

// Case is one classified simulation run inside a scenario.
type Case struct {
	Name    string
	Want    bool // expected classification
	Verdict metric.Verdict
	Result  *simulate.Result
}

// Pass reports whether the run classified the way the scenario expects.
func (c Case) Pass() bool {
	return c.Verdict.Resonant == c.Want
}

// Report collects the cases of one scenario run.
type Report struct {
	Scenario string
	Cases    []Case
}

// Pass reports whether every case classified as expected.
func (r *Report) Pass() bool {
	for _, c := range r.Cases {
		if !c.Pass() {
			return false
		}
	}
	return true
}

func classify(name string, want bool, loop *simulate.Loop) Case {
	res := loop.Run()
	v := metric.Evaluate(res.Resonances(), metric.DefaultSettleFraction, RecognitionThreshold)
	return Case{Name: name, Want: want, Verdict: v, Result: res}
}

// Choir runs the three-oscillator heterodyne demo: inputs at 5 and 8 Hz and
// a listener tuned to their 3 Hz beat. The listener should lock on.
func Choir() *Report {
	loop := &simulate.Loop{
		Inputs: []simulate.Osc{
			{Name: "soprano", Frequency: 5.0},
			{Name: "alto", Frequency: 8.0},
		},
		Listeners: []simulate.Osc{{Name: "bass", Frequency: 3.0}},
		Config:    simulate.DefaultConfig(),
	}
	return &Report{
		Scenario: "choir",
		Cases:    []Case{classify("5Hz+8Hz->3Hz", true, loop)},
	}
}

// XOR runs the four-case frequency comparison: mixed-frequency pairs carry a
// beat the listener locks onto, same-frequency pairs carry none. The truth
// table is XOR over "inputs differ".
//
// Same-frequency pairs start a quarter cycle apart. In-phase identical
// inputs square to a signal with a large positive mean, which drives the
// listener just like a real beat would; the quarter-cycle offset removes
// that bias without touching the mixed cases.
func XOR() *Report {
	cases := []struct {
		name   string
		fa, fb float64
		want   bool
	}{
		{"5,8", 5.0, 8.0, true},
		{"8,5", 8.0, 5.0, true},
		{"5,5", 5.0, 5.0, false},
		{"8,8", 8.0, 8.0, false},
	}

	report := &Report{Scenario: "xor"}
	for _, c := range cases {
		listener := math.Abs(c.fa - c.fb)
		var phaseB float64
		if listener == 0 {
			listener = 0.1
			phaseB = math.Pi / 2
		}

		cfg := simulate.DefaultConfig()
		cfg.Steps = 500
		loop := &simulate.Loop{
			Inputs: []simulate.Osc{
				{Name: "A", Frequency: c.fa},
				{Name: "B", Frequency: c.fb, Phase: phaseB},
			},
			Listeners: []simulate.Osc{{Name: "beat", Frequency: listener}},
			Config:    cfg,
		}
		report.Cases = append(report.Cases, classify(c.name, c.want, loop))
	}
	return report
}

// SemanticReport is the outcome of feeding one sentence through the
// resonator bank.
type SemanticReport struct {
	Sentence   []string
	Activity   *vocab.Activity
	Recognized []string
	Resistance float64 // final bank resistance
}

// Semantic renders the sentence as a chord over the stock vocabulary and
// lets the bank listen for one second. Resonator phase memories come from
// the seed, so the report is reproducible.
func Semantic(sentence []string, seed int64) *SemanticReport {
	v := vocab.StockVocabulary()
	bank := vocab.NewBank(v, rand.New(rand.NewSource(seed)))

	t, signal := v.Chord(sentence, 1.0, 0.001)
	act := bank.Process(t, signal)

	return &SemanticReport{
		Sentence:   append([]string(nil), sentence...),
		Activity:   act,
		Recognized: act.Recognized(ActivationThreshold),
		Resistance: act.Resistance[len(act.Resistance)-1],
	}
}

// Rings runs the documented design comparison on a 5 µm base ring with a
// 100 ps pulse over 2000 steps.
func Rings() []ring.Design {
	return ring.CompareDesigns(5e-6, 100e-12, 2000)
}
