// Package vocab maps words to φ-spaced frequencies and turns sentences into
// superposed chords for a bank of passive resonators. The mapping is
// explicit configuration carried by a Vocabulary value, never a package
// global, so independent runs with different vocabularies cannot interfere.
package vocab

import (
	"math"
	"math/rand"
	"sort"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/phi"
)

// Vocabulary assigns one carrier frequency per word.
type Vocabulary struct {
	words []string
	freqs map[string]float64
}

// PhiSpaced builds a vocabulary on the golden ladder: the i-th word rings at
// base·φ^i. φ-spacing keeps the carriers mutually non-harmonic, so chords
// never destructively interfere.
func PhiSpaced(base float64, words ...string) Vocabulary {
	freqs := make(map[string]float64, len(words))
	for i, w := range words {
		freqs[w] = phi.Scale(base, i)
	}
	return Vocabulary{words: append([]string(nil), words...), freqs: freqs}
}

// StockVocabulary returns the five-word demo vocabulary on a 10 Hz base.
func StockVocabulary() Vocabulary {
	return PhiSpaced(10.0, "The", "Cat", "Sat", "Dog", "Ran")
}

// Words returns the vocabulary in ladder order.
func (v Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Frequency returns the carrier for a word, if the word is known.
func (v Vocabulary) Frequency(word string) (float64, bool) {
	f, ok := v.freqs[word]
	return f, ok
}

// Chord renders a sentence as a single superposed signal: every word's
// sinusoid added together, all words present simultaneously. Unknown words
// contribute nothing. Returns the time axis and the signal.
func (v Vocabulary) Chord(sentence []string, duration, dt float64) (t, signal []float64) {
	n := int(duration / dt)
	t = make([]float64, n)
	signal = make([]float64, n)
	for i := range t {
		t[i] = float64(i) * dt
	}
	for _, w := range sentence {
		f, ok := v.freqs[w]
		if !ok {
			continue
		}
		for i, tt := range t {
			signal[i] += math.Sin(2 * math.Pi * f * tt)
		}
	}
	return t, signal
}

// Resonator listens for a single word frequency. It holds an internal
// reference wave with a fixed phase memory and accumulates coherence
// through the smoothed integrator.
type Resonator struct {
	Word        string
	Frequency   float64
	PhaseMemory float64
	state       *metric.Integrator
}

// NewResonator creates a word detector with a random phase memory drawn
// from the supplied generator.
func NewResonator(word string, frequency float64, rng *rand.Rand) *Resonator {
	return &Resonator{
		Word:        word,
		Frequency:   frequency,
		PhaseMemory: rng.Float64() * 2 * math.Pi,
		state:       metric.NewIntegrator(),
	}
}

// Listen heterodynes the input against the internal reference at time t and
// returns the accumulated activation.
func (r *Resonator) Listen(t, input float64) float64 {
	reference := math.Sin(2*math.Pi*r.Frequency*t + r.PhaseMemory)
	return r.state.Update(reference, input)
}

// Activation returns the current accumulated activation.
func (r *Resonator) Activation() float64 {
	return r.state.State
}

// Bank is one resonator per vocabulary word.
type Bank struct {
	Resonators []*Resonator
}

// NewBank builds a resonator for every word in the vocabulary.
func NewBank(v Vocabulary, rng *rand.Rand) *Bank {
	b := &Bank{}
	for _, w := range v.words {
		b.Resonators = append(b.Resonators, NewResonator(w, v.freqs[w], rng))
	}
	return b
}

// Activity records a bank processing run: one activation series per word
// plus the instantaneous resistance of the whole bank.
type Activity struct {
	Words      []string
	Series     map[string][]float64
	Resistance []float64
}

// Process feeds the signal through every resonator, sample by sample.
func (b *Bank) Process(t, signal []float64) *Activity {
	act := &Activity{Series: make(map[string][]float64, len(b.Resonators))}
	for _, r := range b.Resonators {
		act.Words = append(act.Words, r.Word)
		act.Series[r.Word] = make([]float64, 0, len(t))
	}

	for i, tt := range t {
		total := 0.0
		for _, r := range b.Resonators {
			a := r.Listen(tt, signal[i])
			act.Series[r.Word] = append(act.Series[r.Word], a)
			total += a
		}
		act.Resistance = append(act.Resistance, metric.Resistance(total))
	}
	return act
}

// Final returns the last activation level for a word, or 0 if the word has
// no series.
func (a *Activity) Final(word string) float64 {
	s := a.Series[word]
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Recognized returns the words whose final activation clears the threshold,
// sorted alphabetically.
func (a *Activity) Recognized(threshold float64) []string {
	var out []string
	for _, w := range a.Words {
		if a.Final(w) > threshold {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
