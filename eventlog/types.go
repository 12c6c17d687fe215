// Package eventlog persists simulation runs as flat files. A run is a
// sequence of per-step records tagged with a run ID, exportable to CSV and
// JSONL and parseable back for later analysis.
package eventlog

import (
	"sort"

	"github.com/lumen-phi/go-resonance/simulate"
)

// Record is one simulation step of one run.
type Record struct {
	RunID       string  `json:"run_id"`
	Scenario    string  `json:"scenario"`
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Interaction float64 `json:"interaction"`
	Resonance   float64 `json:"resonance"`
}

// Log is an ordered collection of records, possibly spanning several runs.
type Log struct {
	Records []Record
}

// FromResult flattens a simulation result into records tagged with the
// given run ID and scenario name.
func FromResult(runID, scenario string, res *simulate.Result) *Log {
	log := &Log{Records: make([]Record, 0, len(res.Steps))}
	for _, s := range res.Steps {
		log.Records = append(log.Records, Record{
			RunID:       runID,
			Scenario:    scenario,
			Step:        s.Index,
			Time:        s.Time,
			Interaction: s.Interaction,
			Resonance:   s.Resonance,
		})
	}
	return log
}

// Append merges another log's records into this one.
func (l *Log) Append(other *Log) {
	l.Records = append(l.Records, other.Records...)
}

// Runs returns the distinct run IDs in first-appearance order.
func (l *Log) Runs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range l.Records {
		if !seen[r.RunID] {
			seen[r.RunID] = true
			out = append(out, r.RunID)
		}
	}
	return out
}

// Run returns the records of one run, sorted by step index.
func (l *Log) Run(runID string) []Record {
	var out []Record
	for _, r := range l.Records {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Step < out[j].Step })
	return out
}

// Resonances returns the resonance series of one run, in step order.
func (l *Log) Resonances(runID string) []float64 {
	records := l.Run(runID)
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Resonance
	}
	return out
}
