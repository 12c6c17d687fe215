package eventlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lumen-phi/go-resonance/simulate"
)

func runLog(t *testing.T) *Log {
	t.Helper()
	loop := &simulate.Loop{
		Inputs:    []simulate.Osc{{Name: "A", Frequency: 5.0}, {Name: "B", Frequency: 8.0}},
		Listeners: []simulate.Osc{{Name: "C", Frequency: 3.0}},
		Config:    simulate.Config{K: 1.5, Dt: 0.01, Steps: 25},
	}
	return FromResult("run-1", "choir", loop.Run())
}

func TestFromResult(t *testing.T) {
	log := runLog(t)
	if len(log.Records) != 25 {
		t.Fatalf("got %d records, want 25", len(log.Records))
	}
	for i, r := range log.Records {
		if r.Step != i {
			t.Errorf("record %d has step %d", i, r.Step)
		}
		if r.RunID != "run-1" || r.Scenario != "choir" {
			t.Errorf("record %d tagged %q/%q", i, r.RunID, r.Scenario)
		}
	}
}

func TestMultipleRuns(t *testing.T) {
	log := runLog(t)
	second := runLog(t)
	for i := range second.Records {
		second.Records[i].RunID = "run-2"
	}
	log.Append(second)

	runs := log.Runs()
	if len(runs) != 2 || runs[0] != "run-1" || runs[1] != "run-2" {
		t.Fatalf("runs = %v", runs)
	}
	if got := len(log.Run("run-2")); got != 25 {
		t.Errorf("run-2 has %d records", got)
	}
	if got := len(log.Resonances("run-1")); got != 25 {
		t.Errorf("run-1 resonance series length %d", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	log := runLog(t)

	var buf bytes.Buffer
	if err := log.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	parsed, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(parsed.Records) != len(log.Records) {
		t.Fatalf("round trip lost records: %d vs %d", len(parsed.Records), len(log.Records))
	}
	for i := range parsed.Records {
		if parsed.Records[i] != log.Records[i] {
			t.Fatalf("record %d changed: %+v vs %+v", i, parsed.Records[i], log.Records[i])
		}
	}
}

func TestParseCSVRejectsWrongHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("a,b,c\n1,2,3\n"))
	if err == nil {
		t.Fatal("expected header error")
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	log := runLog(t)

	var buf bytes.Buffer
	if err := log.WriteJSONL(&buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	parsed, err := ParseJSONL(&buf)
	if err != nil {
		t.Fatalf("ParseJSONL: %v", err)
	}
	if len(parsed.Records) != len(log.Records) {
		t.Fatalf("round trip lost records: %d vs %d", len(parsed.Records), len(log.Records))
	}
	if parsed.Records[10] != log.Records[10] {
		t.Errorf("record 10 changed: %+v vs %+v", parsed.Records[10], log.Records[10])
	}
}

func TestParseJSONLRejectsGarbage(t *testing.T) {
	_, err := ParseJSONL(strings.NewReader("{\"run_id\":\"x\"}\nnot json\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}
