package scenario

import "testing"

func TestChoirLocksOntoBeat(t *testing.T) {
	report := Choir()
	if len(report.Cases) != 1 {
		t.Fatalf("choir produced %d cases, want 1", len(report.Cases))
	}
	if !report.Pass() {
		c := report.Cases[0]
		t.Errorf("choir did not resonate: mean %f, threshold %f",
			c.Verdict.Mean, c.Verdict.Threshold)
	}
}

func TestXORTruthTable(t *testing.T) {
	report := XOR()
	if len(report.Cases) != 4 {
		t.Fatalf("xor produced %d cases, want 4", len(report.Cases))
	}
	for _, c := range report.Cases {
		if !c.Pass() {
			t.Errorf("case %s: resonant=%v want=%v (mean %f)",
				c.Name, c.Verdict.Resonant, c.Want, c.Verdict.Mean)
		}
	}
}

func TestXORIsReproducible(t *testing.T) {
	a, b := XOR(), XOR()
	for i := range a.Cases {
		if a.Cases[i].Verdict.Mean != b.Cases[i].Verdict.Mean {
			t.Fatalf("case %s diverged between runs", a.Cases[i].Name)
		}
	}
}

func TestSemanticReportShape(t *testing.T) {
	report := Semantic([]string{"The", "Cat", "Sat"}, 42)

	if len(report.Activity.Words) != 5 {
		t.Fatalf("bank tracked %d words, want 5", len(report.Activity.Words))
	}
	if report.Resistance <= 0 || report.Resistance > 1 {
		t.Errorf("final resistance %f out of (0,1]", report.Resistance)
	}
	// Every word in the sentence must be among the recognized set.
	for _, w := range report.Sentence {
		found := false
		for _, r := range report.Recognized {
			if r == w {
				found = true
			}
		}
		if !found {
			t.Errorf("sentence word %q not recognized (activation %f)",
				w, report.Activity.Final(w))
		}
	}

	again := Semantic([]string{"The", "Cat", "Sat"}, 42)
	if again.Resistance != report.Resistance {
		t.Errorf("same seed gave different resistance: %f vs %f",
			again.Resistance, report.Resistance)
	}
}

func TestRingsComparison(t *testing.T) {
	designs := Rings()
	if len(designs) != 3 {
		t.Fatalf("got %d designs, want 3", len(designs))
	}
	if designs[1].Q <= designs[0].Q || designs[2].Q <= designs[1].Q {
		t.Errorf("Q ordering violated: %f, %f, %f",
			designs[0].Q, designs[1].Q, designs[2].Q)
	}
}
