package ring

import (
	"math"
	"testing"

	"github.com/lumen-phi/go-resonance/phi"
)

func TestStoredPowerNonIncreasingWithoutInput(t *testing.T) {
	r := New("dark", 5e-6, 0.3)
	r.Field = complex(0.8, 0.2)

	dt := r.RoundTripTime()
	prev := r.StoredPower()
	for i := 0; i < 500; i++ {
		r.Step(0, dt)
		p := r.StoredPower()
		if p > prev {
			t.Fatalf("step %d: stored power grew from %g to %g with zero input", i, prev, p)
		}
		prev = p
	}
	if prev >= 0.8*0.8+0.2*0.2 {
		t.Errorf("stored power %g never decayed", prev)
	}
}

func TestStoredPowerBoundedUnderBoundedInput(t *testing.T) {
	r := New("driven", 5e-6, 0.4)

	// Geometric bound for |field|: √κ / (1 − attenuation) with unit input.
	atten := math.Sqrt(1 - r.LossPerTrip)
	bound := math.Sqrt(r.Coupling) / (1 - atten)

	dt := r.RoundTripTime()
	for i := 0; i < 5000; i++ {
		r.Step(1, dt)
		if amp := math.Sqrt(r.StoredPower()); amp > bound+1e-9 {
			t.Fatalf("step %d: field amplitude %g exceeds supremum bound %g", i, amp, bound)
		}
	}
}

func TestPhiCouplingBeatsStandardQ(t *testing.T) {
	standard := New("standard", 5e-6, 0.5)
	optimized := PhiOptimized("phi", 5e-6)

	qs, qp := standard.QualityFactor(), optimized.QualityFactor()
	if qp <= qs {
		t.Errorf("Q(phi-optimized) = %f should exceed Q(standard) = %f", qp, qs)
	}

	// α = loss + coupling: the improvement ratio is (0.01+0.5)/(0.01+1/φ²).
	want := (0.01 + 0.5) / (0.01 + phi.InvPhiSquared)
	if got := qp / qs; math.Abs(got-want) > 1e-9 {
		t.Errorf("improvement ratio = %f, want %f", got, want)
	}
}

func TestNestedRingOutranksBoth(t *testing.T) {
	standard := New("standard", 5e-6, 0.5)
	nested := PhiNested("nested", 5e-6)

	if nested.QualityFactor() <= standard.QualityFactor() {
		t.Errorf("nested Q %f should exceed standard Q %f",
			nested.QualityFactor(), standard.QualityFactor())
	}
	if nested.Radius <= standard.Radius {
		t.Errorf("nested radius %g should be φ times base", nested.Radius)
	}
}

func TestFinesse(t *testing.T) {
	r := New("r", 5e-6, 0.5)
	want := math.Pi * math.Sqrt(1-0.01) / 0.01
	if got := r.Finesse(); math.Abs(got-want) > 1e-9 {
		t.Errorf("finesse = %f, want %f", got, want)
	}

	r.LossPerTrip = 0
	if !math.IsInf(r.Finesse(), 1) {
		t.Errorf("lossless finesse should be +Inf")
	}
}

func TestResonanceOrder(t *testing.T) {
	r := New("r", 5e-6, 0.5)
	want := int(r.NEff * r.Circumference() / r.Wavelength)
	if got := r.ResonanceOrder(); got != want {
		t.Errorf("order = %d, want %d", got, want)
	}
	if r.ResonanceFrequency() <= 0 {
		t.Errorf("resonance frequency should be positive")
	}
}

func TestSimulateBuildupCharges(t *testing.T) {
	r := PhiOptimized("phi", 5e-6)
	b := SimulateBuildup(r, 100e-12, 2000)

	if len(b.T) != 2000 || len(b.Stored) != 2000 {
		t.Fatalf("series lengths %d/%d, want 2000", len(b.T), len(b.Stored))
	}
	// The pulse tail at t=0 is tiny, so the first recorded step holds
	// almost nothing.
	if b.Stored[0] > 0.01 {
		t.Errorf("cavity charged too fast: first step stored %g", b.Stored[0])
	}

	peak := 0.0
	for _, p := range b.Stored {
		if p < 0 {
			t.Fatalf("negative stored power %g", p)
		}
		if p > peak {
			peak = p
		}
	}
	if peak == 0 {
		t.Errorf("pulse never charged the cavity")
	}
}

func TestCompareDesignsOrdering(t *testing.T) {
	designs := CompareDesigns(5e-6, 100e-12, 2000)

	if len(designs) != 3 {
		t.Fatalf("got %d designs, want 3", len(designs))
	}
	standard, optimized, nested := designs[0], designs[1], designs[2]

	if optimized.Q <= standard.Q {
		t.Errorf("Q ordering violated: optimized %f <= standard %f", optimized.Q, standard.Q)
	}
	if nested.Q <= optimized.Q {
		t.Errorf("Q ordering violated: nested %f <= optimized %f", nested.Q, optimized.Q)
	}
}
