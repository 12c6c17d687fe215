// Package ring models optical ring resonators with a discrete-time
// transfer-matrix approximation. The internal field is a single complex
// amplitude; each step attenuates it, rotates it by the round-trip phase
// accrued during dt, and folds in the coupled share of the input field.
// Stored energy is the squared magnitude of the field, so it is
// structurally non-negative.
package ring

import (
	"math"
	"math/cmplx"

	"github.com/lumen-phi/go-resonance/phi"
)

// Physical constants for the silicon photonics platform the designs
// target: C-band light in a standard SOI waveguide.
const (
	SpeedOfLight       = 3e8     // m/s
	DefaultNEff        = 2.45    // effective refractive index
	DefaultWavelength  = 1550e-9 // m
	DefaultLossPerTrip = 0.01    // 1% intrinsic + scattering loss per round trip
)

// Resonator is a single ring with one bus coupler. Coupling is the power
// fraction transferred per pass, in (0,1); LossPerTrip is in [0,1). Neither
// is validated: out-of-range values produce numerically degenerate output,
// which is the caller's responsibility.
type Resonator struct {
	Name        string
	Radius      float64 // m
	Coupling    float64
	NEff        float64
	Wavelength  float64
	LossPerTrip float64

	Field        complex128 // circulating field amplitude
	PowerHistory []float64  // |Field|² after each step
}

// New creates a resonator with the platform defaults and a dark cavity.
func New(name string, radius, coupling float64) *Resonator {
	return &Resonator{
		Name:        name,
		Radius:      radius,
		Coupling:    coupling,
		NEff:        DefaultNEff,
		Wavelength:  DefaultWavelength,
		LossPerTrip: DefaultLossPerTrip,
	}
}

// Circumference returns the physical loop length.
func (r *Resonator) Circumference() float64 {
	return 2 * math.Pi * r.Radius
}

// ResonanceOrder returns the longitudinal mode number m satisfying
// m·λ = n_eff·L.
func (r *Resonator) ResonanceOrder() int {
	return int(r.NEff * r.Circumference() / r.Wavelength)
}

// ResonanceFrequency returns the optical frequency of the nearest mode.
func (r *Resonator) ResonanceFrequency() float64 {
	order := r.ResonanceOrder()
	if order == 0 {
		return 0
	}
	return SpeedOfLight / (r.NEff * r.Circumference() / float64(order))
}

// RoundTripTime returns the time for light to complete one loop.
func (r *Resonator) RoundTripTime() float64 {
	return r.NEff * r.Circumference() / SpeedOfLight
}

// Step advances the cavity by dt under the given input field and returns
// the through-port and drop-port fields. The coupler relation is the
// lossless directional-coupler matrix with field coupling √κ and
// transmission √(1−κ).
func (r *Resonator) Step(input complex128, dt float64) (through, drop complex128) {
	roundTripPhase := 2 * math.Pi * r.NEff * r.Circumference() / r.Wavelength

	kappa := complex(math.Sqrt(r.Coupling), 0)
	tau := complex(math.Sqrt(1-r.Coupling), 0)

	attenuation := complex(math.Sqrt(1-r.LossPerTrip), 0)
	phaseShift := cmplx.Exp(complex(0, roundTripPhase*dt/r.RoundTripTime()))

	r.Field = attenuation*phaseShift*r.Field + kappa*input

	through = tau*input + 1i*kappa*r.Field
	drop = 1i*kappa*input + tau*r.Field

	r.PowerHistory = append(r.PowerHistory, r.StoredPower())
	return through, drop
}

// StoredPower returns the energy currently circulating in the ring.
func (r *Resonator) StoredPower() float64 {
	re, im := real(r.Field), imag(r.Field)
	return re*re + im*im
}

// QualityFactor returns Q = 2π·n_eff·L / (λ·α) where α counts every loss
// channel the stored field sees per round trip: the intrinsic trip loss
// plus the fraction leaked back out through the coupler. Lower coupling
// therefore stores light longer, which is what makes the 1/φ² coupler
// outperform the 50% splitter.
func (r *Resonator) QualityFactor() float64 {
	alpha := r.LossPerTrip + r.Coupling
	if alpha <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * r.NEff * r.Circumference() / (r.Wavelength * alpha)
}

// Finesse returns the standard Airy-function approximation of free
// spectral range over linewidth.
func (r *Resonator) Finesse() float64 {
	if r.LossPerTrip == 0 {
		return math.Inf(1)
	}
	return math.Pi * math.Sqrt(1-r.LossPerTrip) / r.LossPerTrip
}

// PhiOptimized returns a ring with the golden coupling fraction 1/φ².
func PhiOptimized(name string, radius float64) *Resonator {
	return New(name, radius, phi.InvPhiSquared)
}

// PhiNested returns a ring scaled up by φ in radius with the golden
// coupling fraction, the first level of the recursive design.
func PhiNested(name string, baseRadius float64) *Resonator {
	return New(name, baseRadius*phi.Phi, phi.InvPhiSquared)
}
