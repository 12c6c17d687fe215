// Package phi provides the golden-ratio constants and scaling helpers
// shared by the resonance simulators. The constants are plain values,
// not process-wide configuration: every simulation receives the numbers
// it needs explicitly, so independent runs cannot interfere.
package phi

import "math"

// Phi is the golden ratio, (1+√5)/2.
var Phi = (1 + math.Sqrt(5)) / 2

// InvPhiSquared is 1/φ² ≈ 0.382, the coupling fraction used by the
// φ-optimized ring designs (the complementary split is 1−1/φ² ≈ 0.618).
var InvPhiSquared = 1 / (Phi * Phi)

// Pow returns φ^n for integer n.
func Pow(n int) float64 {
	return math.Pow(Phi, float64(n))
}

// Scale returns base·φ^n, the harmonic scaling used for frequencies
// and ring radii.
func Scale(base float64, n int) float64 {
	return base * Pow(n)
}

// Ladder returns count frequencies spaced by successive powers of φ
// starting at base: base, base·φ, base·φ², ...
// φ-spacing keeps the rungs mutually non-harmonic so superposed waves
// never destructively lock.
func Ladder(base float64, count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = Scale(base, i)
	}
	return out
}

// SpiralPoint is a single sample of a golden spiral.
type SpiralPoint struct {
	X, Y   float64
	Theta  float64
	Radius float64
}

// Spiral samples a golden spiral r = a·φ^(2θ/π) at the given number of
// points over [0, thetaMax].
func Spiral(a, thetaMax float64, points int) []SpiralPoint {
	out := make([]SpiralPoint, points)
	for i := 0; i < points; i++ {
		theta := thetaMax * float64(i) / float64(points-1)
		r := a * math.Pow(Phi, 2*theta/math.Pi)
		out[i] = SpiralPoint{
			X:      r * math.Cos(theta),
			Y:      r * math.Sin(theta),
			Theta:  theta,
			Radius: r,
		}
	}
	return out
}
