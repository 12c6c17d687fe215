// Package layout builds the photonic chip geometry: a bus spine, a bank of
// φ-scaled ring resonators coupled to it, and a golden-ratio Y-splitter.
// The result can be written as a GDSII stream for foundry submission or
// summarized as text.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/lumen-phi/go-resonance/phi"
)

// Geometry constants in µm, matching the standard SOI photonics platform.
const (
	WaveguideWidth = 0.5
	CouplingGap    = 0.2
	SpineLength    = 2000.0
	BaseRadius     = 5.0
	RingCount      = 7

	LayerWaveguide = 0
	LayerLabel     = 10
)

// Point is a 2D coordinate in µm.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle given by two opposite corners.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Ring is one resonator: an annulus of waveguide-width wall centered on
// (X, Y) with the given mid-wall radius.
type Ring struct {
	Index  int
	X, Y   float64
	Radius float64
	Scale  float64 // φ power applied to the base radius
}

// Circumference returns the mid-wall loop length.
func (r Ring) Circumference() float64 {
	return 2 * math.Pi * r.Radius
}

// Path is a fixed-width polyline waveguide.
type Path struct {
	Width  float64
	Points []Point
}

// Label is an annotation on the label layer.
type Label struct {
	Text string
	At   Point
}

// Chip is the complete layout.
type Chip struct {
	Name       string
	Rectangles []Rect
	Rings      []Ring
	Paths      []Path
	Labels     []Label
}

// PhiChip builds the documented layout: a 2 mm spine at y = −10, seven
// rings with radii 5·φ^(i mod 4) placed for an exact coupling gap and
// advanced by 2.5·r·φ each, and a Y-splitter whose arms divide power
// 38.2% / 61.8%.
func PhiChip() *Chip {
	c := &Chip{Name: "LUMEN_PHI_CORE"}

	c.Rectangles = append(c.Rectangles, Rect{0, -10, SpineLength, -10 + WaveguideWidth})

	x := 100.0
	for i := 0; i < RingCount; i++ {
		scale := phi.Pow(i % 4)
		r := BaseRadius * scale
		y := -10 + WaveguideWidth + CouplingGap + r

		c.Rings = append(c.Rings, Ring{Index: i, X: x, Y: y, Radius: r, Scale: scale})
		c.Labels = append(c.Labels, Label{Text: fmt.Sprintf("Ring%d", i), At: Point{x, y}})

		x += r * 2.5 * phi.Phi
	}

	splitterX := x + 200
	c.Paths = append(c.Paths,
		Path{Width: WaveguideWidth, Points: []Point{
			{splitterX, -10}, {splitterX + 10, -10}, {splitterX + 30, -5}}},
		Path{Width: WaveguideWidth, Points: []Point{
			{splitterX, -10}, {splitterX + 10, -10}, {splitterX + 30, -15}}},
	)
	c.Labels = append(c.Labels,
		Label{Text: "38.2%", At: Point{splitterX + 30, -5}},
		Label{Text: "61.8%", At: Point{splitterX + 30, -15}},
	)

	return c
}

// Bounds returns the bounding box over all geometry, label anchors
// excluded.
func (c *Chip) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, r := range c.Rectangles {
		grow(r.X1, r.Y1)
		grow(r.X2, r.Y2)
	}
	for _, r := range c.Rings {
		outer := r.Radius + WaveguideWidth/2
		grow(r.X-outer, r.Y-outer)
		grow(r.X+outer, r.Y+outer)
	}
	for _, p := range c.Paths {
		for _, pt := range p.Points {
			grow(pt.X-p.Width/2, pt.Y-p.Width/2)
			grow(pt.X+p.Width/2, pt.Y+p.Width/2)
		}
	}
	return minX, minY, maxX, maxY
}

// Summary returns a human-readable description of the layout.
func (c *Chip) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cell %s\n", c.Name)
	fmt.Fprintf(&sb, "bus waveguide: %.0f µm, width %.1f µm, gap %.1f µm\n",
		SpineLength, WaveguideWidth, CouplingGap)
	for _, r := range c.Rings {
		fmt.Fprintf(&sb, "ring %d: r = %6.3f µm (φ^%d), center (%.1f, %.1f), L = %.3f µm\n",
			r.Index, r.Radius, r.Index%4, r.X, r.Y, r.Circumference())
	}
	minX, minY, maxX, maxY := c.Bounds()
	w, h := maxX-minX, maxY-minY
	fmt.Fprintf(&sb, "splitter arms: 38.2%% / 61.8%%\n")
	fmt.Fprintf(&sb, "chip dimensions: %.1f x %.1f µm (%.2f mm²)\n", w, h, w*h/1e6)
	return sb.String()
}
