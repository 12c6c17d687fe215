// Package plotter renders simulation runs as SVG time-series plots. Plots
// can carry a recognition-threshold line and a shaded settling window so a
// run's classification is visible at a glance.
package plotter

import (
	"fmt"
	"math"
	"strings"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/ring"
	"github.com/lumen-phi/go-resonance/simulate"
	"github.com/lumen-phi/go-resonance/vocab"
)

// Series is a single labeled curve.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Color string
}

// Margin is the whitespace around the plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// SVGPlotter builds one SVG plot. Zero or more series, an optional
// horizontal threshold line, and an optional shaded settling region.
type SVGPlotter struct {
	Width  float64
	Height float64
	Margin Margin
	Title  string
	XLabel string
	YLabel string
	Series []Series

	threshold    float64
	hasThreshold bool
	settleFrom   float64
	hasSettle    bool
}

var palette = []string{"#c0392b", "#2980b9", "#27ae60", "#8e44ad", "#d35400", "#16a085", "#7f8c8d"}

// New creates a plotter with the given canvas size.
func New(width, height float64) *SVGPlotter {
	return &SVGPlotter{
		Width:  width,
		Height: height,
		Margin: Margin{Top: 40, Right: 120, Bottom: 50, Left: 60},
		XLabel: "time (s)",
		YLabel: "value",
	}
}

// SetTitle sets the plot title.
func (p *SVGPlotter) SetTitle(t string) *SVGPlotter {
	p.Title = t
	return p
}

// SetLabels sets the axis labels.
func (p *SVGPlotter) SetLabels(x, y string) *SVGPlotter {
	p.XLabel, p.YLabel = x, y
	return p
}

// AddSeries appends a curve. An empty color picks the next palette entry.
func (p *SVGPlotter) AddSeries(x, y []float64, label, color string) *SVGPlotter {
	if color == "" {
		color = palette[len(p.Series)%len(palette)]
	}
	p.Series = append(p.Series, Series{X: x, Y: y, Label: label, Color: color})
	return p
}

// MarkThreshold draws a dashed horizontal line at the given level.
func (p *SVGPlotter) MarkThreshold(level float64) *SVGPlotter {
	p.threshold, p.hasThreshold = level, true
	return p
}

// ShadeSettledFrom shades the region right of the given x, marking where
// the trailing-window metric starts counting.
func (p *SVGPlotter) ShadeSettledFrom(x float64) *SVGPlotter {
	p.settleFrom, p.hasSettle = x, true
	return p
}

func (p *SVGPlotter) plotWidth() float64  { return p.Width - p.Margin.Left - p.Margin.Right }
func (p *SVGPlotter) plotHeight() float64 { return p.Height - p.Margin.Top - p.Margin.Bottom }

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Render produces the SVG document.
func (p *SVGPlotter) Render() string {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, s := range p.Series {
		for i := range s.X {
			xmin = math.Min(xmin, s.X[i])
			xmax = math.Max(xmax, s.X[i])
			ymin = math.Min(ymin, s.Y[i])
			ymax = math.Max(ymax, s.Y[i])
		}
	}
	if p.hasThreshold {
		ymin = math.Min(ymin, p.threshold)
		ymax = math.Max(ymax, p.threshold)
	}
	if math.IsInf(xmin, 1) {
		xmin, xmax = 0, 1
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0, 1
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}
	padX, padY := (xmax-xmin)*0.02, (ymax-ymin)*0.08
	xmin, xmax = xmin-padX, xmax+padX
	ymin, ymax = ymin-padY, ymax+padY

	sx := func(x float64) float64 {
		return p.Margin.Left + (x-xmin)/(xmax-xmin)*p.plotWidth()
	}
	sy := func(y float64) float64 {
		return p.Margin.Top + p.plotHeight() - (y-ymin)/(ymax-ymin)*p.plotHeight()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(p.Width), int(p.Height)))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#fdfdfd"/>`,
		int(p.Width), int(p.Height)))

	if p.hasSettle && p.settleFrom < xmax {
		x := sx(math.Max(p.settleFrom, xmin))
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#f0f4e8"/>`,
			x, p.Margin.Top, p.Margin.Left+p.plotWidth()-x, p.plotHeight()))
	}

	if p.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="24" text-anchor="middle" font-family="sans-serif" font-size="15" font-weight="bold">%s</text>`,
			p.Width/2, escaper.Replace(p.Title)))
	}

	// axes
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222" stroke-width="1.5"/>`,
		p.Margin.Left, p.Margin.Top, p.Margin.Left, p.Margin.Top+p.plotHeight()))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#222" stroke-width="1.5"/>`,
		p.Margin.Left, p.Margin.Top+p.plotHeight(), p.Margin.Left+p.plotWidth(), p.Margin.Top+p.plotHeight()))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>`,
		p.Margin.Left+p.plotWidth()/2, p.Height-12, escaper.Replace(p.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="16" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12" transform="rotate(-90,16,%.1f)">%s</text>`,
		p.Margin.Top+p.plotHeight()/2, p.Margin.Top+p.plotHeight()/2, escaper.Replace(p.YLabel)))

	// ticks and gridlines
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		frac := float64(i) / ticks
		px := p.Margin.Left + frac*p.plotWidth()
		py := p.Margin.Top + p.plotHeight() - frac*p.plotHeight()
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e3e3e3" stroke-width="0.5"/>`,
			px, p.Margin.Top, px, p.Margin.Top+p.plotHeight()))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e3e3e3" stroke-width="0.5"/>`,
			p.Margin.Left, py, p.Margin.Left+p.plotWidth(), py))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="10">%.2g</text>`,
			px, p.Margin.Top+p.plotHeight()+16, xmin+frac*(xmax-xmin)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="end" font-family="sans-serif" font-size="10">%.2g</text>`,
			p.Margin.Left-6, py+3, ymin+frac*(ymax-ymin)))
	}

	if p.hasThreshold {
		y := sy(p.threshold)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999" stroke-width="1" stroke-dasharray="6,4"/>`,
			p.Margin.Left, y, p.Margin.Left+p.plotWidth(), y))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" fill="#666">threshold %.2f</text>`,
			p.Margin.Left+4, y-4, p.threshold))
	}

	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		var path strings.Builder
		for i := range s.X {
			cmd := " L"
			if i == 0 {
				cmd = "M"
			}
			path.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, sx(s.X[i]), sy(s.Y[i])))
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="1.5" fill="none"/>`,
			path.String(), s.Color))
	}

	// legend
	ly := p.Margin.Top + 8
	for _, s := range p.Series {
		if s.Label == "" {
			continue
		}
		lx := p.Width - p.Margin.Right + 8
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`,
			lx, ly, lx+18, ly, s.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10">%s</text>`,
			lx+22, ly+3, escaper.Replace(s.Label)))
		ly += 16
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// PlotRun renders a simulation run: the resonance series against the
// recognition threshold, with the settling window shaded.
func PlotRun(res *simulate.Result, threshold float64, title string) string {
	times := res.Times()
	p := New(760, 420).
		SetTitle(title).
		SetLabels("time (s)", "resonance").
		AddSeries(times, res.Resonances(), "resonance", "").
		AddSeries(times, res.Interactions(), "interaction", "").
		MarkThreshold(threshold)
	if n := len(times); n > 0 {
		p.ShadeSettledFrom(times[int(float64(n)*metric.DefaultSettleFraction)])
	}
	return p.Render()
}

// PlotBuildup renders a ring pulse-injection run: input, through, drop, and
// stored power on a shared time axis in picoseconds.
func PlotBuildup(b *ring.Buildup, title string) string {
	ps := make([]float64, len(b.T))
	for i, t := range b.T {
		ps[i] = t * 1e12
	}
	return New(760, 420).
		SetTitle(title).
		SetLabels("time (ps)", "power").
		AddSeries(ps, b.Input, "input", "").
		AddSeries(ps, b.Transmitted, "through", "").
		AddSeries(ps, b.Dropped, "drop", "").
		AddSeries(ps, b.Stored, "stored", "").
		Render()
}

// PlotActivity renders resonator-bank activations per word against the
// activation threshold.
func PlotActivity(t []float64, act *vocab.Activity, threshold float64, title string) string {
	p := New(760, 420).
		SetTitle(title).
		SetLabels("time (s)", "activation").
		MarkThreshold(threshold)
	for _, w := range act.Words {
		p.AddSeries(t, act.Series[w], w, "")
	}
	return p.Render()
}
