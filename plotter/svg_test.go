package plotter

import (
	"strings"
	"testing"

	"github.com/lumen-phi/go-resonance/simulate"
)

func TestNewDefaults(t *testing.T) {
	p := New(800, 600)

	if p.Width != 800 || p.Height != 600 {
		t.Errorf("canvas %fx%f, want 800x600", p.Width, p.Height)
	}
	if p.XLabel != "time (s)" {
		t.Errorf("default XLabel %q", p.XLabel)
	}
	if p.Series != nil {
		t.Error("series should start nil")
	}
}

func TestChaining(t *testing.T) {
	p := New(800, 600)
	if p.SetTitle("t").SetLabels("x", "y").MarkThreshold(0.25) != p {
		t.Error("builder methods should return the plotter")
	}
	if p.Title != "t" || p.XLabel != "x" || p.YLabel != "y" {
		t.Errorf("builder state not applied: %q %q %q", p.Title, p.XLabel, p.YLabel)
	}
}

func TestPaletteAssignsDistinctColors(t *testing.T) {
	p := New(800, 600)
	p.AddSeries([]float64{0, 1}, []float64{0, 1}, "a", "")
	p.AddSeries([]float64{0, 1}, []float64{0, 2}, "b", "")

	if p.Series[0].Color == "" || p.Series[1].Color == "" {
		t.Fatal("palette colors not assigned")
	}
	if p.Series[0].Color == p.Series[1].Color {
		t.Error("consecutive series share a color")
	}
}

func TestRenderBasic(t *testing.T) {
	svg := New(800, 600).
		SetTitle("resonance run").
		AddSeries([]float64{0, 1, 2}, []float64{0, 0.3, 0.1}, "listener", "#0000ff").
		MarkThreshold(0.25).
		Render()

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	for _, want := range []string{"resonance run", "listener", "#0000ff", "<path", "threshold 0.25", "stroke-dasharray"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	svg := New(800, 600).Render()
	if !strings.HasPrefix(svg, "<svg") {
		t.Error("empty plot should still render")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	svg := New(800, 600).
		SetTitle(`<script>alert("x")</script>`).
		AddSeries([]float64{0, 1}, []float64{0, 1}, "<tag>", "").
		Render()

	if strings.Contains(svg, "<script>") {
		t.Error("title markup not escaped")
	}
	if !strings.Contains(svg, "&lt;") || !strings.Contains(svg, "&gt;") {
		t.Error("angle brackets not escaped")
	}
}

func TestPlotRun(t *testing.T) {
	loop := &simulate.Loop{
		Inputs:    []simulate.Osc{{Name: "A", Frequency: 5.0}, {Name: "B", Frequency: 8.0}},
		Listeners: []simulate.Osc{{Name: "C", Frequency: 3.0}},
		Config:    simulate.Config{K: 1.5, Dt: 0.01, Steps: 100},
	}
	svg := PlotRun(loop.Run(), 0.25, "choir")

	for _, want := range []string{"choir", "resonance", "interaction", "threshold 0.25"} {
		if !strings.Contains(svg, want) {
			t.Errorf("run plot missing %q", want)
		}
	}
	// settling shade
	if !strings.Contains(svg, "#f0f4e8") {
		t.Error("run plot missing settled-region shading")
	}
}
