package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumen-phi/go-resonance/plotter"
	"github.com/lumen-phi/go-resonance/ring"
)

func rings(args []string) error {
	fs := flag.NewFlagSet("rings", flag.ExitOnError)
	radius := fs.Float64("radius", 5.0, "Base ring radius (µm)")
	duration := fs.Float64("duration", 100.0, "Pulse simulation duration (ps)")
	steps := fs.Int("steps", 2000, "Step count")
	plotOut := fs.String("plot", "", "Write an SVG plot of the φ-optimized buildup")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen rings [options]

Compare three ring resonator designs under a Gaussian pulse: a standard
50%% coupler, a φ-optimized 1/φ² coupler, and a φ-nested ring scaled up
by φ in radius.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	radiusM := *radius * 1e-6
	durationS := *duration * 1e-12
	designs := ring.CompareDesigns(radiusM, durationS, *steps)

	fmt.Println("ring design comparison:")
	fmt.Printf("  %-14s %10s %10s %12s %12s\n", "design", "Q", "finesse", "mean stored", "efficiency")
	for _, d := range designs {
		fmt.Printf("  %-14s %10.1f %10.1f %12.5f %12.5f\n",
			d.Resonator.Name, d.Q, d.Finesse, d.MeanStored, d.Efficiency)
	}

	standard, optimized := designs[0], designs[1]
	fmt.Printf("φ-optimized Q improvement: %.2fx over standard\n", optimized.Q/standard.Q)

	if *plotOut != "" {
		r := ring.PhiOptimized("phi-optimized", radiusM)
		b := ring.SimulateBuildup(r, durationS, *steps)
		svg := plotter.PlotBuildup(b, "φ-optimized ring buildup")
		if err := os.WriteFile(*plotOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "plot written to %s\n", *plotOut)
	}
	return nil
}
