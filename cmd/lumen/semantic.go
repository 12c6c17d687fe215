package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lumen-phi/go-resonance/plotter"
	"github.com/lumen-phi/go-resonance/scenario"
	"github.com/lumen-phi/go-resonance/vocab"
)

func semantic(args []string) error {
	fs := flag.NewFlagSet("semantic", flag.ExitOnError)
	sentence := fs.String("sentence", "The Cat Sat", "Sentence to render as a chord")
	seed := fs.Int64("seed", 42, "Seed for resonator phase memories")
	plotOut := fs.String("plot", "", "Write an SVG plot of the activations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen semantic [options]

Render a sentence as a superposed chord over the φ-spaced vocabulary and
let a bank of phase-memory resonators listen for one second.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  lumen semantic --sentence "Dog Ran" --seed 7
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	words := strings.Fields(*sentence)
	report := scenario.Semantic(words, *seed)

	fmt.Printf("sentence: %s\n", strings.Join(report.Sentence, " "))
	fmt.Println("final activations:")
	for _, w := range report.Activity.Words {
		marker := " "
		if report.Activity.Final(w) > scenario.ActivationThreshold {
			marker = "*"
		}
		fmt.Printf("  %s %-6s %.4f\n", marker, w, report.Activity.Final(w))
	}
	fmt.Printf("recognized (> %.2f): %s\n",
		scenario.ActivationThreshold, strings.Join(report.Recognized, " "))
	fmt.Printf("final bank resistance: %.4f\n", report.Resistance)

	if *plotOut != "" {
		v := vocab.StockVocabulary()
		t, _ := v.Chord(words, 1.0, 0.001)
		svg := plotter.PlotActivity(t, report.Activity, scenario.ActivationThreshold, "semantic recognition")
		if err := os.WriteFile(*plotOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "plot written to %s\n", *plotOut)
	}
	return nil
}
