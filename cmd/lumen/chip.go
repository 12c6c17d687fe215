package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumen-phi/go-resonance/layout"
)

func chip(args []string) error {
	fs := flag.NewFlagSet("chip", flag.ExitOnError)
	output := fs.String("output", "lumen_phi_core.gds", "Output GDSII file")
	summaryOnly := fs.Bool("summary", false, "Print the layout summary without writing a file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen chip [options]

Generate the photonic chip layout: a 2 mm bus spine, seven φ-scaled ring
resonators, and a golden-ratio Y-splitter, written as a GDSII stream.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	c := layout.PhiChip()
	fmt.Print(c.Summary())

	if *summaryOnly {
		return nil
	}
	if err := c.WriteGDSFile(*output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	fmt.Fprintf(os.Stderr, "layout written to %s\n", *output)
	return nil
}
