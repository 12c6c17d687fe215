package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/lumen-phi/go-resonance/scenario"
	"github.com/lumen-phi/go-resonance/simulate"
)

func xor(args []string) error {
	fs := flag.NewFlagSet("xor", flag.ExitOnError)
	dbPath := fs.String("db", "", "Archive each case in this SQLite database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen xor [options]

Run the four-case frequency comparison: pairs at different frequencies
carry a beat and must classify resonant; pairs at the same frequency
carry none and must classify quiet. The truth table is XOR over
"inputs differ".

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	report := scenario.XOR()

	fmt.Println("xor frequency test:")
	for _, c := range report.Cases {
		status := "PASS"
		if !c.Pass() {
			status = "FAIL"
		}
		verdict := "quiet"
		if c.Verdict.Resonant {
			verdict = "RESONANT"
		}
		fmt.Printf("  (%s): mean %.4f -> %-9s %s\n", c.Name, c.Verdict.Mean, verdict, status)
	}
	if report.Pass() {
		fmt.Println("all cases classified correctly")
	} else {
		fmt.Println("classification FAILED")
	}

	if *dbPath != "" {
		cfg := simulate.DefaultConfig()
		cfg.Steps = 500
		runID := uuid.New().String()
		verdicts := make(map[string]archived, len(report.Cases))
		for _, c := range report.Cases {
			verdicts[c.Name] = archived{c.Verdict, c.Want}
		}
		if err := archiveRun(*dbPath, runID, "xor", 0, cfg, nil, verdicts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run %s archived in %s\n", runID, *dbPath)
	}

	if !report.Pass() {
		return fmt.Errorf("xor truth table not reproduced")
	}
	return nil
}
