package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumen-phi/go-resonance/storage"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", "runs.db", "SQLite run archive")
	limit := fs.Int("limit", 10, "Number of recent runs to list")
	export := fs.String("export", "", "Export one run (by ID) as JSON to stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen history [options]

Inspect the run archive: list recent runs with their verdicts, or export
a single run as JSON.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	if *export != "" {
		data, err := store.ExportRunJSON(*export)
		if err != nil {
			return fmt.Errorf("export run: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	runs, err := store.RecentRuns(*limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-10s k=%.2f dt=%.3f steps=%d  %s\n",
			run.ID, run.Scenario, run.K, run.Dt, run.Steps,
			run.StartedAt.Format("2006-01-02 15:04:05"))

		verdicts, err := store.GetVerdicts(run.ID)
		if err != nil {
			return fmt.Errorf("verdicts for %s: %w", run.ID, err)
		}
		for _, v := range verdicts {
			status := "quiet"
			if v.Resonant {
				status = "RESONANT"
			}
			match := ""
			if v.Resonant != v.Expected {
				match = "  (unexpected)"
			}
			fmt.Printf("    %-10s mean %.4f  %s%s\n", v.Case, v.Mean, status, match)
		}
	}
	return nil
}
