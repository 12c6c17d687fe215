package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/lumen-phi/go-resonance/eventlog"
	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/plotter"
	"github.com/lumen-phi/go-resonance/scenario"
	"github.com/lumen-phi/go-resonance/simulate"
	"github.com/lumen-phi/go-resonance/storage"
)

func choir(args []string) error {
	fs := flag.NewFlagSet("choir", flag.ExitOnError)
	fa := fs.Float64("fa", 5.0, "First input frequency (Hz)")
	fb := fs.Float64("fb", 8.0, "Second input frequency (Hz)")
	fl := fs.Float64("listener", 3.0, "Listener frequency (Hz)")
	k := fs.Float64("k", 1.5, "Coupling strength")
	dt := fs.Float64("dt", 0.01, "Time increment per step (s)")
	steps := fs.Int("steps", 1000, "Step count")
	threshold := fs.Float64("threshold", scenario.RecognitionThreshold, "Recognition threshold")
	plotOut := fs.String("plot", "", "Write an SVG plot of the run")
	logOut := fs.String("log", "", "Write the run as JSONL")
	dbPath := fs.String("db", "", "Archive the run in this SQLite database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: lumen choir [options]

Run the three-oscillator heterodyne demo: two inputs whose product carries
a beat at their difference frequency, and a listener tuned to that beat.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Stock demo: 5 Hz + 8 Hz inputs, 3 Hz listener
  lumen choir

  # Custom trio with a plot
  lumen choir --fa 13 --fb 21 --listener 8 --plot choir.svg
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := simulate.Config{K: *k, Dt: *dt, Steps: *steps}
	loop := &simulate.Loop{
		Inputs: []simulate.Osc{
			{Name: "soprano", Frequency: *fa},
			{Name: "alto", Frequency: *fb},
		},
		Listeners: []simulate.Osc{{Name: "bass", Frequency: *fl}},
		Config:    cfg,
	}

	res := loop.Run()
	v := metric.Evaluate(res.Resonances(), metric.DefaultSettleFraction, *threshold)

	fmt.Printf("choir: %.1f Hz + %.1f Hz -> listener %.1f Hz\n", *fa, *fb, *fl)
	fmt.Printf("  settled mean: %.4f (threshold %.2f)\n", v.Mean, v.Threshold)
	fmt.Printf("  peak:         %.4f\n", v.Peak)
	if v.Resonant {
		fmt.Println("  verdict:      RESONANT")
	} else {
		fmt.Println("  verdict:      non-resonant")
	}

	runID := uuid.New().String()
	if *plotOut != "" {
		svg := plotter.PlotRun(res, *threshold, "choir")
		if err := os.WriteFile(*plotOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write plot: %w", err)
		}
		fmt.Fprintf(os.Stderr, "plot written to %s\n", *plotOut)
	}
	if *logOut != "" {
		log := eventlog.FromResult(runID, "choir", res)
		if err := log.WriteJSONLFile(*logOut); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
		fmt.Fprintf(os.Stderr, "log written to %s\n", *logOut)
	}
	if *dbPath != "" {
		if err := archiveRun(*dbPath, runID, "choir", 0, cfg, res, map[string]archived{
			fmt.Sprintf("%.1f,%.1f", *fa, *fb): {v, true},
		}); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run %s archived in %s\n", runID, *dbPath)
	}
	return nil
}

type archived struct {
	verdict  metric.Verdict
	expected bool
}

func archiveRun(dbPath, runID, name string, seed int64, cfg simulate.Config, res *simulate.Result, verdicts map[string]archived) error {
	store, err := storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	if err := store.CreateRun(runID, name, seed, cfg); err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	if res != nil {
		if err := store.SaveSteps(runID, res); err != nil {
			return fmt.Errorf("save steps: %w", err)
		}
	}
	for caseName, a := range verdicts {
		if err := store.SaveVerdict(runID, caseName, a.verdict, a.expected); err != nil {
			return fmt.Errorf("save verdict %s: %w", caseName, err)
		}
	}
	return nil
}
