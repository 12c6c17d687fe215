package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "choir":
		if err := choir(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "xor":
		if err := xor(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "semantic":
		if err := semantic(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "rings":
		if err := rings(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "chip":
		if err := chip(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sweep":
		if err := sweep(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("lumen version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lumen - golden-ratio resonance simulation tool

Usage:
  lumen <command> [options]

Commands:
  choir      Run the three-oscillator heterodyne demo
  xor        Run the four-case frequency comparison test
  semantic   Feed a sentence through the resonator bank
  rings      Compare ring resonator designs
  chip       Generate the photonic chip layout (GDSII)
  sweep      Sweep coupling strength and listener frequency
  history    Inspect archived runs
  help       Show this help message
  version    Show version information

Examples:
  # Run the choir demo and plot the result
  lumen choir --plot choir.svg

  # Run the XOR test and archive it
  lumen xor --db runs.db

  # Recognize a sentence
  lumen semantic --sentence "The Cat Sat" --seed 42

  # Write the chip layout
  lumen chip --output lumen_phi_core.gds

For command-specific help, run:
  lumen <command> --help`)
}
