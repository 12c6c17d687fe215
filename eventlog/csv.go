package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"run_id", "scenario", "step", "time", "interaction", "resonance"}

// WriteCSV writes the log with a header row.
func (l *Log) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range l.Records {
		row := []string{
			r.RunID,
			r.Scenario,
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.Time, 'g', -1, 64),
			strconv.FormatFloat(r.Interaction, 'g', -1, 64),
			strconv.FormatFloat(r.Resonance, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the log to a file, creating or truncating it.
func (l *Log) WriteCSVFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()
	if err := l.WriteCSV(f); err != nil {
		return err
	}
	return f.Close()
}

// ParseCSV reads a log previously written by WriteCSV.
func ParseCSV(r io.Reader) (*Log, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(csvHeader))
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("column %d is %q, want %q", i, header[i], col)
		}
	}

	log := &Log{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+1, err)
		}
		line++

		rec := Record{RunID: row[0], Scenario: row[1]}
		if rec.Step, err = strconv.Atoi(row[2]); err != nil {
			return nil, fmt.Errorf("line %d: bad step: %w", line, err)
		}
		if rec.Time, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad time: %w", line, err)
		}
		if rec.Interaction, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad interaction: %w", line, err)
		}
		if rec.Resonance, err = strconv.ParseFloat(row[5], 64); err != nil {
			return nil, fmt.Errorf("line %d: bad resonance: %w", line, err)
		}
		log.Records = append(log.Records, rec)
	}
	return log, nil
}

// ParseCSVFile reads a log from a file.
func ParseCSVFile(filename string) (*Log, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}
