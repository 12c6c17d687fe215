// Package storage provides a SQLite archive of simulation runs: run
// metadata, per-step series, and the verdicts each run produced.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/simulate"
)

// Store handles SQLite database operations for the run archive.
type Store struct {
	db *sql.DB
}

// Run is one archived simulation run.
type Run struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Seed      int64     `json:"seed"`
	K         float64   `json:"k"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	StartedAt time.Time `json:"started_at"`
}

// Verdict is one archived classification belonging to a run.
type Verdict struct {
	RunID     string  `json:"run_id"`
	Case      string  `json:"case"`
	Mean      float64 `json:"mean"`
	Peak      float64 `json:"peak"`
	Threshold float64 `json:"threshold"`
	Resonant  bool    `json:"resonant"`
	Expected  bool    `json:"expected"`
}

// StepRow is one archived simulation step.
type StepRow struct {
	RunID       string  `json:"run_id"`
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Interaction float64 `json:"interaction"`
	Resonance   float64 `json:"resonance"`
}

// New opens (or creates) the archive at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL DEFAULT 0,
		k REAL NOT NULL,
		dt REAL NOT NULL,
		steps INTEGER NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		time REAL NOT NULL,
		interaction REAL NOT NULL,
		resonance REAL NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE TABLE IF NOT EXISTS verdicts (
		run_id TEXT NOT NULL,
		case_name TEXT NOT NULL,
		mean REAL NOT NULL,
		peak REAL NOT NULL,
		threshold REAL NOT NULL,
		resonant INTEGER NOT NULL,
		expected INTEGER NOT NULL,
		PRIMARY KEY (run_id, case_name),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_steps_run ON steps(run_id, step);
	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateRun records a new run's metadata.
func (s *Store) CreateRun(id, scenario string, seed int64, cfg simulate.Config) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, scenario, seed, k, dt, steps, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, scenario, seed, cfg.K, cfg.Dt, cfg.Steps, time.Now().UTC(),
	)
	return err
}

// SaveSteps archives every step of a result under the given run ID, in one
// transaction.
func (s *Store) SaveSteps(runID string, res *simulate.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO steps (run_id, step, time, interaction, resonance)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, st := range res.Steps {
		if _, err := stmt.Exec(runID, st.Index, st.Time, st.Interaction, st.Resonance); err != nil {
			tx.Rollback()
			return fmt.Errorf("step %d: %w", st.Index, err)
		}
	}
	return tx.Commit()
}

// SaveVerdict archives one classification for a run.
func (s *Store) SaveVerdict(runID, caseName string, v metric.Verdict, expected bool) error {
	_, err := s.db.Exec(
		`INSERT INTO verdicts (run_id, case_name, mean, peak, threshold, resonant, expected)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, caseName, v.Mean, v.Peak, v.Threshold, v.Resonant, expected,
	)
	return err
}

// GetRun retrieves one run's metadata.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, scenario, seed, k, dt, steps, started_at FROM runs WHERE id = ?`, id)

	var r Run
	if err := row.Scan(&r.ID, &r.Scenario, &r.Seed, &r.K, &r.Dt, &r.Steps, &r.StartedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, scenario, seed, k, dt, steps, started_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Seed, &r.K, &r.Dt, &r.Steps, &r.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// GetVerdicts retrieves a run's classifications.
func (s *Store) GetVerdicts(runID string) ([]*Verdict, error) {
	rows, err := s.db.Query(
		`SELECT run_id, case_name, mean, peak, threshold, resonant, expected
		 FROM verdicts WHERE run_id = ? ORDER BY case_name`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verdicts []*Verdict
	for rows.Next() {
		var v Verdict
		if err := rows.Scan(&v.RunID, &v.Case, &v.Mean, &v.Peak, &v.Threshold,
			&v.Resonant, &v.Expected); err != nil {
			return nil, err
		}
		verdicts = append(verdicts, &v)
	}
	return verdicts, rows.Err()
}

// GetSteps retrieves a run's step series in order.
func (s *Store) GetSteps(runID string) ([]*StepRow, error) {
	rows, err := s.db.Query(
		`SELECT run_id, step, time, interaction, resonance
		 FROM steps WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*StepRow
	for rows.Next() {
		var st StepRow
		if err := rows.Scan(&st.RunID, &st.Step, &st.Time, &st.Interaction, &st.Resonance); err != nil {
			return nil, err
		}
		steps = append(steps, &st)
	}
	return steps, rows.Err()
}

// Resonances retrieves a run's resonance series, which is enough to
// recompute any verdict.
func (s *Store) Resonances(runID string) ([]float64, error) {
	steps, err := s.GetSteps(runID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(steps))
	for i, st := range steps {
		out[i] = st.Resonance
	}
	return out, nil
}

// ExportRunJSON exports a run with its steps and verdicts as indented JSON.
func (s *Store) ExportRunJSON(runID string) ([]byte, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}
	steps, err := s.GetSteps(runID)
	if err != nil {
		return nil, err
	}
	verdicts, err := s.GetVerdicts(runID)
	if err != nil {
		return nil, err
	}

	export := map[string]any{
		"run":      run,
		"steps":    steps,
		"verdicts": verdicts,
	}
	return json.MarshalIndent(export, "", "  ")
}
