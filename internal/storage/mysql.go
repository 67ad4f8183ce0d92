package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ttp/internal/domain"
)

const (
	insertRun = "INSERT INTO translation_runs " +
		"(source, driver, total_cases, passed_cases, failed_cases, inconclusive_cases, duration_seconds, fingerprint, started_at) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	insertFailure = "INSERT INTO translation_failures " +
		"(run_id, case_id, name, category, outcome, input, reference, observed, message, cycles) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	selectLastRun = "SELECT id, source, driver, total_cases, passed_cases, failed_cases, inconclusive_cases, duration_seconds, fingerprint, started_at " +
		"FROM translation_runs ORDER BY id DESC LIMIT 1"
	selectFailures = "SELECT case_id, name, category, outcome, input, reference, observed, message, cycles " +
		"FROM translation_failures WHERE run_id = ? ORDER BY id"
)

// MySQLStorage records runs in the tables created by the migrate command.
type MySQLStorage struct {
	db      *sql.DB
	timeout time.Duration
}

// NewMySQLStorage returns a Storage over db
func NewMySQLStorage(db *sql.DB) *MySQLStorage {
	return &MySQLStorage{db: db, timeout: 30 * time.Second}
}

// Save inserts the run row and its failure rows in one transaction.
func (s *MySQLStorage) Save(output *domain.RunOutput) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	startedAt, err := time.Parse(time.RFC3339, output.Meta.Timestamp)
	if err != nil {
		startedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	m := output.Meta
	res, err := tx.ExecContext(ctx, insertRun,
		m.Source, m.Driver, m.TotalCases, m.PassedCases, m.FailedCases, m.InconclusiveCases,
		m.DurationSeconds, m.Fingerprint, startedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, args := range failureRows(runID, output.Details) {
		if _, err := tx.ExecContext(ctx, insertFailure, args...); err != nil {
			return fmt.Errorf("insert failure %v: %w", args[1], err)
		}
	}
	return tx.Commit()
}

// Load reads the most recent run and its failures.
func (s *MySQLStorage) Load() (*domain.RunOutput, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var (
		output    domain.RunOutput
		runID     int64
		startedAt time.Time
	)
	m := &output.Meta
	err := s.db.QueryRowContext(ctx, selectLastRun).Scan(&runID, &m.Source, &m.Driver, &m.TotalCases,
		&m.PassedCases, &m.FailedCases, &m.InconclusiveCases, &m.DurationSeconds, &m.Fingerprint, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no recorded runs")
	}
	if err != nil {
		return nil, fmt.Errorf("query last run: %w", err)
	}
	m.Timestamp = startedAt.Format(time.RFC3339)
	m.Duration = time.Duration(m.DurationSeconds * float64(time.Second)).String()

	rows, err := s.db.QueryContext(ctx, selectFailures, runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	output.Details = []domain.Failure{}
	for rows.Next() {
		var f domain.Failure
		if err := rows.Scan(&f.CaseID, &f.Name, &f.Category, &f.Outcome, &f.Input, &f.Reference, &f.Observed, &f.Message, &f.Cycles); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		output.Details = append(output.Details, f)
	}
	return &output, rows.Err()
}

// failureRows returns the insert arguments for each failure
func failureRows(runID int64, failures []domain.Failure) [][]any {
	rows := make([][]any, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []any{
			runID, f.CaseID, f.Name, string(f.Category), string(f.Outcome),
			f.Input, f.Reference, f.Observed, f.Message, f.Cycles,
		})
	}
	return rows
}
