package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// Repository handles run history persistence
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRun inserts run
func (r *Repository) SaveRun(ctx context.Context, run *Run) error {
	inputs, err := json.Marshal(run.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	report, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	stmt, err := r.db.GetPreparedStatement(stmtInsertRun)
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		run.ID, run.Source, nullable(run.Preset), string(inputs), string(report),
		run.MajorityDecision, run.PublicMostLikely, run.PublicScore, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun loads a run by ID. Malformed IDs are reported as not found.
func (r *Repository) GetRun(ctx context.Context, id string) (*Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}

	stmt, err := r.db.GetPreparedStatement(stmtGetRun)
	if err != nil {
		return nil, err
	}

	run, err := scanRun(stmt.QueryRowContext(ctx, id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	return run, nil
}

// ListRuns returns the newest runs first, at most limit of them
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	stmt, err := r.db.GetPreparedStatement(stmtListRuns)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	summaries := make([]RunSummary, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		summaries = append(summaries, run.Summary())
	}

	return summaries, rows.Err()
}

// CountRuns returns the number of stored runs
func (r *Repository) CountRuns(ctx context.Context) (int, error) {
	stmt, err := r.db.GetPreparedStatement(stmtCountRuns)
	if err != nil {
		return 0, err
	}

	var count int
	if err := stmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, withReport bool) (*Run, error) {
	var (
		run       Run
		preset    sql.NullString
		inputs    string
		report    string
		createdAt time.Time
	)

	err := row.Scan(
		&run.ID, &run.Source, &preset, &inputs, &report,
		&run.MajorityDecision, &run.PublicMostLikely, &run.PublicScore, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	run.Preset = preset.String
	run.CreatedAt = createdAt.UTC()

	if err := json.Unmarshal([]byte(inputs), &run.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs: %w", err)
	}
	if withReport {
		if err := json.Unmarshal([]byte(report), &run.Report); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
	}

	return &run, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
