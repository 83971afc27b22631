// Package sqlite stores detection results in a SQLite database through
// modernc.org/sqlite. Importing it registers the "sqlite" store driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/store"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

const schema = `CREATE TABLE IF NOT EXISTS target_decisions (
	job_id          TEXT PRIMARY KEY,
	dataset_hash    TEXT NOT NULL,
	decision_mode   TEXT NOT NULL,
	selected_target TEXT,
	confidence      REAL NOT NULL,
	decision_json   TEXT NOT NULL,
	summary_json    TEXT NOT NULL
)`

// Record is one row of target_decisions without the JSON payloads.
type Record struct {
	JobID          string
	DatasetHash    string
	DecisionMode   target.DecisionMode
	SelectedTarget *string
	Confidence     float64
}

// Store implements store.Store on a single table keyed by job id. Saving an
// existing job id replaces the row.
type Store struct {
	db *sql.DB
}

func init() {
	store.Register("sqlite", func(ctx context.Context, cfg store.Config) (store.Store, error) {
		return Open(ctx, cfg.Location)
	})
}

// Open connects to dsn and creates the table if it does not exist.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to connect to sqlite")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create target_decisions")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save upserts the result of a job.
func (s *Store) Save(ctx context.Context, res target.Result) error {
	d := res.Decision
	if err := store.ValidateJobID(d.JobID); err != nil {
		return err
	}
	decisionJSON, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "failed to encode decision")
	}
	summaryJSON, err := json.Marshal(res.Summary)
	if err != nil {
		return errors.Wrap(err, "failed to encode summary")
	}

	var selected sql.NullString
	if d.SelectedTarget != nil {
		selected = sql.NullString{String: *d.SelectedTarget, Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO target_decisions
			(job_id, dataset_hash, decision_mode, selected_target, confidence, decision_json, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.JobID, res.Summary.DatasetHash, string(d.DecisionMode), selected, d.Confidence,
		string(decisionJSON), string(summaryJSON),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to save job %s", d.JobID)
	}
	return nil
}

// Load returns the stored result of jobID or store.ErrNotFound.
func (s *Store) Load(ctx context.Context, jobID string) (target.Result, error) {
	var decisionJSON, summaryJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT decision_json, summary_json FROM target_decisions WHERE job_id = ?`, jobID,
	).Scan(&decisionJSON, &summaryJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return target.Result{}, errors.Wrapf(store.ErrNotFound, "job %s", jobID)
	}
	if err != nil {
		return target.Result{}, errors.Wrapf(err, "failed to load job %s", jobID)
	}

	var res target.Result
	if err := json.Unmarshal([]byte(decisionJSON), &res.Decision); err != nil {
		return target.Result{}, errors.Wrap(err, "failed to decode decision")
	}
	if err := json.Unmarshal([]byte(summaryJSON), &res.Summary); err != nil {
		return target.Result{}, errors.Wrap(err, "failed to decode summary")
	}
	return res, nil
}

// List returns the stored jobs ordered by job id.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, dataset_hash, decision_mode, selected_target, confidence
		 FROM target_decisions ORDER BY job_id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r        Record
			mode     string
			selected sql.NullString
		)
		if err := rows.Scan(&r.JobID, &r.DatasetHash, &mode, &selected, &r.Confidence); err != nil {
			return nil, errors.Wrap(err, "failed to scan job")
		}
		r.DecisionMode = target.DecisionMode(mode)
		if selected.Valid {
			r.SelectedTarget = &selected.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ store.Store = (*Store)(nil)
