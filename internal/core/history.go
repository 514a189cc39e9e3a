package core

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LiftRecord is one recorded lift run.
type LiftRecord struct {
	ID        string     `json:"id" yaml:"id"`
	CreatedAt int64      `json:"created_at" yaml:"created_at"`
	Source    string     `json:"source" yaml:"source"`
	Title     string     `json:"title" yaml:"title"`
	Steps     []LiftStep `json:"steps" yaml:"steps"`
}

// RecordLift stores res in the history database under res.Root and returns
// the run ID. Dry runs are not recorded.
func RecordLift(res *LiftResult, now time.Time) (string, error) {
	if res.DryRun {
		return "", nil
	}
	if _, err := ensureDataDir(res.Root); err != nil {
		return "", err
	}
	db, err := openDBAt(dbPath(res.Root))
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	if err := insertRun(tx, id, now.Unix(), res.Source, res.Title); err != nil {
		return "", err
	}
	for i, step := range res.Steps {
		if err := insertStep(tx, id, i+1, step); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListLifts returns up to limit recorded runs under root, newest first.
// limit <= 0 means no limit. A root without a history database has no runs.
func ListLifts(root string, limit int) ([]LiftRecord, error) {
	dbp := dbPath(root)
	if !fileExists(dbp) {
		return nil, nil
	}
	db, err := openDBAt(dbp)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := db.Query(
		`SELECT id, created_at, source, title FROM lift_runs
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var records []LiftRecord
	for rows.Next() {
		var r LiftRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Title); err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		steps, err := loadSteps(db, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Steps = steps
	}
	return records, nil
}

func loadSteps(db *sql.DB, runID string) ([]LiftStep, error) {
	rows, err := db.Query(
		`SELECT document, strategy, indent, changed FROM lift_steps
		 WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []LiftStep
	for rows.Next() {
		var s LiftStep
		var strategy string
		var changed int
		if err := rows.Scan(&s.Document, &strategy, &s.Indent, &changed); err != nil {
			return nil, err
		}
		s.Strategy = Strategy(strategy)
		s.Changed = changed != 0
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
