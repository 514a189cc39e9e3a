package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	dataDirName = ".mdtoc"
	dbFileName  = "history.sqlite"
)

// dbExecer is satisfied by both *sql.DB and *sql.Tx.
type dbExecer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func dbPath(root string) string {
	return filepath.Join(root, dataDirName, dbFileName)
}

func ensureDataDir(root string) (string, error) {
	dir := filepath.Join(root, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func initSchema(db dbExecer) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lift_runs (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			source     TEXT NOT NULL,
			title      TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lift_runs_created ON lift_runs(created_at);`,
		`CREATE TABLE IF NOT EXISTS lift_steps (
			run_id   TEXT NOT NULL,
			seq      INTEGER NOT NULL,
			document TEXT NOT NULL,
			strategy TEXT NOT NULL,
			indent   TEXT NOT NULL,
			changed  INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq),
			FOREIGN KEY(run_id) REFERENCES lift_runs(id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertRun(db dbExecer, id string, createdAt int64, source, title string) error {
	_, err := db.Exec(
		`INSERT INTO lift_runs (id, created_at, source, title) VALUES (?, ?, ?, ?)`,
		id, createdAt, source, title,
	)
	return err
}

func insertStep(db dbExecer, runID string, seq int, step LiftStep) error {
	changed := 0
	if step.Changed {
		changed = 1
	}
	_, err := db.Exec(
		`INSERT INTO lift_steps (run_id, seq, document, strategy, indent, changed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, seq, step.Document, string(step.Strategy), step.Indent, changed,
	)
	return err
}
