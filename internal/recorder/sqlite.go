package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ryanlwk/marksix-analysisv1/internal/model"
)

// SQLiteRecorder archives draws and update runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			date           TEXT PRIMARY KEY,
			n1             INTEGER NOT NULL,
			n2             INTEGER NOT NULL,
			n3             INTEGER NOT NULL,
			n4             INTEGER NOT NULL,
			n5             INTEGER NOT NULL,
			n6             INTEGER NOT NULL,
			special_number INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS update_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			source        TEXT,
			rows_fetched  INTEGER,
			rows_added    INTEGER,
			force_refresh INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON update_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordUpdate(run *UpdateRun) error {
	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	force := 0
	if run.ForceRefresh {
		force = 1
	}
	_, err := r.db.Exec(`INSERT INTO update_runs
		(timestamp, source, rows_fetched, rows_added, force_refresh)
		VALUES (?,?,?,?,?)`,
		ts.Unix(), run.Source, run.RowsFetched, run.RowsAdded, force,
	)
	return err
}

func (r *SQLiteRecorder) RecordDraws(draws []model.Draw) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO draws
		(date, n1, n2, n3, n4, n5, n6, special_number)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			n1=excluded.n1, n2=excluded.n2, n3=excluded.n3,
			n4=excluded.n4, n5=excluded.n5, n6=excluded.n6,
			special_number=excluded.special_number`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, d := range draws {
		var special interface{}
		if d.Special != 0 {
			special = d.Special
		}
		if _, err := stmt.Exec(d.DateKey(),
			d.Numbers[0], d.Numbers[1], d.Numbers[2],
			d.Numbers[3], d.Numbers[4], d.Numbers[5], special); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
