package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentSchemaVersion = 2

// timeLayout is fixed width so created_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteJournal implements Journal using a SQLite database.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens (or creates) the journal database at path.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	j := &SQLiteJournal{db: db, path: path}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return j, nil
}

// Path returns the database file path.
func (j *SQLiteJournal) Path() string {
	return j.path
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// SchemaVersion returns the schema version stored in the database.
func (j *SQLiteJournal) SchemaVersion() (int, error) {
	var version int
	err := j.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (j *SQLiteJournal) migrate() error {
	version, err := j.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if version < 1 {
		if err := j.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := j.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the entries table.
func (j *SQLiteJournal) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			image TEXT NOT NULL,
			category TEXT NOT NULL,
			previous TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_session_id ON entries(session_id);
		CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := j.db.Exec(schema)
	return err
}

// migrateV2 adds resume positions per source directory.
func (j *SQLiteJournal) migrateV2() error {
	migration := `
		CREATE TABLE IF NOT EXISTS positions (
			source_dir TEXT PRIMARY KEY NOT NULL,
			idx INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);
		UPDATE schema_version SET version = 2;
	`
	_, err := j.db.Exec(migration)
	return err
}

// Record appends an entry to the journal.
func (j *SQLiteJournal) Record(e Entry) error {
	var previous *string
	if e.Previous != "" {
		previous = &e.Previous
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := j.db.Exec(`
		INSERT INTO entries (id, session_id, action, image, category, previous, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.SessionID, string(e.Action), e.Image, e.Category, previous, at.UTC().Format(timeLayout))
	return err
}

// Recent returns up to limit entries, newest first.
func (j *SQLiteJournal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, session_id, action, image, category, previous, created_at
		FROM entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action string
		var previous sql.NullString
		var createdAt string

		if err := rows.Scan(&e.ID, &e.SessionID, &action, &e.Image, &e.Category, &previous, &createdAt); err != nil {
			return nil, err
		}

		e.Action = Action(action)
		if previous.Valid {
			e.Previous = previous.String
		}
		e.At, _ = time.Parse(timeLayout, createdAt)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// SavePosition stores the cursor index for a source directory.
func (j *SQLiteJournal) SavePosition(sourceDir string, index int) error {
	_, err := j.db.Exec(`
		INSERT INTO positions (source_dir, idx, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(source_dir) DO UPDATE SET idx = excluded.idx, updated_at = excluded.updated_at
	`, sourceDir, index, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LastPosition returns the stored cursor index for a source directory.
func (j *SQLiteJournal) LastPosition(sourceDir string) (int, bool, error) {
	var idx int
	err := j.db.QueryRow("SELECT idx FROM positions WHERE source_dir = ?", sourceDir).Scan(&idx)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}
