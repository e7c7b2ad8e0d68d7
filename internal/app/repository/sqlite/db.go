package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	apperrors "audio-transcriber/internal/app/errors"
	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id               TEXT NOT NULL,
	file_path            TEXT NOT NULL,
	file_name            TEXT NOT NULL,
	file_hash            TEXT NOT NULL DEFAULT '',
	file_size            INTEGER NOT NULL DEFAULT 0,
	backend              TEXT NOT NULL,
	model                TEXT NOT NULL,
	language             TEXT NOT NULL DEFAULT '',
	audio_duration       REAL NOT NULL DEFAULT 0,
	transcription        TEXT NOT NULL DEFAULT '',
	last_conversion_time DATETIME NOT NULL,
	has_error            INTEGER NOT NULL DEFAULT 0,
	error_message        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_run_id ON transcriptions (run_id);`

// SQLiteDB is the sqlite3 history store.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) the database file and its schema.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if dir := filepath.Dir(dbFilePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create directory %s: %v", apperrors.ErrDatabaseConnection, dir, err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperrors.ErrDatabaseConnection, dbFilePath, err)
	}

	sdb, err := newWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return sdb, nil
}

// newWithDB applies the schema to an already open handle.
func newWithDB(db *sql.DB) (*SQLiteDB, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("%w: create schema: %v", apperrors.ErrDatabaseConnection, err)
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}
