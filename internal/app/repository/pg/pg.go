package pg

import (
	"database/sql"
	"fmt"
	"strings"

	apperrors "audio-transcriber/internal/app/errors"
	_ "github.com/lib/pq"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id                   SERIAL PRIMARY KEY,
	run_id               TEXT NOT NULL,
	file_path            TEXT NOT NULL,
	file_name            TEXT NOT NULL,
	file_hash            TEXT NOT NULL DEFAULT '',
	file_size            BIGINT NOT NULL DEFAULT 0,
	backend              TEXT NOT NULL,
	model                TEXT NOT NULL,
	language             TEXT NOT NULL DEFAULT '',
	audio_duration       DOUBLE PRECISION NOT NULL DEFAULT 0,
	transcription        TEXT NOT NULL DEFAULT '',
	last_conversion_time TIMESTAMPTZ NOT NULL,
	has_error            INTEGER NOT NULL DEFAULT 0,
	error_message        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_run_id ON transcriptions (run_id);`

type PostgresDB struct {
	db *sql.DB
}

// IsConnectionString reports whether a --history value names a postgres server rather than a file.
func IsConnectionString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabaseConnection, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabaseConnection, err)
	}

	pdb, err := newWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return pdb, nil
}

func newWithDB(db *sql.DB) (*PostgresDB, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("%w: create schema: %v", apperrors.ErrDatabaseConnection, err)
	}
	return &PostgresDB{db: db}, nil
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}
