package sqlite

import (
	"database/sql"
	"fmt"

	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
)

const selectColumns = `SELECT id, run_id, file_path, file_name, file_hash, file_size, backend, model, language, audio_duration,
	transcription, last_conversion_time, has_error, error_message
FROM transcriptions`

func (sdb *SQLiteDB) RecordToDB(t model.Transcription) error {
	insertSQL := `INSERT INTO transcriptions (run_id, file_path, file_name, file_hash, file_size, backend, model, language, audio_duration, transcription, last_conversion_time, has_error, error_message) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL, t.RunID, t.FilePath, t.FileName, t.FileHash, t.FileSize, t.Backend, t.Model, t.Language,
		t.AudioDuration, t.Transcription, t.LastConversionTime, t.HasError, t.ErrorMessage)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInsertFailed, err)
	}
	return nil
}

// GetAll returns every row, newest first.
func (sdb *SQLiteDB) GetAll() ([]model.Transcription, error) {
	rows, err := sdb.db.Query(selectColumns + ` ORDER BY last_conversion_time DESC, id DESC;`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}
	return scanTranscriptions(rows)
}

// GetByRunID returns the rows of one run in insertion order.
func (sdb *SQLiteDB) GetByRunID(runID string) ([]model.Transcription, error) {
	rows, err := sdb.db.Query(selectColumns+` WHERE run_id = ? ORDER BY id;`, runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}
	return scanTranscriptions(rows)
}

func scanTranscriptions(rows *sql.Rows) ([]model.Transcription, error) {
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)
	for rows.Next() {
		var t model.Transcription
		err := rows.Scan(&t.ID, &t.RunID, &t.FilePath, &t.FileName, &t.FileHash, &t.FileSize, &t.Backend, &t.Model, &t.Language,
			&t.AudioDuration, &t.Transcription, &t.LastConversionTime, &t.HasError, &t.ErrorMessage)
		if err != nil {
			return nil, apperrors.Wrap(err, "db scan failed")
		}
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}
	return transcriptions, nil
}
