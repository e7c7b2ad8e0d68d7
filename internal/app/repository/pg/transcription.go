package pg

import (
	"database/sql"
	"fmt"

	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/model"
)

const selectColumns = `SELECT id, run_id, file_path, file_name, file_hash, file_size, backend, model, language, audio_duration,
	transcription, last_conversion_time, has_error, error_message
FROM transcriptions`

func (pdb *PostgresDB) RecordToDB(t model.Transcription) error {
	insertSQL := `INSERT INTO transcriptions (run_id, file_path, file_name, file_hash, file_size, backend, model, language, audio_duration, transcription, last_conversion_time, has_error, error_message) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := pdb.db.Exec(insertSQL, t.RunID, t.FilePath, t.FileName, t.FileHash, t.FileSize, t.Backend, t.Model, t.Language,
		t.AudioDuration, t.Transcription, t.LastConversionTime, t.HasError, t.ErrorMessage)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInsertFailed, err)
	}
	return nil
}

func (pdb *PostgresDB) GetAll() ([]model.Transcription, error) {
	rows, err := pdb.db.Query(selectColumns + ` ORDER BY last_conversion_time DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}
	return scanTranscriptions(rows)
}

func (pdb *PostgresDB) GetByRunID(runID string) ([]model.Transcription, error) {
	rows, err := pdb.db.Query(selectColumns+` WHERE run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQueryFailed, err)
	}
	return scanTranscriptions(rows)
}

func scanTranscriptions(rows *sql.Rows) ([]model.Transcription, error) {
	defer rows.Close()

	var transcriptions []model.Transcription
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
		return nil, apperrors.Wrap(err, "rows iteration failed")
	}
	return transcriptions, nil
}
