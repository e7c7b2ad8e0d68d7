package repository

import (
	"audio-transcriber/internal/app/model"
)

// TranscriptionDAO persists the history of transcription runs.
type TranscriptionDAO interface {
	Close() error

	RecordToDB(t model.Transcription) error

	GetAll() ([]model.Transcription, error)

	GetByRunID(runID string) ([]model.Transcription, error)
}
