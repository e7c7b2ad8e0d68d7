package model

import "time"

// Transcription is one row of the transcription history.
type Transcription struct {
	ID                 int
	RunID              string
	FilePath           string
	FileName           string
	FileHash           string
	FileSize           int64
	Backend            string
	Model              string
	Language           string
	AudioDuration      float64
	Transcription      string
	LastConversionTime time.Time
	HasError           int
	ErrorMessage       string
}
