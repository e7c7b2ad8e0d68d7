package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/audio"
	"audio-transcriber/internal/app/converter/export"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/metrics"
	"audio-transcriber/internal/app/model"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/app/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config controls console output and the metadata recorded with each result.
type Config struct {
	Stdout       io.Writer
	Stderr       io.Writer
	ShowProgress bool

	Backend  string
	Model    string
	Language string

	// Metrics is nil unless --metrics was given.
	Metrics *metrics.Recorder
}

type Converter struct {
	transcriber api.Transcriber
	db          repository.TranscriptionDAO
	logger      *zap.Logger
	config      Config

	// replaced in tests
	duration    func(ctx context.Context, path string) (float64, error)
	fingerprint func(path string) (string, int64, error)
	newRunID    func() string
}

// NewConverter wires a converter; db may be nil when no history is kept.
func NewConverter(transcriber api.Transcriber, transcriptionDAO repository.TranscriptionDAO, logger *zap.Logger, config Config) *Converter {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		transcriber: transcriber,
		db:          transcriptionDAO,
		logger:      logger,
		config:      config,
		duration:    audio.GetAudioDuration,
		fingerprint: utils.FileFingerprint,
		newRunID:    uuid.NewString,
	}
}

func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Do transcribes files one at a time in the given order, printing each transcript
// as it completes. The first failure stops the run; results gathered so far are returned with it.
func (c *Converter) Do(ctx context.Context, files []string) ([]model.TranscriptResult, error) {
	runID := c.newRunID()
	logger := c.logger.With(zap.String("run_id", runID))
	logger.Debug("starting run", zap.Int("files", len(files)), zap.String("backend", c.config.Backend))

	progress := NewProgressManager(ProgressConfig{Enabled: c.config.ShowProgress, Writer: c.config.Stderr})
	bar := progress.CreateBar(len(files), "Transcribing")
	defer func() {
		bar.Complete()
		progress.Wait()
		if err := c.config.Metrics.Flush(); err != nil {
			logger.Warn("failed to write metrics", zap.Error(err))
		}
	}()

	results := make([]model.TranscriptResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := filepath.Base(path)
		fmt.Fprintf(c.config.Stdout, "Transcribing: %s ...\n", name)

		startTime := time.Now()
		text, err := c.transcriber.Transcript(ctx, path)
		text = strings.TrimSpace(text)
		c.config.Metrics.ObserveFile(err, time.Since(startTime))
		c.record(ctx, logger, runID, path, text, err)
		if err != nil {
			logger.Debug("transcription failed", zap.String("file", path), zap.Error(err))
			return results, apperrors.Wrapf(err, "transcribe %s", name)
		}
		logger.Debug("transcribed", zap.String("file", path), zap.Duration("elapsed", time.Since(startTime)))

		fmt.Fprint(c.config.Stdout, export.FormatBlock(name, text))
		results = append(results, model.TranscriptResult{Name: name, Path: path, Text: text})
		bar.Increment()
	}
	return results, nil
}

// record stores one history row and feeds the audio length to metrics.
// Failures are logged and never abort the run.
func (c *Converter) record(ctx context.Context, logger *zap.Logger, runID, path, text string, transcribeErr error) {
	if c.db == nil && c.config.Metrics == nil {
		return
	}

	duration, err := c.duration(ctx, path)
	if err != nil {
		logger.Debug("could not probe duration", zap.String("file", path), zap.Error(err))
	}
	if transcribeErr == nil {
		c.config.Metrics.AddAudio(duration)
	}
	if c.db == nil {
		return
	}

	row := model.Transcription{
		RunID:              runID,
		FilePath:           path,
		FileName:           filepath.Base(path),
		Backend:            c.config.Backend,
		Model:              c.config.Model,
		Language:           c.config.Language,
		AudioDuration:      duration,
		Transcription:      text,
		LastConversionTime: time.Now(),
	}
	if transcribeErr != nil {
		row.HasError = 1
		row.ErrorMessage = transcribeErr.Error()
	}

	if hash, size, err := c.fingerprint(path); err != nil {
		logger.Debug("could not hash file", zap.String("file", path), zap.Error(err))
	} else {
		row.FileHash, row.FileSize = hash, size
	}

	if err := c.db.RecordToDB(row); err != nil {
		logger.Warn("failed to record transcription", zap.String("file", path), zap.Error(err))
	}
}
