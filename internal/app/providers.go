package app

import (
	"io"

	"audio-transcriber/internal/app/api"
	"audio-transcriber/internal/app/api/provider"
	"audio-transcriber/internal/app/common"
	"audio-transcriber/internal/app/converter"
	"audio-transcriber/internal/app/metrics"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/app/repository/pg"
	"audio-transcriber/internal/app/repository/sqlite"
	"audio-transcriber/internal/config"
	"go.uber.org/zap"

	// backends register themselves with the provider registry
	_ "audio-transcriber/internal/app/api/openai/whisper"
	_ "audio-transcriber/internal/app/api/whisper_cpp"
	_ "audio-transcriber/internal/app/api/whisper_server"
)

// Output carries the writers the run prints to.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
}

// BackendName is the resolved registry name of the transcription backend.
type BackendName string

// provideLogger logs to the run's stderr so log lines and messages share one stream.
func provideLogger(opts config.Options, out Output) (*zap.Logger, func()) {
	logger := common.NewLogger(opts.Verbose, out.Stderr)
	return logger, func() { _ = logger.Sync() }
}

// provideProvidersConfig loads the optional YAML backend file; nil when none is given.
func provideProvidersConfig(opts config.Options) (*config.ProvidersConfig, error) {
	if opts.ConfigPath == "" {
		return nil, nil
	}
	return config.LoadProvidersConfig(opts.ConfigPath)
}

func provideBackendName(opts config.Options, file *config.ProvidersConfig) (BackendName, error) {
	backend, err := config.ResolveBackend(opts, file)
	return BackendName(backend), err
}

// provideTranscriber creates the backend and fails when its external dependency is missing.
func provideTranscriber(backend BackendName, opts config.Options, file *config.ProvidersConfig, logger *zap.Logger) (api.Transcriber, error) {
	settings := config.BackendSettings(string(backend), opts, file)
	settings[provider.SettingLogger] = logger

	p, err := provider.CreateProvider(string(backend), settings)
	if err != nil {
		return nil, err
	}
	if err := p.CheckDependencies(); err != nil {
		return nil, err
	}

	info := p.GetProviderInfo()
	logger.Debug("backend ready",
		zap.String("backend", info.Name),
		zap.String("type", string(info.Type)),
		zap.String("model", opts.Model),
		zap.String("language", opts.Language))
	return p, nil
}

// provideTranscriptionDAO opens the history database; nil when history is off.
// A postgres:// URL selects PostgreSQL, anything else is a sqlite file.
func provideTranscriptionDAO(opts config.Options) (repository.TranscriptionDAO, error) {
	if opts.HistoryPath == "" {
		return nil, nil
	}
	if pg.IsConnectionString(opts.HistoryPath) {
		db, err := pg.NewPostgresDB(opts.HistoryPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	db, err := sqlite.NewSQLiteDB(opts.HistoryPath)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func provideMetrics(opts config.Options, backend BackendName) *metrics.Recorder {
	if opts.MetricsPath == "" {
		return nil
	}
	return metrics.NewRecorder(opts.MetricsPath, string(backend), opts.Model)
}

func provideConverterConfig(opts config.Options, backend BackendName, out Output, recorder *metrics.Recorder) converter.Config {
	return converter.Config{
		Stdout:       out.Stdout,
		Stderr:       out.Stderr,
		ShowProgress: converter.ShouldShowProgress(opts.Progress, out.Stderr),
		Backend:      string(backend),
		Model:        opts.Model,
		Language:     opts.Language,
		Metrics:      recorder,
	}
}
