//go:build wireinject
// +build wireinject

package app

import (
	"audio-transcriber/internal/app/converter"
	"audio-transcriber/internal/app/repository"
	"audio-transcriber/internal/config"
	"github.com/google/wire"
)

// InitializeConverter builds a converter for the resolved backend. The backend's
// dependency check runs here, before any file is collected.
func InitializeConverter(opts config.Options, out Output) (*converter.Converter, func(), error) {
	wire.Build(
		converter.NewConverter,
		provideLogger,
		provideProvidersConfig,
		provideBackendName,
		provideTranscriber,
		provideTranscriptionDAO,
		provideMetrics,
		provideConverterConfig,
	)
	return &converter.Converter{}, nil, nil
}

// InitializeTranscriptionDAO opens the history database named by opts.HistoryPath.
func InitializeTranscriptionDAO(opts config.Options) (repository.TranscriptionDAO, error) {
	wire.Build(provideTranscriptionDAO)
	return nil, nil
}
