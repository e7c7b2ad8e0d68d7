package provider

import (
	"context"
)

// TranscriptionProvider is implemented by every speech-recognition backend.
type TranscriptionProvider interface {
	// Transcript transcribes a file with the provider's configured model and language.
	Transcript(ctx context.Context, inputFilePath string) (string, error)

	// TranscriptWithOptions transcribes with per-request overrides.
	TranscriptWithOptions(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error)

	GetProviderInfo() ProviderInfo

	// CheckDependencies reports a missing binary, model file, credential or endpoint.
	// Returned errors wrap errors.ErrMissingDependency.
	CheckDependencies() error
}
