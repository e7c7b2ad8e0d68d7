package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio-transcriber/internal/app/api/provider"
	apperrors "audio-transcriber/internal/app/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const providerName = "openai"

// OpenAIProviderConfig represents configuration specific to OpenAI Whisper provider
type OpenAIProviderConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	APIModel    string  `yaml:"api_model"`
	Language    string  `yaml:"language"`
	Prompt      string  `yaml:"prompt"`
	Temperature float32 `yaml:"temperature"`
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	config OpenAIProviderConfig
	logger *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(config OpenAIProviderConfig, logger *zap.Logger) *RemoteTranscriber {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.APIModel == "" {
		config.APIModel = openai.Whisper1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RemoteTranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logger.With(zap.String("provider", providerName)),
	}
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	resp, err := rt.TranscriptWithOptions(ctx, &provider.TranscriptionRequest{InputFilePath: inputFilePath})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscriptWithOptions uploads the file to the transcription endpoint.
func (rt *RemoteTranscriber) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if request.InputFilePath == "" {
		return nil, provider.NewError(providerName, "invalid_input", "input file path is required", nil)
	}

	file, err := os.Open(request.InputFilePath)
	if err != nil {
		return nil, provider.NewError(providerName, "file_not_found",
			fmt.Sprintf("input file not found: %s", request.InputFilePath), err)
	}
	defer file.Close()

	audioRequest := openai.AudioRequest{
		Model:       rt.getModel(request),
		FilePath:    uploadName(request.InputFilePath),
		Reader:      file,
		Prompt:      rt.getPrompt(request),
		Temperature: rt.getTemperature(request),
		Language:    rt.getLanguage(request),
		Format:      openai.AudioResponseFormatJSON,
	}

	rt.logger.Debug("uploading audio",
		zap.String("file", request.InputFilePath),
		zap.String("model", audioRequest.Model))

	resp, err := rt.client.CreateTranscription(ctx, audioRequest)
	if err != nil {
		return nil, rt.handleAPIError(err)
	}

	return &provider.TranscriptionResponse{
		Text:           strings.TrimSpace(resp.Text),
		Language:       resp.Language,
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      audioRequest.Model,
	}, nil
}

// uploadName is the file name sent to the API, which infers the container from it.
// ".oga" is Ogg audio but is not in the accepted extension list.
func uploadName(path string) string {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), ".oga") {
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".ogg"
	}
	return base
}

func (rt *RemoteTranscriber) getModel(request *provider.TranscriptionRequest) string {
	if request.Model != "" {
		return request.Model
	}
	return rt.config.APIModel
}

func (rt *RemoteTranscriber) getLanguage(request *provider.TranscriptionRequest) string {
	if request.Language != "" {
		return request.Language
	}
	return rt.config.Language
}

func (rt *RemoteTranscriber) getPrompt(request *provider.TranscriptionRequest) string {
	if request.Prompt != "" {
		return request.Prompt
	}
	return rt.config.Prompt
}

func (rt *RemoteTranscriber) getTemperature(request *provider.TranscriptionRequest) float32 {
	if request.Temperature != 0 {
		return request.Temperature
	}
	return rt.config.Temperature
}

// handleAPIError maps API failures onto TranscriptionError, marking rate limits and server errors retryable.
func (rt *RemoteTranscriber) handleAPIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	tErr := provider.NewError(providerName, "api_error", fmt.Sprintf("createTranscription failed: %v", err), err)

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		tErr.Code = fmt.Sprintf("http_%d", apiErr.HTTPStatusCode)
		tErr.Retryable = apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	case errors.As(err, &reqErr):
		tErr.Code = fmt.Sprintf("http_%d", reqErr.HTTPStatusCode)
		tErr.Retryable = reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	return tErr
}

// GetProviderInfo returns metadata about the OpenAI provider
func (rt *RemoteTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             providerName,
		DisplayName:      "OpenAI Whisper API",
		Type:             provider.ProviderTypeRemote,
		RequiresInternet: true,
		RequiresAPIKey:   true,
		DefaultModel:     openai.Whisper1,
		AvailableModels:  []string{openai.Whisper1, "gpt-4o-transcribe", "gpt-4o-mini-transcribe"},
	}
}

// CheckDependencies requires an API key.
func (rt *RemoteTranscriber) CheckDependencies() error {
	if strings.TrimSpace(rt.config.APIKey) == "" {
		return apperrors.MissingDependency("OpenAI API key is not set", "set OPENAI_API_KEY")
	}
	return nil
}
