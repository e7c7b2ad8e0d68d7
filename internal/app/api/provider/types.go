package provider

import (
	"time"
)

// ProviderType defines the type of transcription provider
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// TranscriptionRequest represents a transcription request with all possible options
type TranscriptionRequest struct {
	InputFilePath string `json:"input_file_path"`

	// Language is an ISO 639-1 code such as "pl" or "en". Empty means auto-detect.
	Language string `json:"language,omitempty"`
	// Model is a provider-specific model identifier; empty uses the provider's configured model.
	Model string `json:"model,omitempty"`

	Temperature float32 `json:"temperature,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
}

// TranscriptionResponse represents the response from a transcription provider
type TranscriptionResponse struct {
	Text     string        `json:"text"`
	Language string        `json:"language,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	ProviderMetadata map[string]interface{} `json:"provider_metadata,omitempty"`

	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	ModelUsed      string        `json:"model_used,omitempty"`
}

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        ProviderType `json:"type"`

	RequiresInternet bool `json:"requires_internet"`
	RequiresAPIKey   bool `json:"requires_api_key"`
	RequiresBinary   bool `json:"requires_binary"`

	DefaultModel    string   `json:"default_model,omitempty"`
	AvailableModels []string `json:"available_models,omitempty"`
}

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Cause     error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return e.Provider + ": " + e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// NewError builds a non-retryable TranscriptionError.
func NewError(providerName, code, message string, cause error) *TranscriptionError {
	return &TranscriptionError{
		Code:     code,
		Message:  message,
		Provider: providerName,
		Cause:    cause,
	}
}
