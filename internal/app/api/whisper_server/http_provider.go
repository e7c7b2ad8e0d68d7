package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audio-transcriber/internal/app/api/provider"
	apperrors "audio-transcriber/internal/app/errors"
	"go.uber.org/zap"
)

const providerName = "whisper_server"

// WhisperServerProvider implements transcription via HTTP to a whisper-server instance
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
	logger *zap.Logger
}

// WhisperServerConfig represents configuration for whisper-server HTTP API
type WhisperServerConfig struct {
	BaseURL        string             `yaml:"base_url"`        // e.g. "http://192.168.1.100:8080"
	InferencePath  string             `yaml:"inference_path"`  // default "/inference"
	Timeout        time.Duration      `yaml:"timeout"`         // request timeout
	Tier           provider.ModelTier `yaml:"model"`           // reported only; the server owns its model
	Language       string             `yaml:"language"`        // empty sends "auto"
	ResponseFormat string             `yaml:"response_format"` // json, verbose_json or text
	Temperature    float64            `yaml:"temperature"`
	CustomHeaders  map[string]string  `yaml:"custom_headers"`
}

// WhisperServerResponse represents the response from whisper-server
type WhisperServerResponse struct {
	Text             string  `json:"text,omitempty"`
	Language         string  `json:"language,omitempty"`
	Duration         float64 `json:"duration,omitempty"`
	DetectedLanguage string  `json:"detected_language,omitempty"`
	Error            string  `json:"error,omitempty"`
}

// NewWhisperServerProvider creates a new whisper-server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig, logger *zap.Logger) *WhisperServerProvider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.ResponseFormat == "" {
		config.ResponseFormat = "json"
	}
	if config.Tier == "" {
		config.Tier = provider.DefaultModelTier
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhisperServerProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With(zap.String("provider", providerName)),
	}
}

// Transcript posts the file to the server with the configured options.
func (wsp *WhisperServerProvider) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	response, err := wsp.TranscriptWithOptions(ctx, &provider.TranscriptionRequest{InputFilePath: inputFilePath})
	if err != nil {
		return "", err
	}
	return response.Text, nil
}

// TranscriptWithOptions implements the enhanced transcription interface
func (wsp *WhisperServerProvider) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if request.InputFilePath == "" {
		return nil, provider.NewError(providerName, "invalid_input", "input file path is required", nil)
	}
	if _, err := os.Stat(request.InputFilePath); err != nil {
		return nil, provider.NewError(providerName, "file_not_found",
			fmt.Sprintf("input file not found: %s", request.InputFilePath), err)
	}

	body, contentType, err := wsp.createMultipartForm(request)
	if err != nil {
		return nil, provider.NewError(providerName, "form_creation_failed",
			fmt.Sprintf("failed to create multipart form: %v", err), err)
	}

	endpoint := wsp.config.BaseURL + wsp.config.InferencePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, provider.NewError(providerName, "request_creation_failed",
			fmt.Sprintf("failed to create HTTP request: %v", err), err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	for key, value := range wsp.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}

	wsp.logger.Debug("posting audio", zap.String("url", endpoint), zap.String("file", request.InputFilePath))

	resp, err := wsp.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &provider.TranscriptionError{
			Code:      "request_failed",
			Message:   fmt.Sprintf("HTTP request failed: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "response_read_failed",
			Message:   fmt.Sprintf("failed to read response: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.TranscriptionError{
			Code:      "api_error",
			Message:   fmt.Sprintf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseData))),
			Provider:  providerName,
			Retryable: resp.StatusCode >= 500,
		}
	}

	parsed, err := wsp.parseResponse(responseData)
	if err != nil {
		return nil, provider.NewError(providerName, "response_parse_failed",
			fmt.Sprintf("failed to parse response: %v", err), err)
	}

	language := parsed.Language
	if parsed.DetectedLanguage != "" {
		language = parsed.DetectedLanguage
	}
	if language == "" {
		language = wsp.getLanguage(request)
	}

	return &provider.TranscriptionResponse{
		Text:           strings.TrimSpace(parsed.Text),
		Language:       language,
		Duration:       time.Duration(parsed.Duration * float64(time.Second)),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      string(wsp.config.Tier),
		ProviderMetadata: map[string]interface{}{
			"base_url":        wsp.config.BaseURL,
			"response_format": wsp.config.ResponseFormat,
			"http_status":     resp.StatusCode,
		},
	}, nil
}

// createMultipartForm creates the multipart form for the API request
func (wsp *WhisperServerProvider) createMultipartForm(request *provider.TranscriptionRequest) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(request.InputFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(request.InputFilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %v", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %v", err)
	}

	language := wsp.getLanguage(request)
	if language == "" {
		language = "auto"
	}

	temperature := wsp.config.Temperature
	if request.Temperature != 0 {
		temperature = float64(request.Temperature)
	}

	params := [][2]string{
		{"response_format", wsp.config.ResponseFormat},
		{"temperature", fmt.Sprintf("%.2f", temperature)},
		{"language", language},
	}
	if request.Prompt != "" {
		params = append(params, [2]string{"prompt", request.Prompt})
	}
	for _, kv := range params {
		if err := writer.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %v", kv[0], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType(), nil
}

// parseResponse parses the response based on the response format
func (wsp *WhisperServerProvider) parseResponse(data []byte) (*WhisperServerResponse, error) {
	if wsp.config.ResponseFormat == "text" {
		return &WhisperServerResponse{Text: string(data)}, nil
	}

	var resp WhisperServerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %v", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

func (wsp *WhisperServerProvider) getLanguage(request *provider.TranscriptionRequest) string {
	if request.Language != "" {
		return request.Language
	}
	return wsp.config.Language
}

// GetProviderInfo returns metadata about the whisper-server provider
func (wsp *WhisperServerProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             providerName,
		DisplayName:      "Whisper Server (HTTP)",
		Type:             provider.ProviderTypeRemote,
		RequiresInternet: true,
		DefaultModel:     string(provider.DefaultModelTier),
	}
}

// CheckDependencies requires a valid server URL.
func (wsp *WhisperServerProvider) CheckDependencies() error {
	if wsp.config.BaseURL == "" {
		return apperrors.MissingDependency("whisper-server URL is not configured", "set WHISPER_SERVER_URL")
	}
	parsed, err := url.Parse(wsp.config.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return apperrors.MissingDependency("whisper-server URL is invalid: "+wsp.config.BaseURL, "use http(s)://host:port")
	}
	return nil
}
