package whisper_server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"audio-transcriber/internal/app/api/provider"
	apperrors "audio-transcriber/internal/app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedForm struct {
	path           string
	fileName       string
	language       string
	responseFormat string
	header         string
}

func newInferenceServer(t *testing.T, status int, body string, captured *capturedForm) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.path = r.URL.Path
			captured.header = r.Header.Get("X-Api-Token")
			if err := r.ParseMultipartForm(10 << 20); err == nil {
				captured.language = r.FormValue("language")
				captured.responseFormat = r.FormValue("response_format")
				if _, header, err := r.FormFile("file"); err == nil {
					captured.fileName = header.Filename
				}
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeAudio(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wav"), 0644))
	return path
}

func TestWhisperServerProvider_Transcript(t *testing.T) {
	tests := []struct {
		name             string
		language         string
		responseFormat   string
		status           int
		body             string
		expectedText     string
		expectedLanguage string
		expectError      bool
		errorCode        string
		retryable        bool
	}{
		{
			name:             "json response",
			language:         "pl",
			status:           http.StatusOK,
			body:             `{"text": " Cześć, jak się masz? \n"}`,
			expectedText:     "Cześć, jak się masz?",
			expectedLanguage: "pl",
		},
		{
			name:             "empty language sends auto",
			status:           http.StatusOK,
			body:             `{"text": "hello"}`,
			expectedText:     "hello",
			expectedLanguage: "auto",
		},
		{
			name:             "text response format",
			language:         "en",
			responseFormat:   "text",
			status:           http.StatusOK,
			body:             "plain transcript\n",
			expectedText:     "plain transcript",
			expectedLanguage: "en",
		},
		{
			name:        "server error is retryable",
			language:    "en",
			status:      http.StatusInternalServerError,
			body:        "model crashed",
			expectError: true,
			errorCode:   "api_error",
			retryable:   true,
		},
		{
			name:        "bad request",
			language:    "en",
			status:      http.StatusBadRequest,
			body:        "bad file",
			expectError: true,
			errorCode:   "api_error",
		},
		{
			name:        "error field in body",
			language:    "en",
			status:      http.StatusOK,
			body:        `{"error": "failed to read audio"}`,
			expectError: true,
			errorCode:   "response_parse_failed",
		},
		{
			name:        "malformed json",
			language:    "en",
			status:      http.StatusOK,
			body:        `{"text": `,
			expectError: true,
			errorCode:   "response_parse_failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured capturedForm
			server := newInferenceServer(t, tt.status, tt.body, &captured)

			wsp := NewWhisperServerProvider(WhisperServerConfig{
				BaseURL:        server.URL + "/",
				Language:       tt.language,
				ResponseFormat: tt.responseFormat,
				CustomHeaders:  map[string]string{"X-Api-Token": "secret"},
			}, nil)

			text, err := wsp.Transcript(context.Background(), writeAudio(t, "memo.wav"))
			if tt.expectError {
				require.Error(t, err)
				var tErr *provider.TranscriptionError
				require.True(t, errors.As(err, &tErr))
				assert.Equal(t, tt.errorCode, tErr.Code)
				assert.Equal(t, tt.retryable, tErr.Retryable)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, text)
			assert.Equal(t, "/inference", captured.path)
			assert.Equal(t, "memo.wav", captured.fileName)
			assert.Equal(t, tt.expectedLanguage, captured.language)
			assert.Equal(t, "secret", captured.header)
		})
	}
}

func TestWhisperServerProvider_DetectedLanguage(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"text": "bonjour", "detected_language": "fr", "duration": 1.5}`, nil)
	wsp := NewWhisperServerProvider(WhisperServerConfig{BaseURL: server.URL}, nil)

	resp, err := wsp.TranscriptWithOptions(context.Background(), &provider.TranscriptionRequest{
		InputFilePath: writeAudio(t, "a.wav"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", resp.Text)
	assert.Equal(t, "fr", resp.Language)
	assert.Equal(t, 1500*time.Millisecond, resp.Duration)
	assert.Equal(t, "base", resp.ModelUsed)
}

func TestWhisperServerProvider_MissingFile(t *testing.T) {
	wsp := NewWhisperServerProvider(WhisperServerConfig{BaseURL: "http://127.0.0.1:1"}, nil)

	_, err := wsp.Transcript(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	var tErr *provider.TranscriptionError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "file_not_found", tErr.Code)
}

func TestWhisperServerProvider_Cancelled(t *testing.T) {
	server := newInferenceServer(t, http.StatusOK, `{"text": "late"}`, nil)
	wsp := NewWhisperServerProvider(WhisperServerConfig{BaseURL: server.URL}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wsp.Transcript(ctx, writeAudio(t, "a.wav"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWhisperServerProvider_CheckDependencies(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"empty", "", true},
		{"no scheme", "localhost:8080", true},
		{"ftp scheme", "ftp://host", true},
		{"valid http", "http://localhost:8080", false},
		{"valid https", "https://whisper.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewWhisperServerProvider(WhisperServerConfig{BaseURL: tt.baseURL}, nil).CheckDependencies()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrMissingDependency))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateWhisperServerProvider(t *testing.T) {
	p, err := provider.CreateProvider(providerName, map[string]interface{}{
		"model":          "small",
		"base_url":       "http://gpu-box:8080",
		"inference_path": "/v1/inference",
		"timeout":        "30s",
		"language":       "de",
		"custom_headers": map[string]interface{}{"Authorization": "Bearer x"},
	})
	require.NoError(t, err)

	wsp := p.(*WhisperServerProvider)
	assert.Equal(t, "http://gpu-box:8080", wsp.config.BaseURL)
	assert.Equal(t, "/v1/inference", wsp.config.InferencePath)
	assert.Equal(t, 30*time.Second, wsp.config.Timeout)
	assert.Equal(t, "de", wsp.config.Language)
	assert.Equal(t, provider.TierSmall, wsp.config.Tier)
	assert.Equal(t, "Bearer x", wsp.config.CustomHeaders["Authorization"])

	_, err = provider.CreateProvider(providerName, map[string]interface{}{"response_format": "srt"})
	assert.Error(t, err)

	_, err = provider.CreateProvider(providerName, map[string]interface{}{"model": "huge"})
	assert.Error(t, err)
}
