package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockTranscriber is a configurable api.Transcriber for tests.
// Responses and errors are keyed by input path; everything else gets DefaultResponse.
// Expectations set with On("Transcript", ...) take precedence when present.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	DefaultResponse string
	DefaultError    error
	ResponseMap     map[string]string
	ErrorMap        map[string]error

	CallHistory []string
}

// NewMockTranscriber creates a new MockTranscriber with sensible defaults
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ResponseMap: make(map[string]string),
		ErrorMap:    make(map[string]error),
	}
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	m.mu.Lock()
	m.CallHistory = append(m.CallHistory, inputFilePath)
	hasExpectations := len(m.ExpectedCalls) > 0
	m.mu.Unlock()

	if hasExpectations {
		args := m.Called(ctx, inputFilePath)
		return args.String(0), args.Error(1)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrorMap[inputFilePath]; ok {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if text, ok := m.ResponseMap[inputFilePath]; ok {
		return text, nil
	}
	if m.DefaultResponse != "" {
		return m.DefaultResponse, nil
	}
	return fmt.Sprintf("transcript of %s", filepath.Base(inputFilePath)), nil
}

// SetResponse sets the transcript returned for path.
func (m *MockTranscriber) SetResponse(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[path] = text
}

// SetError makes transcription of path fail with err.
func (m *MockTranscriber) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[path] = err
}

// Calls returns the paths transcribed so far, in call order.
func (m *MockTranscriber) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.CallHistory...)
}
