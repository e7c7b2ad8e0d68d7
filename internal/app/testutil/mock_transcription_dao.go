package testutil

import (
	"sort"
	"sync"

	"audio-transcriber/internal/app/model"
)

// MockTranscriptionDAO is an in-memory repository.TranscriptionDAO.
// ErrorMap injects failures by method name ("RecordToDB", "GetAll", "GetByRunID", "Close").
type MockTranscriptionDAO struct {
	mu sync.RWMutex

	transcriptions []model.Transcription
	nextID         int
	closed         bool

	ErrorMap map[string]error
}

// NewMockTranscriptionDAO creates an empty MockTranscriptionDAO
func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{
		nextID:   1,
		ErrorMap: make(map[string]error),
	}
}

// Close implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrorMap["Close"]; ok {
		return err
	}
	m.closed = true
	return nil
}

// RecordToDB implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) RecordToDB(t model.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrorMap["RecordToDB"]; ok {
		return err
	}
	t.ID = m.nextID
	m.nextID++
	m.transcriptions = append(m.transcriptions, t)
	return nil
}

// GetAll implements the TranscriptionDAO interface, newest first
func (m *MockTranscriptionDAO) GetAll() ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.ErrorMap["GetAll"]; ok {
		return nil, err
	}
	result := append([]model.Transcription(nil), m.transcriptions...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// GetByRunID implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) GetByRunID(runID string) ([]model.Transcription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.ErrorMap["GetByRunID"]; ok {
		return nil, err
	}
	result := make([]model.Transcription, 0)
	for _, t := range m.transcriptions {
		if t.RunID == runID {
			result = append(result, t)
		}
	}
	return result, nil
}

// Records returns every stored row in insertion order.
func (m *MockTranscriptionDAO) Records() []model.Transcription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Transcription(nil), m.transcriptions...)
}

// IsClosed reports whether Close succeeded.
func (m *MockTranscriptionDAO) IsClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
