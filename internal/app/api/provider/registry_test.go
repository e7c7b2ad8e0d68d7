package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "audio-transcriber/internal/app/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	settings map[string]interface{}
}

func (s *stubProvider) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return "stub", nil
}

func (s *stubProvider) TranscriptWithOptions(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error) {
	return &TranscriptionResponse{Text: "stub"}, nil
}

func (s *stubProvider) GetProviderInfo() ProviderInfo {
	return ProviderInfo{Name: "stub", Type: ProviderTypeLocal}
}

func (s *stubProvider) CheckDependencies() error { return nil }

func TestRegistryCreateProvider(t *testing.T) {
	RegisterProvider("stub_test", func(settings map[string]interface{}) (TranscriptionProvider, error) {
		return &stubProvider{settings: settings}, nil
	})
	RegisterProvider("broken_test", func(settings map[string]interface{}) (TranscriptionProvider, error) {
		return nil, errors.New("bad settings")
	})

	p, err := CreateProvider("stub_test", map[string]interface{}{"model": "tiny"})
	require.NoError(t, err)
	assert.Equal(t, "tiny", p.(*stubProvider).settings["model"])

	p, err = CreateProvider("stub_test", nil)
	require.NoError(t, err)
	assert.NotNil(t, p.(*stubProvider).settings)

	_, err = CreateProvider("broken_test", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create broken_test provider")

	_, err = CreateProvider("does_not_exist", nil)
	assert.True(t, errors.Is(err, apperrors.ErrProviderNotFound))

	names := ListRegisteredProviders()
	assert.Contains(t, names, "stub_test")
	assert.IsNonDecreasing(t, names)
}

func TestParseModelTier(t *testing.T) {
	for _, name := range []string{"tiny", "base", "small", "medium", "large"} {
		tier, err := ParseModelTier(name)
		require.NoError(t, err)
		assert.Equal(t, ModelTier(name), tier)
	}

	_, err := ParseModelTier("huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiny, base, small, medium, large")

	_, err = ParseModelTier("Base")
	assert.Error(t, err)
}

func TestWhisperCppModelFile(t *testing.T) {
	assert.Equal(t, "ggml-tiny.bin", TierTiny.WhisperCppModelFile())
	assert.Equal(t, "ggml-base.bin", TierBase.WhisperCppModelFile())
	assert.Equal(t, "ggml-medium.bin", TierMedium.WhisperCppModelFile())
	assert.Equal(t, "ggml-large-v3.bin", TierLarge.WhisperCppModelFile())
}

func TestSettingsHelpers(t *testing.T) {
	settings := map[string]interface{}{
		"name":     "value",
		"number":   3,
		"seconds":  1.5,
		"duration": "2m",
		"typed":    5 * time.Second,
		"bad":      []string{"x"},
	}

	s, err := StringSetting(settings, "name", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	s, err = StringSetting(settings, "missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	_, err = StringSetting(settings, "number", "")
	assert.Error(t, err)

	d, err := DurationSetting(settings, "number", 0)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)

	d, err = DurationSetting(settings, "seconds", 0)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = DurationSetting(settings, "duration", 0)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	d, err = DurationSetting(settings, "typed", 0)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	d, err = DurationSetting(settings, "missing", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	_, err = DurationSetting(settings, "bad", 0)
	assert.Error(t, err)

	tier, err := TierSetting(map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, DefaultModelTier, tier)

	_, err = TierSetting(map[string]interface{}{"model": "gigantic"})
	assert.Error(t, err)
}

func TestLoggerFromSettings(t *testing.T) {
	assert.NotNil(t, LoggerFromSettings(map[string]interface{}{}))

	logger := zap.NewExample()
	assert.Same(t, logger, LoggerFromSettings(map[string]interface{}{SettingLogger: logger}))
}

func TestTranscriptionError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewError("whisper_cpp", "transcription_failed", "whisper.cpp failed", cause)

	assert.Equal(t, "whisper_cpp: whisper.cpp failed", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.False(t, err.Retryable)

	var target *TranscriptionError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, "transcription_failed", target.Code)
}
