package whisper_cpp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"audio-transcriber/internal/app/api/provider"
	"audio-transcriber/internal/app/audio"
	apperrors "audio-transcriber/internal/app/errors"
	"audio-transcriber/internal/app/util/files"
	"go.uber.org/zap"
)

const providerName = "whisper_cpp"

// DefaultBinaryName is looked up on PATH when no binary path is configured.
const DefaultBinaryName = "whisper-cli"

// LocalProviderConfig represents configuration specific to local whisper.cpp provider
type LocalProviderConfig struct {
	BinaryPath string             `yaml:"binary_path"`
	ModelDir   string             `yaml:"model_dir"`
	ModelPath  string             `yaml:"model_path"`
	Tier       provider.ModelTier `yaml:"model"`
	Language   string             `yaml:"language"`
	Prompt     string             `yaml:"prompt"`
	Threads    int                `yaml:"threads"`
	TempDir    string             `yaml:"temp_dir"`
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	config LocalProviderConfig
	logger *zap.Logger

	// replaced in tests
	probe   func(ctx context.Context, path string) (bool, error)
	convert func(ctx context.Context, path, outputDir string) (string, error)
	tools   func() error
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(config LocalProviderConfig, logger *zap.Logger) *LocalTranscriber {
	if config.Tier == "" {
		config.Tier = provider.DefaultModelTier
	}
	if config.ModelPath == "" && config.ModelDir != "" {
		config.ModelPath = filepath.Join(config.ModelDir, config.Tier.WhisperCppModelFile())
	}
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LocalTranscriber{
		config:  config,
		logger:  logger.With(zap.String("provider", providerName)),
		probe:   audio.Is16kHzWavFile,
		convert: audio.ConvertTo16kHzWav,
		tools:   audio.CheckTools,
	}
}

// Transcript transcribes the file with the configured model and language.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	resp, err := lt.TranscriptWithOptions(ctx, &provider.TranscriptionRequest{InputFilePath: inputFilePath})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscriptWithOptions converts the input to 16kHz WAV when needed and runs the whisper.cpp binary on it.
func (lt *LocalTranscriber) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if request.InputFilePath == "" {
		return nil, provider.NewError(providerName, "invalid_input", "input file path is required", nil)
	}
	if _, err := os.Stat(request.InputFilePath); err != nil {
		return nil, provider.NewError(providerName, "file_not_found",
			fmt.Sprintf("input file not found: %s", request.InputFilePath), err)
	}

	language := lt.config.Language
	if request.Language != "" {
		language = request.Language
	}
	prompt := lt.config.Prompt
	if request.Prompt != "" {
		prompt = request.Prompt
	}
	modelPath := lt.config.ModelPath
	if request.Model != "" {
		modelPath = request.Model
	}

	workDir, err := os.MkdirTemp(lt.config.TempDir, "whisper_cpp_*")
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "temp_dir_error",
			Message:   fmt.Sprintf("failed to create temp directory: %v", err),
			Provider:  providerName,
			Retryable: true,
			Cause:     err,
		}
	}
	defer os.RemoveAll(workDir)

	inputFilePath := request.InputFilePath
	is16kHzWav, err := lt.probe(ctx, inputFilePath)
	if err != nil {
		return nil, provider.NewError(providerName, "audio_check_error",
			fmt.Sprintf("error checking input file: %v", err), err)
	}
	if !is16kHzWav {
		lt.logger.Debug("converting input to 16kHz wav", zap.String("file", inputFilePath))
		inputFilePath, err = lt.convert(ctx, inputFilePath, workDir)
		if err != nil {
			return nil, provider.NewError(providerName, "audio_conversion_error",
				fmt.Sprintf("error converting input file: %v", err), err)
		}
	}

	outputBase := filepath.Join(workDir, "transcript")
	args := lt.buildArgs(modelPath, language, prompt, inputFilePath, outputBase)

	lt.logger.Debug("running whisper.cpp",
		zap.String("binary", lt.config.BinaryPath),
		zap.String("args", strings.Join(args, " ")))

	command := exec.CommandContext(ctx, lt.config.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, provider.NewError(providerName, "transcription_failed",
			fmt.Sprintf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String())), err)
	}

	output, err := files.ReadOutputFile(outputBase + ".txt")
	if err != nil {
		return nil, provider.NewError(providerName, "output_read_error",
			fmt.Sprintf("failed to read output file: %v", err), err)
	}

	response := &provider.TranscriptionResponse{
		Text:           normalizeTranscript(output),
		Language:       language,
		ProcessingTime: time.Since(startTime),
		ModelUsed:      modelPath,
		ProviderMetadata: map[string]interface{}{
			"binary_path":     lt.config.BinaryPath,
			"converted_audio": !is16kHzWav,
		},
	}

	lt.logger.Debug("transcription finished",
		zap.String("file", request.InputFilePath),
		zap.Duration("elapsed", response.ProcessingTime))
	return response, nil
}

func (lt *LocalTranscriber) buildArgs(modelPath, language, prompt, inputFilePath, outputBase string) []string {
	if language == "" {
		language = "auto"
	}
	args := []string{
		"-m", modelPath,
		"-l", language,
		"-nt",
		"-otxt",
		"-of", outputBase,
	}
	if prompt != "" {
		args = append(args, "--prompt", prompt)
	}
	if lt.config.Threads > 0 {
		args = append(args, "-t", fmt.Sprint(lt.config.Threads))
	}
	return append(args, "-f", inputFilePath)
}

// normalizeTranscript joins the per-segment lines whisper.cpp writes into one paragraph.
func normalizeTranscript(output string) string {
	lines := strings.Split(output, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

// GetProviderInfo returns metadata about the whisper.cpp provider
func (lt *LocalTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:           providerName,
		DisplayName:    "Whisper.cpp (Local)",
		Type:           provider.ProviderTypeLocal,
		RequiresBinary: true,
		DefaultModel:   provider.DefaultModelTier.WhisperCppModelFile(),
		AvailableModels: []string{
			provider.TierTiny.WhisperCppModelFile(),
			provider.TierBase.WhisperCppModelFile(),
			provider.TierSmall.WhisperCppModelFile(),
			provider.TierMedium.WhisperCppModelFile(),
			provider.TierLarge.WhisperCppModelFile(),
		},
	}
}

// CheckDependencies verifies the binary, the model file and ffmpeg are all present.
func (lt *LocalTranscriber) CheckDependencies() error {
	if lt.config.BinaryPath == "" {
		return apperrors.MissingDependency("whisper.cpp binary not found",
			"set WHISPER_CPP_BINARY or put "+DefaultBinaryName+" on PATH")
	}
	if _, err := os.Stat(lt.config.BinaryPath); err != nil {
		return apperrors.MissingDependency("whisper.cpp binary not found at "+lt.config.BinaryPath, "check WHISPER_CPP_BINARY")
	}

	if lt.config.ModelPath == "" {
		return apperrors.MissingDependency("whisper.cpp model directory is not configured",
			"set WHISPER_CPP_MODEL_DIR to the directory holding "+lt.config.Tier.WhisperCppModelFile())
	}
	if _, err := os.Stat(lt.config.ModelPath); errors.Is(err, os.ErrNotExist) {
		return apperrors.MissingDependency("whisper model not found at "+lt.config.ModelPath,
			"download "+filepath.Base(lt.config.ModelPath)+" from the whisper.cpp models page")
	}

	if err := lt.tools(); err != nil {
		return apperrors.MissingDependency(err.Error(), "install ffmpeg")
	}
	return nil
}
