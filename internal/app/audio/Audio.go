package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"audio-transcriber/internal/app/model"
	"github.com/samber/lo"
)

// SupportedExtensions lists the lowercase file extensions treated as audio.
var SupportedExtensions = []string{".ogg", ".oga", ".mp3", ".wav", ".m4a", ".flac"}

// IsAudioFile reports whether the file name carries a supported audio extension.
// The comparison is case-insensitive.
func IsAudioFile(fileName string) bool {
	return lo.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(fileName)))
}

func GetAudioDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return parseDuration(output)
}

func parseDuration(output []byte) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe duration %q: %w", strings.TrimSpace(string(output)), err)
	}
	return duration, nil
}

func Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}
	return isPCM16kHz(output)
}

func isPCM16kHz(probeJSON []byte) (bool, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(probeJSON, &probeOutput); err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}

	return false, nil
}

// ConvertTo16kHzWav writes a mono 16kHz PCM copy of the input into outputDir and returns its path.
func ConvertTo16kHzWav(ctx context.Context, inputFilePath string, outputDir string) (string, error) {
	if !IsAudioFile(inputFilePath) {
		return "", fmt.Errorf("unsupported audio format not in %v: %s", SupportedExtensions, filepath.Ext(inputFilePath))
	}

	base := strings.TrimSuffix(filepath.Base(inputFilePath), filepath.Ext(inputFilePath))
	outputWavPath := filepath.Join(outputDir, base+"_16khz.wav")
	if _, err := os.Stat(outputWavPath); err == nil {
		return outputWavPath, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-nostdin", "-y", "-i", inputFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return outputWavPath, nil
}

// CheckTools verifies that ffmpeg and ffprobe are reachable on PATH.
func CheckTools() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found on PATH", tool)
		}
	}
	return nil
}
