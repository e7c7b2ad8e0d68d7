package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvOpenAIBaseURL      = "OPENAI_BASE_URL"
	EnvWhisperCppBinary   = "WHISPER_CPP_BINARY"
	EnvWhisperCppModelDir = "WHISPER_CPP_MODEL_DIR"
	EnvWhisperServerURL   = "WHISPER_SERVER_URL"
	EnvTranscribeBackend  = "TRANSCRIBE_BACKEND"
)

// envPaths are tried in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
}

// LoadEnv loads environment variables from the first .env file found.
// Variables already set in the process environment are not overridden.
// It returns the path that was loaded, or "" when no file exists.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// getEnv returns the trimmed value of key.
func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// envSettings maps each backend's settings keys to the environment variables feeding them.
var envSettings = map[string]map[string]string{
	BackendWhisperCpp: {
		"binary_path": EnvWhisperCppBinary,
		"model_dir":   EnvWhisperCppModelDir,
	},
	BackendOpenAI: {
		"api_key":  EnvOpenAIAPIKey,
		"base_url": EnvOpenAIBaseURL,
	},
	BackendWhisperServer: {
		"base_url": EnvWhisperServerURL,
	},
}

// EnvSettings returns the backend settings found in the environment, skipping unset variables.
func EnvSettings(backend string) map[string]interface{} {
	settings := make(map[string]interface{})
	for key, envKey := range envSettings[backend] {
		if value := getEnv(envKey); value != "" {
			settings[key] = value
		}
	}
	return settings
}
