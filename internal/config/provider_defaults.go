package config

import "time"

// Backend names as registered with the provider registry.
const (
	BackendWhisperCpp    = "whisper_cpp"
	BackendOpenAI        = "openai"
	BackendWhisperServer = "whisper_server"
)

// Backends lists the selectable backends.
var Backends = []string{BackendWhisperCpp, BackendOpenAI, BackendWhisperServer}

// CLI and provider default configuration constants
const (
	DefaultBackend  = BackendWhisperCpp
	DefaultModel    = "base"
	DefaultLanguage = "pl"

	// DefaultWhisperCppModelDir follows the whisper.cpp checkout layout.
	DefaultWhisperCppModelDir = "models"

	DefaultHTTPTimeout = 120 * time.Second
)

// GetProviderDefaults returns the baseline settings for a backend before env and file overrides.
func GetProviderDefaults(backend string) map[string]interface{} {
	switch backend {
	case BackendWhisperCpp:
		return map[string]interface{}{
			"model_dir": DefaultWhisperCppModelDir,
		}
	case BackendWhisperServer:
		return map[string]interface{}{
			"timeout": DefaultHTTPTimeout,
		}
	default:
		return map[string]interface{}{}
	}
}
