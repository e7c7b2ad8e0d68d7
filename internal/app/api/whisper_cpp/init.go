package whisper_cpp

import (
	"os/exec"

	"audio-transcriber/internal/app/api/provider"
)

func init() {
	// Register whisper_cpp provider with the factory
	provider.RegisterProvider(providerName, createWhisperCppProvider)
}

// createWhisperCppProvider creates a whisper.cpp provider from configuration.
// A missing binary or model is not an error here; CheckDependencies reports it.
func createWhisperCppProvider(settings map[string]interface{}) (provider.TranscriptionProvider, error) {
	tier, err := provider.TierSetting(settings)
	if err != nil {
		return nil, err
	}

	config := LocalProviderConfig{Tier: tier}
	fields := map[string]*string{
		"binary_path":            &config.BinaryPath,
		"model_dir":              &config.ModelDir,
		"model_path":             &config.ModelPath,
		provider.SettingLanguage: &config.Language,
		"prompt":                 &config.Prompt,
		"temp_dir":               &config.TempDir,
	}
	for key, target := range fields {
		value, err := provider.StringSetting(settings, key, "")
		if err != nil {
			return nil, err
		}
		*target = value
	}

	switch threads := settings["threads"].(type) {
	case int:
		config.Threads = threads
	case float64:
		config.Threads = int(threads)
	}

	if config.BinaryPath == "" {
		if found, err := exec.LookPath(DefaultBinaryName); err == nil {
			config.BinaryPath = found
		}
	}

	return NewLocalTranscriber(config, provider.LoggerFromSettings(settings)), nil
}
