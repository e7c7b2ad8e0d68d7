package whisper_server

import (
	"fmt"

	"audio-transcriber/internal/app/api/provider"
)

func init() {
	// Register whisper_server provider with the factory
	provider.RegisterProvider(providerName, createWhisperServerProvider)
}

// createWhisperServerProvider creates a whisper-server provider from configuration
func createWhisperServerProvider(settings map[string]interface{}) (provider.TranscriptionProvider, error) {
	tier, err := provider.TierSetting(settings)
	if err != nil {
		return nil, err
	}

	config := WhisperServerConfig{Tier: tier}
	fields := map[string]*string{
		"base_url":               &config.BaseURL,
		"inference_path":         &config.InferencePath,
		provider.SettingLanguage: &config.Language,
		"response_format":        &config.ResponseFormat,
	}
	for key, target := range fields {
		value, err := provider.StringSetting(settings, key, "")
		if err != nil {
			return nil, err
		}
		*target = value
	}

	switch config.ResponseFormat {
	case "", "json", "verbose_json", "text":
	default:
		return nil, fmt.Errorf("unsupported response_format %q", config.ResponseFormat)
	}

	if config.Timeout, err = provider.DurationSetting(settings, "timeout", 0); err != nil {
		return nil, err
	}

	if temperature, ok := settings["temperature"].(float64); ok {
		config.Temperature = temperature
	}

	if headers, ok := settings["custom_headers"].(map[string]interface{}); ok {
		config.CustomHeaders = make(map[string]string, len(headers))
		for k, v := range headers {
			if str, ok := v.(string); ok {
				config.CustomHeaders[k] = str
			}
		}
	}

	return NewWhisperServerProvider(config, provider.LoggerFromSettings(settings)), nil
}
