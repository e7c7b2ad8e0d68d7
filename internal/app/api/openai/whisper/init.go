package whisper

import (
	"audio-transcriber/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration.
// The API serves a single model per name, so the tier setting is only validated.
func createOpenAIProvider(settings map[string]interface{}) (provider.TranscriptionProvider, error) {
	if _, err := provider.TierSetting(settings); err != nil {
		return nil, err
	}

	config := OpenAIProviderConfig{}
	fields := map[string]*string{
		"api_key":                &config.APIKey,
		"base_url":               &config.BaseURL,
		"api_model":              &config.APIModel,
		provider.SettingLanguage: &config.Language,
		"prompt":                 &config.Prompt,
	}
	for key, target := range fields {
		value, err := provider.StringSetting(settings, key, "")
		if err != nil {
			return nil, err
		}
		*target = value
	}

	if temperature, ok := settings["temperature"].(float64); ok {
		config.Temperature = float32(temperature)
	}

	return NewRemoteTranscriber(config, provider.LoggerFromSettings(settings)), nil
}
