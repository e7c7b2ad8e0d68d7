package provider

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Setting keys shared by all providers.
const (
	SettingModel    = "model"
	SettingLanguage = "language"
	SettingLogger   = "logger"
)

// StringSetting reads an optional string setting.
func StringSetting(settings map[string]interface{}, key string, fallback string) (string, error) {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("setting %q must be a string, got %T", key, raw)
	}
	return s, nil
}

// DurationSetting accepts a time.Duration, a Go duration string ("90s") or a number of seconds.
func DurationSetting(settings map[string]interface{}, key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("setting %q: %w", key, err)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("setting %q must be a duration, got %T", key, raw)
	}
}

// TierSetting reads the model tier, defaulting to DefaultModelTier.
func TierSetting(settings map[string]interface{}) (ModelTier, error) {
	name, err := StringSetting(settings, SettingModel, string(DefaultModelTier))
	if err != nil {
		return "", err
	}
	return ParseModelTier(name)
}

// LoggerFromSettings returns the injected logger or a no-op logger.
func LoggerFromSettings(settings map[string]interface{}) *zap.Logger {
	if logger, ok := settings[SettingLogger].(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}
