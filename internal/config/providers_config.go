package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig is the optional YAML file selecting and tuning backends:
//
//	default_provider: whisper_server
//	providers:
//	  whisper_server:
//	    settings:
//	      base_url: ${WHISPER_SERVER_URL}
//	      timeout: 90s
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig represents configuration for a single backend
type ProviderConfig struct {
	Enabled  *bool                  `yaml:"enabled,omitempty"`
	Settings map[string]interface{} `yaml:"settings,omitempty"`
}

// IsEnabled treats an absent enabled flag as true.
func (p ProviderConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// LoadProvidersConfig loads provider configuration from a YAML file
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProvidersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", configPath, err)
	}

	config.expandEnvironmentVariables()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}

	return &config, nil
}

// expandEnvironmentVariables expands ${VAR} references in string settings
func (c *ProvidersConfig) expandEnvironmentVariables() {
	c.DefaultProvider = os.ExpandEnv(c.DefaultProvider)
	for _, provider := range c.Providers {
		expandMap(provider.Settings)
	}
}

func expandMap(m map[string]interface{}) {
	for key, value := range m {
		switch v := value.(type) {
		case string:
			m[key] = os.ExpandEnv(v)
		case map[string]interface{}:
			expandMap(v)
		}
	}
}

// Validate checks that every named backend is known.
func (c *ProvidersConfig) Validate() error {
	if c.DefaultProvider != "" && !isKnownBackend(c.DefaultProvider) {
		return fmt.Errorf("unknown default_provider %q", c.DefaultProvider)
	}
	for name := range c.Providers {
		if !isKnownBackend(name) {
			return fmt.Errorf("unknown provider %q", name)
		}
	}
	return nil
}

// Settings returns a copy of the file settings for backend, or nil.
func (c *ProvidersConfig) Settings(backend string) map[string]interface{} {
	if c == nil {
		return nil
	}
	provider, ok := c.Providers[backend]
	if !ok {
		return nil
	}
	settings := make(map[string]interface{}, len(provider.Settings))
	for k, v := range provider.Settings {
		settings[k] = v
	}
	return settings
}
