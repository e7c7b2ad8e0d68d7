package provider

import (
	"fmt"
	"sort"
	"sync"

	apperrors "audio-transcriber/internal/app/errors"
)

// ProviderCreator is a function that creates a provider from configuration
type ProviderCreator func(settings map[string]interface{}) (TranscriptionProvider, error)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// lookupCreator returns the creator function for a provider type
func lookupCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProviderNotFound, providerType)
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types in sorted order
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, providerType)
	}
	sort.Strings(providers)
	return providers
}

// CreateProvider builds a registered provider from settings.
func CreateProvider(providerType string, settings map[string]interface{}) (TranscriptionProvider, error) {
	creator, err := lookupCreator(providerType)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	p, err := creator(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", providerType, err)
	}
	return p, nil
}
