package provider

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ModelTier is the size class of the Whisper model used for recognition.
type ModelTier string

const (
	TierTiny   ModelTier = "tiny"
	TierBase   ModelTier = "base"
	TierSmall  ModelTier = "small"
	TierMedium ModelTier = "medium"
	TierLarge  ModelTier = "large"

	DefaultModelTier = TierBase
)

// ModelTiers lists the tiers from smallest to largest.
var ModelTiers = []ModelTier{TierTiny, TierBase, TierSmall, TierMedium, TierLarge}

// ModelTierNames returns the tiers as plain strings, for flag help and validation messages.
func ModelTierNames() []string {
	return lo.Map(ModelTiers, func(t ModelTier, _ int) string { return string(t) })
}

// ParseModelTier validates a tier name.
func ParseModelTier(name string) (ModelTier, error) {
	tier := ModelTier(name)
	if !lo.Contains(ModelTiers, tier) {
		return "", fmt.Errorf("invalid model %q: must be one of %s", name, strings.Join(ModelTierNames(), ", "))
	}
	return tier, nil
}

// WhisperCppModelFile is the ggml model file whisper.cpp ships for the tier.
func (t ModelTier) WhisperCppModelFile() string {
	if t == TierLarge {
		return "ggml-large-v3.bin"
	}
	return fmt.Sprintf("ggml-%s.bin", t)
}
