// Package pricing stores per-model price overrides outside the configuration model.
package pricing

import (
	"fmt"
	"strings"

	"aiswarm/config/models"
)

// Store is a keyed store of pricing overrides, keyed by provider and model
type Store interface {
	// All returns every override ordered by provider then model
	All() ([]models.PricingOverride, error)
	// Get returns the override for a provider/model pair
	Get(provider, model string) (models.PricingOverride, bool, error)
	// PutAll writes the overrides, replacing any with the same key
	PutAll(overrides []models.PricingOverride) error
	// Delete removes the override for a provider/model pair
	Delete(provider, model string) error
}

// FormatKey renders the wire key "PROVIDER:model"
func FormatKey(provider, model string) string {
	return provider + ":" + model
}

// ParseKey splits a wire key on its first colon.
// Model names may themselves contain colons.
func ParseKey(key string) (provider, model string, err error) {
	provider, model, ok := strings.Cut(key, ":")
	if !ok || provider == "" || model == "" {
		return "", "", fmt.Errorf("invalid pricing key: %q", key)
	}
	return provider, model, nil
}
