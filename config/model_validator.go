package config

import (
	"fmt"
	"slices"
	"strings"

	"aiswarm/config/models"
	"aiswarm/internal/providers"
)

// ModelValidator checks a provider's model list settings
type ModelValidator struct{}

// NewModelValidator creates a new ModelValidator instance
func NewModelValidator() *ModelValidator {
	return &ModelValidator{}
}

// ValidateModelInList checks that model appears in models, ignoring surrounding whitespace
func (v *ModelValidator) ValidateModelInList(model string, models []string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}

	want := strings.TrimSpace(model)
	for _, m := range models {
		if strings.TrimSpace(m) == want {
			return nil
		}
	}
	return fmt.Errorf("model '%s' is not in the manual models list: %v", model, models)
}

// NormalizeModels trims, drops empty names and removes duplicates, keeping order
func (v *ModelValidator) NormalizeModels(list []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(list))
	for _, m := range list {
		trimmed := strings.TrimSpace(m)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result
}

// ValidateManualSetting checks a provider in MANUAL mode: the list must not be
// empty and a default model, when set, must be one of the listed models
func (v *ModelValidator) ValidateManualSetting(setting models.ProviderSetting) error {
	if setting.ModelSource != providers.ModelSourceManual {
		return nil
	}
	if len(v.NormalizeModels(setting.ManualModels)) == 0 {
		return fmt.Errorf("manual models list cannot be empty")
	}
	if setting.DefaultModel == "" {
		return nil
	}
	return v.ValidateModelInList(setting.DefaultModel, setting.ManualModels)
}

// ValidateEdit checks the model fields of a provider setting after an edit.
// Model fields the edit left alone are not re-checked, so a key-only edit always
// passes. A default model the edit kept but the new list no longer holds moves
// to the first listed model.
func (v *ModelValidator) ValidateEdit(before, after models.ProviderSetting) (models.ProviderSetting, error) {
	after.ManualModels = v.NormalizeModels(after.ManualModels)
	if len(after.ManualModels) == 0 {
		after.ManualModels = nil
	}

	listChanged := after.ModelSource != before.ModelSource ||
		!slices.Equal(after.ManualModels, v.NormalizeModels(before.ManualModels))
	defaultChanged := after.DefaultModel != before.DefaultModel
	if !listChanged && !defaultChanged {
		return after, nil
	}

	if after.ModelSource == providers.ModelSourceManual && !defaultChanged &&
		after.DefaultModel != "" && len(after.ManualModels) > 0 &&
		v.ValidateModelInList(after.DefaultModel, after.ManualModels) != nil {
		after.DefaultModel = after.ManualModels[0]
	}
	return after, v.ValidateManualSetting(after)
}
