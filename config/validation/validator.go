package validation

import (
	"fmt"

	"aiswarm/config/models"
	"aiswarm/internal/providers"
	"aiswarm/internal/utils"
)

// Validator checks the shape of configuration entities.
// Whether a provider name is known is decided by the catalog owner, not here.
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAgent checks that an agent has a usable name
func (v *Validator) ValidateAgent(agent models.Agent) error {
	if agent.Name == "" {
		return fmt.Errorf("agent name cannot be empty")
	}
	return nil
}

// ValidateEndpoint checks that an endpoint has a usable URL
func (v *Validator) ValidateEndpoint(endpoint models.Endpoint) error {
	if !utils.ValidateURL(endpoint.URL) {
		return fmt.Errorf("invalid URL format: %s", endpoint.URL)
	}
	return nil
}

// ValidateModelSource checks a model-source mode string
func (v *Validator) ValidateModelSource(source string) error {
	if !providers.IsValidModelSource(source) {
		return fmt.Errorf("invalid model source: %s (want %s or %s)", source, providers.ModelSourceRemote, providers.ModelSourceManual)
	}
	return nil
}

// ValidateProviderSetting checks the model source and URLs of a provider setting
func (v *Validator) ValidateProviderSetting(setting models.ProviderSetting) error {
	if err := v.ValidateModelSource(setting.ModelSource); err != nil {
		return err
	}
	if setting.AdminURL != "" && !utils.ValidateURL(setting.AdminURL) {
		return fmt.Errorf("invalid URL format: %s", setting.AdminURL)
	}
	if setting.ModelListURL != "" && !utils.ValidateURL(setting.ModelListURL) {
		return fmt.Errorf("invalid URL format: %s", setting.ModelListURL)
	}
	return nil
}
