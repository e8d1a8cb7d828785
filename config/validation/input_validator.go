package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"aiswarm/config/models"
)

// MaxNameLength bounds agent, flock, swarm, preset, prompt and endpoint names
const MaxNameLength = 80

// InputValidator validates values typed on the command line
type InputValidator struct{}

// NewInputValidator creates a new InputValidator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateName checks the name of an entity of the given kind ("agent", "flock", ...).
// Names are shown in lists and matched exactly, so surrounding whitespace and
// control characters are rejected.
func (iv *InputValidator) ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%s name cannot start or end with whitespace", kind)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("%s name contains control characters", kind)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%s name is too long (max %d characters)", kind, MaxNameLength)
	}
	return nil
}

// ValidateModelName checks a model id such as "gpt-4o" or "meta-llama/Llama-3.3-70B"
func (iv *InputValidator) ValidateModelName(model string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if strings.IndexFunc(model, unicode.IsSpace) >= 0 {
		return fmt.Errorf("model name cannot contain whitespace: %q", model)
	}
	return nil
}

// ValidatePrice checks a per-token price of a pricing override
func (iv *InputValidator) ValidatePrice(label string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%s price must be a finite number", label)
	}
	if price < 0 {
		return fmt.Errorf("%s price cannot be negative", label)
	}
	return nil
}

// ValidateOverlay checks the ranges of the parameters a preset sets
func (iv *InputValidator) ValidateOverlay(o models.Overlay) error {
	if o.IsEmpty() {
		return fmt.Errorf("preset sets no parameters")
	}
	if o.Temperature != nil && (*o.Temperature < 0 || *o.Temperature > 2) {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if o.TopP != nil && (*o.TopP < 0 || *o.TopP > 1) {
		return fmt.Errorf("top-p must be between 0 and 1")
	}
	if o.MaxTokens != nil && *o.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive")
	}
	if o.TopK != nil && *o.TopK <= 0 {
		return fmt.Errorf("top-k must be positive")
	}
	for _, p := range []*float64{o.FrequencyPenalty, o.PresencePenalty} {
		if p != nil && (*p < -2 || *p > 2) {
			return fmt.Errorf("penalties must be between -2 and 2")
		}
	}
	return nil
}
