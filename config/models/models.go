package models

import (
	"github.com/google/uuid"
)

// ProviderSetting holds the user's settings for one catalog provider
type ProviderSetting struct {
	APIKey        string   `json:"api_key"`
	ModelSource   string   `json:"model_source"`            // REMOTE or MANUAL
	ManualModels  []string `json:"manual_models,omitempty"` // used when ModelSource is MANUAL
	DefaultModel  string   `json:"default_model"`
	AdminURL      string   `json:"admin_url"`
	ModelListURL  string   `json:"model_list_url,omitempty"` // empty means catalog default
	ParametersIDs []string `json:"parameters_ids,omitempty"`
}

// Agent binds a provider, model, key and parameter presets under a unique name
type Agent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Provider      string   `json:"provider"`
	Model         string   `json:"model,omitempty"`       // empty inherits the provider default
	APIKey        string   `json:"api_key,omitempty"`     // empty inherits the provider key
	EndpointID    string   `json:"endpoint_id,omitempty"` // empty inherits the provider default endpoint
	ParametersIDs []string `json:"parameters_ids,omitempty"`
}

// Flock is a named list of agent references.
// Agent ids may dangle; they are skipped when resolved.
type Flock struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AgentIDs      []string `json:"agent_ids,omitempty"`
	ParametersIDs []string `json:"parameters_ids,omitempty"`
}

// SwarmMember is a provider/model pair owned by value
type SwarmMember struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Swarm is a named list of provider/model pairs
type Swarm struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Members       []SwarmMember `json:"members,omitempty"`
	ParametersIDs []string      `json:"parameters_ids,omitempty"`
}

// Parameters is a named, reusable parameter preset
type Parameters struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Overlay
}

// Prompt is a named template owned by an agent
type Prompt struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AgentID    string `json:"agent_id"`
	PromptText string `json:"prompt_text"`
}

// Endpoint is a named API base URL for a provider
type Endpoint struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// PricingOverride replaces the looked-up price for a provider/model pair
type PricingOverride struct {
	Provider        string  `json:"provider"`
	Model           string  `json:"model"`
	PromptPrice     float64 `json:"prompt_price"`     // per input token
	CompletionPrice float64 `json:"completion_price"` // per output token
}

// AuxKeys are the two standalone API keys for the auxiliary lookup services
type AuxKeys struct {
	HuggingFace string `json:"hugging_face,omitempty"`
	OpenRouter  string `json:"open_router,omitempty"`
}

// State is what gets persisted on disk
type State struct {
	Config  *Config `json:"config"`
	AuxKeys AuxKeys `json:"aux_keys"`
}

// NewID mints a fresh opaque identifier
func NewID() string {
	return uuid.New().String()
}
