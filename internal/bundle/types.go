package bundle

import (
	"aiswarm/config/models"
)

// Schema versions accepted by the decoder
const (
	MinSupportedVersion = 3
	CurrentVersion      = 16
)

// VersionRange is an inclusive range of schema versions
type VersionRange struct {
	Min int
	Max int
}

// DefaultVersionRange is the range this build reads
var DefaultVersionRange = VersionRange{Min: MinSupportedVersion, Max: CurrentVersion}

// Contains reports whether v lies inside the range
func (r VersionRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Bundle is the interchange document
type Bundle struct {
	Version           int                      `json:"version"`
	Providers         map[string]ProviderEntry `json:"providers"`
	Agents            []AgentEntry             `json:"agents,omitempty"`
	Flocks            []FlockEntry             `json:"flocks,omitempty"`
	Swarms            []SwarmEntry             `json:"swarms,omitempty"`
	Parameters        []ParametersEntry        `json:"parameters,omitempty"`
	Prompts           []PromptEntry            `json:"aiPrompts,omitempty"`
	ManualPricing     []PricingEntry           `json:"manualPricing,omitempty"`
	ProviderEndpoints []EndpointGroup          `json:"providerEndpoints,omitempty"`
	HuggingFaceAPIKey *string                  `json:"huggingFaceApiKey,omitempty"`
	OpenRouterAPIKey  *string                  `json:"openRouterApiKey,omitempty"`
}

// ProviderEntry is a provider setting snapshot
type ProviderEntry struct {
	ModelSource   string   `json:"modelSource"`
	ManualModels  []string `json:"manualModels"`
	APIKey        string   `json:"apiKey"`
	DefaultModel  *string  `json:"defaultModel,omitempty"`
	AdminURL      *string  `json:"adminUrl,omitempty"`
	ModelListURL  *string  `json:"modelListUrl,omitempty"`
	ParametersIDs []string `json:"parametersIds,omitempty"`
}

// AgentEntry is an agent snapshot.
// Parameters is the legacy inline preset block, read but never written.
type AgentEntry struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Provider      string          `json:"provider"`
	Model         string          `json:"model"`
	APIKey        string          `json:"apiKey"`
	ParametersIDs []string        `json:"parametersIds,omitempty"`
	Parameters    *models.Overlay `json:"parameters,omitempty"`
	EndpointID    *string         `json:"endpointId,omitempty"`
}

// FlockEntry is a flock snapshot.
// ParametersID is the legacy single preset reference, read but never written.
type FlockEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AgentIDs      []string `json:"agentIds"`
	ParametersIDs []string `json:"parametersIds,omitempty"`
	ParametersID  *string  `json:"parametersId,omitempty"`
}

// SwarmEntry is a swarm snapshot
type SwarmEntry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Members       []MemberEntry `json:"members"`
	ParametersIDs []string      `json:"parametersIds,omitempty"`
	ParametersID  *string       `json:"parametersId,omitempty"`
}

// MemberEntry is a swarm member
type MemberEntry struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ParametersEntry is a parameter preset snapshot
type ParametersEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	models.Overlay
}

// PromptEntry is a prompt snapshot
type PromptEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AgentID    string `json:"agentId"`
	PromptText string `json:"promptText"`
}

// PricingEntry is a pricing override keyed "PROVIDER:model"
type PricingEntry struct {
	Key             string  `json:"key"`
	PromptPrice     float64 `json:"promptPrice"`
	CompletionPrice float64 `json:"completionPrice"`
}

// EndpointGroup is a provider's endpoint list
type EndpointGroup struct {
	Provider  string          `json:"provider"`
	Endpoints []EndpointEntry `json:"endpoints"`
}

// EndpointEntry is an endpoint snapshot
type EndpointEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDefault bool   `json:"isDefault"`
}
