package providers

import (
	"errors"
)

// Model source modes
const (
	ModelSourceRemote = "REMOTE"
	ModelSourceManual = "MANUAL"
)

// Provider describes one AI service known to the tool
type Provider struct {
	// Name is the stable identifier used in bundles (e.g. "OPENAI")
	Name string
	// DisplayName is the human readable name
	DisplayName string
	// DefaultModel is used when neither the provider setting nor the agent picks one
	DefaultModel string
	// AdminURL points at the provider's key management page
	AdminURL string
	// ModelSource is the default model-source mode (REMOTE or MANUAL)
	ModelSource string
	// Endpoints are the built-in API base URLs, first one is the default
	Endpoints []string
}

// BuiltinURL returns the first built-in endpoint, or "" when the provider has none
func (p Provider) BuiltinURL() string {
	if len(p.Endpoints) == 0 {
		return ""
	}
	return p.Endpoints[0]
}

// Catalog is a read-only registry of providers keyed by name.
// Registration order is preserved.
type Catalog struct {
	byName map[string]Provider
	order  []string
}

// NewCatalog creates a catalog holding the given providers
func NewCatalog(providers ...Provider) *Catalog {
	c := &Catalog{byName: make(map[string]Provider)}
	for _, p := range providers {
		c.Register(p)
	}
	return c
}

// Register adds or replaces a provider
func (c *Catalog) Register(p Provider) {
	if _, exists := c.byName[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}
	c.byName[p.Name] = p
}

// Get returns a provider by name
func (c *Catalog) Get(name string) (Provider, error) {
	p, ok := c.byName[name]
	if !ok {
		return Provider{}, errors.New("unknown provider: " + name)
	}
	return p, nil
}

// Lookup returns a provider by name and whether it exists
func (c *Catalog) Lookup(name string) (Provider, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Names returns all provider names in registration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of registered providers
func (c *Catalog) Len() int {
	return len(c.order)
}

// Default returns the built-in provider catalog
func Default() *Catalog {
	return NewCatalog(
		Provider{
			Name:         "OPENAI",
			DisplayName:  "OpenAI",
			DefaultModel: "gpt-4o-mini",
			AdminURL:     "https://platform.openai.com/settings/organization/api-keys",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.openai.com/v1/"},
		},
		Provider{
			Name:         "ANTHROPIC",
			DisplayName:  "Anthropic",
			DefaultModel: "claude-sonnet-4-5",
			AdminURL:     "https://console.anthropic.com/settings/keys",
			ModelSource:  ModelSourceManual,
			Endpoints:    []string{"https://api.anthropic.com/"},
		},
		Provider{
			Name:         "GOOGLE",
			DisplayName:  "Google",
			DefaultModel: "gemini-2.5-flash",
			AdminURL:     "https://aistudio.google.com/app/apikey",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://generativelanguage.googleapis.com/"},
		},
		Provider{
			Name:         "XAI",
			DisplayName:  "xAI",
			DefaultModel: "grok-3-mini",
			AdminURL:     "https://console.x.ai/",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.x.ai/v1/"},
		},
		Provider{
			Name:         "GROQ",
			DisplayName:  "Groq",
			DefaultModel: "llama-3.3-70b-versatile",
			AdminURL:     "https://console.groq.com/keys",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.groq.com/openai/v1/"},
		},
		Provider{
			Name:         "DEEPSEEK",
			DisplayName:  "DeepSeek",
			DefaultModel: "deepseek-chat",
			AdminURL:     "https://platform.deepseek.com/api_keys",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.deepseek.com/"},
		},
		Provider{
			Name:         "MISTRAL",
			DisplayName:  "Mistral",
			DefaultModel: "mistral-small-latest",
			AdminURL:     "https://console.mistral.ai/api-keys/",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.mistral.ai/v1/"},
		},
		Provider{
			Name:         "PERPLEXITY",
			DisplayName:  "Perplexity",
			DefaultModel: "sonar",
			AdminURL:     "https://www.perplexity.ai/settings/api",
			ModelSource:  ModelSourceManual,
			Endpoints:    []string{"https://api.perplexity.ai/"},
		},
		Provider{
			Name:         "TOGETHER",
			DisplayName:  "Together",
			DefaultModel: "meta-llama/Llama-3.3-70B-Instruct-Turbo",
			AdminURL:     "https://api.together.ai/settings/api-keys",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://api.together.xyz/v1/"},
		},
		Provider{
			Name:         "OPENROUTER",
			DisplayName:  "OpenRouter",
			DefaultModel: "openai/gpt-4o-mini",
			AdminURL:     "https://openrouter.ai/settings/keys",
			ModelSource:  ModelSourceRemote,
			Endpoints:    []string{"https://openrouter.ai/api/v1/"},
		},
	)
}

// IsValidModelSource reports whether s is a known model-source mode
func IsValidModelSource(s string) bool {
	return s == ModelSourceRemote || s == ModelSourceManual
}
