package models

import (
	"fmt"

	"aiswarm/internal/providers"
)

// Config is the live, in-memory configuration
type Config struct {
	Providers  map[string]ProviderSetting `json:"providers"`
	Agents     []Agent                    `json:"agents"`
	Flocks     []Flock                    `json:"flocks"`
	Swarms     []Swarm                    `json:"swarms"`
	Parameters []Parameters               `json:"parameters"`
	Prompts    []Prompt                   `json:"prompts"`
	Endpoints  map[string][]Endpoint      `json:"endpoints"`
}

// NewConfig creates a configuration with one default setting per catalog provider
func NewConfig(catalog *providers.Catalog) *Config {
	c := &Config{
		Providers: make(map[string]ProviderSetting),
		Endpoints: make(map[string][]Endpoint),
	}
	c.EnsureProviders(catalog)
	return c
}

// DefaultProviderSetting returns the catalog defaults for a provider.
// MANUAL providers start with their default model as the only listed model.
func DefaultProviderSetting(p providers.Provider) ProviderSetting {
	ps := ProviderSetting{
		ModelSource:  p.ModelSource,
		DefaultModel: p.DefaultModel,
		AdminURL:     p.AdminURL,
	}
	if p.ModelSource == providers.ModelSourceManual && p.DefaultModel != "" {
		ps.ManualModels = []string{p.DefaultModel}
	}
	return ps
}

// EnsureProviders adds a default setting for every catalog provider that is missing one
func (c *Config) EnsureProviders(catalog *providers.Catalog) {
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderSetting)
	}
	if c.Endpoints == nil {
		c.Endpoints = make(map[string][]Endpoint)
	}
	for _, name := range catalog.Names() {
		if _, ok := c.Providers[name]; ok {
			continue
		}
		p, _ := catalog.Lookup(name)
		c.Providers[name] = DefaultProviderSetting(p)
	}
}

// ResetProvider restores a provider's settings to the catalog defaults.
// Providers are never deleted.
func (c *Config) ResetProvider(name string, catalog *providers.Catalog) error {
	p, err := catalog.Get(name)
	if err != nil {
		return err
	}
	c.Providers[name] = DefaultProviderSetting(p)
	delete(c.Endpoints, name)
	return nil
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := &Config{
		Providers: make(map[string]ProviderSetting, len(c.Providers)),
		Endpoints: make(map[string][]Endpoint, len(c.Endpoints)),
	}
	for name, ps := range c.Providers {
		ps.ManualModels = cloneStrings(ps.ManualModels)
		ps.ParametersIDs = cloneStrings(ps.ParametersIDs)
		out.Providers[name] = ps
	}
	for name, eps := range c.Endpoints {
		out.Endpoints[name] = append([]Endpoint(nil), eps...)
	}
	for _, a := range c.Agents {
		a.ParametersIDs = cloneStrings(a.ParametersIDs)
		out.Agents = append(out.Agents, a)
	}
	for _, f := range c.Flocks {
		f.AgentIDs = cloneStrings(f.AgentIDs)
		f.ParametersIDs = cloneStrings(f.ParametersIDs)
		out.Flocks = append(out.Flocks, f)
	}
	for _, s := range c.Swarms {
		s.Members = append([]SwarmMember(nil), s.Members...)
		s.ParametersIDs = cloneStrings(s.ParametersIDs)
		out.Swarms = append(out.Swarms, s)
	}
	for _, p := range c.Parameters {
		p.Overlay = p.Overlay.clone()
		out.Parameters = append(out.Parameters, p)
	}
	out.Prompts = append(out.Prompts, c.Prompts...)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// AddAgent appends an agent, minting an id when it has none.
// Agent names must be unique and the provider must be known.
func (c *Config) AddAgent(a Agent, catalog *providers.Catalog) (Agent, error) {
	if a.Name == "" {
		return Agent{}, fmt.Errorf("agent name cannot be empty")
	}
	if _, ok := catalog.Lookup(a.Provider); !ok {
		return Agent{}, fmt.Errorf("unknown provider: %s", a.Provider)
	}
	if _, exists := c.AgentByName(a.Name); exists {
		return Agent{}, fmt.Errorf("agent '%s' already exists", a.Name)
	}
	if a.ID == "" {
		a.ID = NewID()
	}
	c.Agents = append(c.Agents, a)
	return a, nil
}

// RemoveAgent deletes an agent by id.
// Flocks and prompts referencing it are left untouched.
func (c *Config) RemoveAgent(id string) error {
	for i, a := range c.Agents {
		if a.ID == id {
			c.Agents = append(c.Agents[:i], c.Agents[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("agent '%s' does not exist", id)
}

// ClearAgents removes all agents
func (c *Config) ClearAgents() int {
	n := len(c.Agents)
	c.Agents = nil
	return n
}

// AddFlock appends a flock, minting an id when it has none
func (c *Config) AddFlock(f Flock) Flock {
	if f.ID == "" {
		f.ID = NewID()
	}
	c.Flocks = append(c.Flocks, f)
	return f
}

// AddSwarm appends a swarm, minting an id when it has none
func (c *Config) AddSwarm(s Swarm) Swarm {
	if s.ID == "" {
		s.ID = NewID()
	}
	c.Swarms = append(c.Swarms, s)
	return s
}

// AddParameters appends a preset, minting an id when it has none
func (c *Config) AddParameters(p Parameters) Parameters {
	if p.ID == "" {
		p.ID = NewID()
	}
	c.Parameters = append(c.Parameters, p)
	return p
}

// RemoveFlock deletes a flock by id
func (c *Config) RemoveFlock(id string) error {
	var ok bool
	if c.Flocks, ok = removeByID(c.Flocks, id, func(f Flock) string { return f.ID }); !ok {
		return fmt.Errorf("flock '%s' does not exist", id)
	}
	return nil
}

// RemoveSwarm deletes a swarm by id
func (c *Config) RemoveSwarm(id string) error {
	var ok bool
	if c.Swarms, ok = removeByID(c.Swarms, id, func(s Swarm) string { return s.ID }); !ok {
		return fmt.Errorf("swarm '%s' does not exist", id)
	}
	return nil
}

// RemoveParameters deletes a preset by id.
// References to it are left in place and skipped when merging.
func (c *Config) RemoveParameters(id string) error {
	var ok bool
	if c.Parameters, ok = removeByID(c.Parameters, id, func(p Parameters) string { return p.ID }); !ok {
		return fmt.Errorf("parameter preset '%s' does not exist", id)
	}
	return nil
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i, item := range items {
		if idOf(item) == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// AddPrompt appends a prompt; prompt names must be unique
func (c *Config) AddPrompt(p Prompt) (Prompt, error) {
	if _, exists := c.PromptByName(p.Name); exists {
		return Prompt{}, fmt.Errorf("prompt '%s' already exists", p.Name)
	}
	if p.ID == "" {
		p.ID = NewID()
	}
	c.Prompts = append(c.Prompts, p)
	return p, nil
}

// APIKeyCount returns the number of providers with a non-empty API key
func (c *Config) APIKeyCount() int {
	n := 0
	for _, ps := range c.Providers {
		if ps.APIKey != "" {
			n++
		}
	}
	return n
}
