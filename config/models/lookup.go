package models

import (
	"strings"
	"time"

	"aiswarm/internal/providers"
)

// Agent returns the agent with the given id
func (c *Config) Agent(id string) (Agent, bool) {
	for _, a := range c.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}

// AgentByName returns the agent with the given display name
func (c *Config) AgentByName(name string) (Agent, bool) {
	for _, a := range c.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return Agent{}, false
}

// Flock returns the flock with the given id
func (c *Config) Flock(id string) (Flock, bool) {
	for _, f := range c.Flocks {
		if f.ID == id {
			return f, true
		}
	}
	return Flock{}, false
}

// FlockByName returns the first flock with the given name
func (c *Config) FlockByName(name string) (Flock, bool) {
	for _, f := range c.Flocks {
		if f.Name == name {
			return f, true
		}
	}
	return Flock{}, false
}

// SwarmByName returns the first swarm with the given name
func (c *Config) SwarmByName(name string) (Swarm, bool) {
	for _, s := range c.Swarms {
		if s.Name == name {
			return s, true
		}
	}
	return Swarm{}, false
}

// Swarm returns the swarm with the given id
func (c *Config) Swarm(id string) (Swarm, bool) {
	for _, s := range c.Swarms {
		if s.ID == id {
			return s, true
		}
	}
	return Swarm{}, false
}

// Preset returns the parameter preset with the given id
func (c *Config) Preset(id string) (Parameters, bool) {
	for _, p := range c.Parameters {
		if p.ID == id {
			return p, true
		}
	}
	return Parameters{}, false
}

// Prompt returns the prompt with the given id
func (c *Config) Prompt(id string) (Prompt, bool) {
	for _, p := range c.Prompts {
		if p.ID == id {
			return p, true
		}
	}
	return Prompt{}, false
}

// PromptByName returns the prompt with the given name
func (c *Config) PromptByName(name string) (Prompt, bool) {
	for _, p := range c.Prompts {
		if p.Name == name {
			return p, true
		}
	}
	return Prompt{}, false
}

// Endpoint returns the endpoint with the given id from a provider's list
func (c *Config) Endpoint(provider, id string) (Endpoint, bool) {
	for _, e := range c.Endpoints[provider] {
		if e.ID == id {
			return e, true
		}
	}
	return Endpoint{}, false
}

// FlockAgents resolves a flock's agent ids, skipping the ones that no longer exist
func (c *Config) FlockAgents(f Flock) []Agent {
	var agents []Agent
	for _, id := range f.AgentIDs {
		if a, ok := c.Agent(id); ok {
			agents = append(agents, a)
		}
	}
	return agents
}

// EffectiveAPIKey returns the agent's own key, or its provider's key
func (c *Config) EffectiveAPIKey(a Agent) string {
	if a.APIKey != "" {
		return a.APIKey
	}
	return c.Providers[a.Provider].APIKey
}

// EffectiveModel returns the agent's model, the provider's default model, or the catalog default
func (c *Config) EffectiveModel(a Agent, catalog *providers.Catalog) string {
	if a.Model != "" {
		return a.Model
	}
	if m := c.Providers[a.Provider].DefaultModel; m != "" {
		return m
	}
	if p, ok := catalog.Lookup(a.Provider); ok {
		return p.DefaultModel
	}
	return ""
}

// DefaultEndpoint returns the provider's flagged endpoint, or the first one
func (c *Config) DefaultEndpoint(provider string) (Endpoint, bool) {
	eps := c.Endpoints[provider]
	if len(eps) == 0 {
		return Endpoint{}, false
	}
	for _, e := range eps {
		if e.IsDefault {
			return e, true
		}
	}
	return eps[0], true
}

// EffectiveEndpointURL returns the agent's endpoint, the provider's default endpoint,
// or the catalog's built-in URL
func (c *Config) EffectiveEndpointURL(a Agent, catalog *providers.Catalog) string {
	if a.EndpointID != "" {
		if e, ok := c.Endpoint(a.Provider, a.EndpointID); ok {
			return e.URL
		}
	}
	if e, ok := c.DefaultEndpoint(a.Provider); ok {
		return e.URL
	}
	if p, ok := catalog.Lookup(a.Provider); ok {
		return p.BuiltinURL()
	}
	return ""
}

// SetEndpoints replaces a provider's endpoint list.
// Only the first flagged endpoint keeps its default flag.
func (c *Config) SetEndpoints(provider string, endpoints []Endpoint) {
	if len(endpoints) == 0 {
		delete(c.Endpoints, provider)
		return
	}
	out := make([]Endpoint, len(endpoints))
	seenDefault := false
	for i, e := range endpoints {
		if e.ID == "" {
			e.ID = NewID()
		}
		if e.IsDefault {
			if seenDefault {
				e.IsDefault = false
			}
			seenDefault = true
		}
		out[i] = e
	}
	if c.Endpoints == nil {
		c.Endpoints = make(map[string][]Endpoint)
	}
	c.Endpoints[provider] = out
}

// SetDefaultEndpoint flags one endpoint as the provider's default and clears the rest
func (c *Config) SetDefaultEndpoint(provider, id string) bool {
	if _, ok := c.Endpoint(provider, id); !ok {
		return false
	}
	eps := c.Endpoints[provider]
	for i := range eps {
		eps[i].IsDefault = eps[i].ID == id
	}
	return true
}

// PromptVars are the values substituted into prompt templates
type PromptVars struct {
	Model    string
	Provider string
	Agent    string
	Swarm    string
	Now      time.Time
}

// ExpandPrompt substitutes the @MODEL@, @PROVIDER@, @AGENT@, @SWARM@ and @NOW@ tokens
func ExpandPrompt(text string, vars PromptVars) string {
	now := vars.Now
	if now.IsZero() {
		now = time.Now()
	}
	r := strings.NewReplacer(
		"@MODEL@", vars.Model,
		"@PROVIDER@", vars.Provider,
		"@AGENT@", vars.Agent,
		"@SWARM@", vars.Swarm,
		"@NOW@", now.Format("2006-01-02 15:04"),
	)
	return r.Replace(text)
}
