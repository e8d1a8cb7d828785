package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"aiswarm/config/models"
	"aiswarm/config/validation"
	"aiswarm/internal/logging"
	"aiswarm/internal/pricing"
	"aiswarm/internal/providers"
)

// ImportedPresetPrefix names presets synthesized from legacy inline agent parameters
const ImportedPresetPrefix = "Imported: "

// namespace for ids derived during import, so re-importing a bundle yields the same ids
var importNamespace = uuid.MustParse("6f1d8a52-3c5e-4b8e-9a0f-2f5e7c1d9b34")

// Summary counts what an import brought in
type Summary struct {
	Agents           int
	APIKeys          int // providers with a non-empty key after the import
	PricingOverrides int
	Endpoints        int
}

func (s Summary) String() string {
	return fmt.Sprintf("Imported %d agents, %d API keys, %d pricing overrides, %d endpoints",
		s.Agents, s.APIKeys, s.PricingOverrides, s.Endpoints)
}

// Reconciler merges a decoded bundle into a configuration
type Reconciler struct {
	catalog   *providers.Catalog
	store     pricing.Store
	validator *validation.Validator
	log       *logging.Logger
}

// NewReconciler creates a reconciler writing pricing overrides to store.
// A nil store discards them.
func NewReconciler(catalog *providers.Catalog, store pricing.Store, log *logging.Logger) *Reconciler {
	return &Reconciler{
		catalog:   catalog,
		store:     store,
		validator: validation.NewValidator(),
		log:       log.Sub("reconcile"),
	}
}

// Reconcile applies a decoded bundle to a copy of current and returns the copy.
// Provider names in b are expected to have been checked by Decode.
// Agents, flocks, swarms, presets and prompts are replaced wholesale;
// providers and endpoints are overwritten per provider named in the bundle.
// Invalid items are dropped without failing the import.
func (r *Reconciler) Reconcile(b *Bundle, current *models.Config) (*models.Config, Summary) {
	cfg := current.Clone()
	cfg.EnsureProviders(r.catalog)

	agents, synthesized := r.reconcileAgents(b.Agents)
	flocks := r.reconcileFlocks(b.Flocks)
	swarms := r.reconcileSwarms(b.Swarms)
	presets := append(r.reconcilePresets(b.Parameters), synthesized...)
	prompts := r.reconcilePrompts(b.Prompts)

	cfg.Agents = agents
	cfg.Flocks = flocks
	cfg.Swarms = swarms
	cfg.Parameters = presets
	cfg.Prompts = prompts

	r.reconcileProviders(cfg, b.Providers)
	pricingCount := r.writePricing(b.ManualPricing)
	endpointCount := r.reconcileEndpoints(cfg, b.ProviderEndpoints)

	return cfg, Summary{
		Agents:           len(agents),
		APIKeys:          cfg.APIKeyCount(),
		PricingOverrides: pricingCount,
		Endpoints:        endpointCount,
	}
}

func derivedID(parts ...string) string {
	return uuid.NewSHA1(importNamespace, []byte(strings.Join(parts, "\x00"))).String()
}

// entityID keeps a bundle id, or derives one from the entity's kind, position and name
func entityID(id, kind string, index int, name string) string {
	if id != "" {
		return id
	}
	return derivedID(kind, strconv.Itoa(index), name)
}

// reconcileAgents also returns the presets synthesized from legacy inline parameters
func (r *Reconciler) reconcileAgents(entries []AgentEntry) ([]models.Agent, []models.Parameters) {
	var agents []models.Agent
	var synthesized []models.Parameters
	names := make(map[string]bool)

	for i, e := range entries {
		agent := models.Agent{
			ID:       entityID(e.ID, "agent", i, e.Name),
			Name:     e.Name,
			Provider: e.Provider,
			Model:    e.Model,
			APIKey:   e.APIKey,
		}
		if e.EndpointID != nil {
			agent.EndpointID = *e.EndpointID
		}
		if err := r.validator.ValidateAgent(agent); err != nil {
			r.log.Warn().Str("agent", e.Name).Err(err).Msg("dropping agent")
			continue
		}
		if names[agent.Name] {
			r.log.Warn().Str("agent", e.Name).Msg("dropping agent with duplicate name")
			continue
		}
		names[agent.Name] = true

		switch {
		case e.ParametersIDs != nil:
			agent.ParametersIDs = append([]string(nil), e.ParametersIDs...)
		case e.Parameters != nil && !e.Parameters.IsEmpty():
			preset := models.Parameters{
				ID:      derivedID("imported-parameters", agent.ID),
				Name:    ImportedPresetPrefix + agent.Name,
				Overlay: *e.Parameters,
			}
			synthesized = append(synthesized, preset)
			agent.ParametersIDs = []string{preset.ID}
		}

		agents = append(agents, agent)
	}
	return agents, synthesized
}

// presetIDs prefers the list field and falls back to the legacy single id
func presetIDs(list []string, single *string) []string {
	if list != nil {
		return append([]string(nil), list...)
	}
	if single != nil && *single != "" {
		return []string{*single}
	}
	return nil
}

func (r *Reconciler) reconcileFlocks(entries []FlockEntry) []models.Flock {
	var flocks []models.Flock
	for i, e := range entries {
		flocks = append(flocks, models.Flock{
			ID:            entityID(e.ID, "flock", i, e.Name),
			Name:          e.Name,
			AgentIDs:      append([]string(nil), e.AgentIDs...),
			ParametersIDs: presetIDs(e.ParametersIDs, e.ParametersID),
		})
	}
	return flocks
}

func (r *Reconciler) reconcileSwarms(entries []SwarmEntry) []models.Swarm {
	var swarms []models.Swarm
	for i, e := range entries {
		var members []models.SwarmMember
		for _, m := range e.Members {
			members = append(members, models.SwarmMember{Provider: m.Provider, Model: m.Model})
		}
		swarms = append(swarms, models.Swarm{
			ID:            entityID(e.ID, "swarm", i, e.Name),
			Name:          e.Name,
			Members:       members,
			ParametersIDs: presetIDs(e.ParametersIDs, e.ParametersID),
		})
	}
	return swarms
}

func (r *Reconciler) reconcilePresets(entries []ParametersEntry) []models.Parameters {
	var presets []models.Parameters
	for i, e := range entries {
		presets = append(presets, models.Parameters{ID: entityID(e.ID, "parameters", i, e.Name), Name: e.Name, Overlay: e.Overlay})
	}
	return presets
}

func (r *Reconciler) reconcilePrompts(entries []PromptEntry) []models.Prompt {
	var prompts []models.Prompt
	names := make(map[string]bool)
	for i, e := range entries {
		if e.Name == "" || names[e.Name] {
			r.log.Warn().Str("prompt", e.Name).Msg("dropping prompt with empty or duplicate name")
			continue
		}
		names[e.Name] = true
		prompts = append(prompts, models.Prompt{
			ID:         entityID(e.ID, "prompt", i, e.Name),
			Name:       e.Name,
			AgentID:    e.AgentID,
			PromptText: e.PromptText,
		})
	}
	return prompts
}

func (r *Reconciler) reconcileProviders(cfg *models.Config, entries map[string]ProviderEntry) {
	for name, e := range entries {
		p, ok := r.catalog.Lookup(name)
		if !ok {
			continue
		}
		ps := cfg.Providers[name]

		ps.ModelSource = e.ModelSource
		if !providers.IsValidModelSource(ps.ModelSource) {
			ps.ModelSource = p.ModelSource
		}
		ps.ManualModels = append([]string(nil), e.ManualModels...)
		ps.APIKey = e.APIKey
		if e.DefaultModel != nil {
			ps.DefaultModel = *e.DefaultModel
		}
		if e.AdminURL != nil {
			ps.AdminURL = *e.AdminURL
		}
		ps.ModelListURL = ""
		if e.ModelListURL != nil {
			ps.ModelListURL = *e.ModelListURL
		}
		if e.ParametersIDs != nil {
			ps.ParametersIDs = append([]string(nil), e.ParametersIDs...)
		}

		cfg.Providers[name] = ps
	}
}

// writePricing writes every valid override in one batch and returns how many were written
func (r *Reconciler) writePricing(entries []PricingEntry) int {
	if r.store == nil {
		return 0
	}
	var overrides []models.PricingOverride
	for _, e := range entries {
		provider, model, err := pricing.ParseKey(e.Key)
		if err != nil {
			r.log.Warn().Err(err).Msg("dropping pricing override")
			continue
		}
		if _, ok := r.catalog.Lookup(provider); !ok {
			r.log.Warn().Str("key", e.Key).Msg("dropping pricing override for unknown provider")
			continue
		}
		overrides = append(overrides, models.PricingOverride{
			Provider:        provider,
			Model:           model,
			PromptPrice:     e.PromptPrice,
			CompletionPrice: e.CompletionPrice,
		})
	}
	if len(overrides) == 0 {
		return 0
	}
	if err := r.store.PutAll(overrides); err != nil {
		r.log.Error().Int("count", len(overrides)).Err(err).Msg("failed to write pricing overrides")
		return 0
	}
	return len(overrides)
}

func (r *Reconciler) reconcileEndpoints(cfg *models.Config, groups []EndpointGroup) int {
	count := 0
	for _, g := range groups {
		if _, ok := r.catalog.Lookup(g.Provider); !ok {
			continue
		}
		var endpoints []models.Endpoint
		for i, e := range g.Endpoints {
			endpoint := models.Endpoint{ID: entityID(e.ID, "endpoint:"+g.Provider, i, e.Name), Name: e.Name, URL: e.URL, IsDefault: e.IsDefault}
			if err := r.validator.ValidateEndpoint(endpoint); err != nil {
				r.log.Warn().Str("provider", g.Provider).Str("endpoint", e.Name).Err(err).Msg("dropping endpoint")
				continue
			}
			endpoints = append(endpoints, endpoint)
		}
		cfg.SetEndpoints(g.Provider, endpoints)
		count += len(endpoints)
	}
	return count
}
