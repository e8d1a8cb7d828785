package bundle

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"aiswarm/config/models"
	"aiswarm/internal/logging"
	"aiswarm/internal/providers"
	"aiswarm/internal/pricing"
)

// Codec converts between the live configuration and the bundle document
type Codec struct {
	catalog  *providers.Catalog
	versions VersionRange
	log      *logging.Logger
}

// NewCodec creates a codec reading DefaultVersionRange
func NewCodec(catalog *providers.Catalog, log *logging.Logger) *Codec {
	return &Codec{catalog: catalog, versions: DefaultVersionRange, log: log.Sub("codec")}
}

// WithVersionRange returns a copy of the codec accepting the given range
func (c *Codec) WithVersionRange(r VersionRange) *Codec {
	cp := *c
	cp.versions = r
	return &cp
}

// Encode snapshots the configuration into a bundle tagged with the current version.
// Every provider is emitted; empty collections are left out.
func (c *Codec) Encode(cfg *models.Config, overrides []models.PricingOverride, keys models.AuxKeys) *Bundle {
	b := &Bundle{
		Version:   CurrentVersion,
		Providers: make(map[string]ProviderEntry, len(cfg.Providers)),
	}

	for name, ps := range cfg.Providers {
		b.Providers[name] = ProviderEntry{
			ModelSource:   ps.ModelSource,
			ManualModels:  append([]string{}, ps.ManualModels...),
			APIKey:        ps.APIKey,
			DefaultModel:  optional(ps.DefaultModel),
			AdminURL:      optional(ps.AdminURL),
			ModelListURL:  optional(ps.ModelListURL),
			ParametersIDs: nonEmpty(ps.ParametersIDs),
		}
	}

	for _, a := range cfg.Agents {
		b.Agents = append(b.Agents, AgentEntry{
			ID:            a.ID,
			Name:          a.Name,
			Provider:      a.Provider,
			Model:         a.Model,
			APIKey:        a.APIKey,
			ParametersIDs: nonEmpty(a.ParametersIDs),
			EndpointID:    optional(a.EndpointID),
		})
	}

	for _, f := range cfg.Flocks {
		b.Flocks = append(b.Flocks, FlockEntry{
			ID:            f.ID,
			Name:          f.Name,
			AgentIDs:      append([]string{}, f.AgentIDs...),
			ParametersIDs: nonEmpty(f.ParametersIDs),
		})
	}

	for _, s := range cfg.Swarms {
		members := make([]MemberEntry, 0, len(s.Members))
		for _, m := range s.Members {
			members = append(members, MemberEntry{Provider: m.Provider, Model: m.Model})
		}
		b.Swarms = append(b.Swarms, SwarmEntry{
			ID:            s.ID,
			Name:          s.Name,
			Members:       members,
			ParametersIDs: nonEmpty(s.ParametersIDs),
		})
	}

	for _, p := range cfg.Parameters {
		b.Parameters = append(b.Parameters, ParametersEntry{ID: p.ID, Name: p.Name, Overlay: p.Overlay})
	}

	for _, p := range cfg.Prompts {
		b.Prompts = append(b.Prompts, PromptEntry{ID: p.ID, Name: p.Name, AgentID: p.AgentID, PromptText: p.PromptText})
	}

	for _, o := range overrides {
		b.ManualPricing = append(b.ManualPricing, PricingEntry{
			Key:             pricing.FormatKey(o.Provider, o.Model),
			PromptPrice:     o.PromptPrice,
			CompletionPrice: o.CompletionPrice,
		})
	}

	names := make([]string, 0, len(cfg.Endpoints))
	for name, eps := range cfg.Endpoints {
		if len(eps) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		group := EndpointGroup{Provider: name}
		for _, e := range cfg.Endpoints[name] {
			group.Endpoints = append(group.Endpoints, EndpointEntry{ID: e.ID, Name: e.Name, URL: e.URL, IsDefault: e.IsDefault})
		}
		b.ProviderEndpoints = append(b.ProviderEndpoints, group)
	}

	b.HuggingFaceAPIKey = optional(keys.HuggingFace)
	b.OpenRouterAPIKey = optional(keys.OpenRouter)
	return b
}

// Marshal renders a bundle as indented JSON.
// It only fails on non-finite numbers.
func Marshal(b *Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize bundle: %w", err)
	}
	return data, nil
}

// top-level fields and the JSON kind they must have when present
var topLevelKinds = map[string]string{
	"providers":         "object",
	"agents":            "array",
	"flocks":            "array",
	"swarms":            "array",
	"parameters":        "array",
	"aiPrompts":         "array",
	"manualPricing":     "array",
	"providerEndpoints": "array",
	"huggingFaceApiKey": "string",
	"openRouterApiKey":  "string",
}

// Decode parses raw text into a bundle.
// Whole-document problems return an *ImportError; a bad entity is dropped and logged.
// Provider names are checked here: unknown provider keys and endpoint groups are
// skipped, and agents or swarms naming an unknown provider are dropped whole.
func (c *Codec) Decode(data []byte) (*Bundle, error) {
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return nil, &ImportError{Kind: KindEmptyInput}
	}
	if !gjson.Valid(raw) {
		return nil, malformed("not valid JSON")
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, malformed("top level is not an object")
	}

	version, err := readVersion(root)
	if err != nil {
		return nil, err
	}
	if !c.versions.Contains(version) {
		return nil, &ImportError{Kind: KindUnsupportedVersion, Version: version}
	}

	if Sniff(raw) == FormatLegacy {
		c.log.Info().Int("version", version).Msg("legacy grouping names detected, adapting")
		raw, err = AdaptLegacy(raw)
		if err != nil {
			return nil, malformed("adapting legacy document: %v", err)
		}
		root = gjson.Parse(raw)
		version = int(root.Get("version").Int())
	}

	for field, kind := range topLevelKinds {
		if v := root.Get(field); present(v) && kindOf(v) != kind {
			return nil, malformed("%s must be a JSON %s", field, kind)
		}
	}

	b := &Bundle{Version: version, Providers: make(map[string]ProviderEntry)}

	root.Get("providers").ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, ok := c.catalog.Lookup(name); !ok {
			c.log.Warn().Str("provider", name).Msg("skipping unknown provider")
			return true
		}
		var entry ProviderEntry
		if c.decodeEntity("provider", value, &entry) {
			b.Providers[name] = entry
		}
		return true
	})

	for _, value := range root.Get("agents").Array() {
		var entry AgentEntry
		if !c.decodeEntity("agent", value, &entry) {
			continue
		}
		if _, ok := c.catalog.Lookup(entry.Provider); !ok {
			c.log.Warn().Str("agent", entry.Name).Str("provider", entry.Provider).Msg("dropping agent with unknown provider")
			continue
		}
		b.Agents = append(b.Agents, entry)
	}

	for _, value := range root.Get("flocks").Array() {
		var entry FlockEntry
		if c.decodeEntity("flock", value, &entry) {
			b.Flocks = append(b.Flocks, entry)
		}
	}

	for _, value := range root.Get("swarms").Array() {
		var entry SwarmEntry
		if !c.decodeEntity("swarm", value, &entry) {
			continue
		}
		if provider, ok := c.unknownMember(entry); ok {
			c.log.Warn().Str("swarm", entry.Name).Str("provider", provider).Msg("dropping swarm with unknown member provider")
			continue
		}
		b.Swarms = append(b.Swarms, entry)
	}

	for _, value := range root.Get("parameters").Array() {
		var entry ParametersEntry
		if c.decodeEntity("parameters", value, &entry) {
			b.Parameters = append(b.Parameters, entry)
		}
	}

	for _, value := range root.Get("aiPrompts").Array() {
		var entry PromptEntry
		if c.decodeEntity("prompt", value, &entry) {
			b.Prompts = append(b.Prompts, entry)
		}
	}

	for _, value := range root.Get("manualPricing").Array() {
		var entry PricingEntry
		if c.decodeEntity("pricing", value, &entry) {
			b.ManualPricing = append(b.ManualPricing, entry)
		}
	}

	for _, value := range root.Get("providerEndpoints").Array() {
		var entry EndpointGroup
		if !c.decodeEntity("endpoint group", value, &entry) {
			continue
		}
		if _, ok := c.catalog.Lookup(entry.Provider); !ok {
			c.log.Warn().Str("provider", entry.Provider).Msg("skipping endpoints of unknown provider")
			continue
		}
		b.ProviderEndpoints = append(b.ProviderEndpoints, entry)
	}

	if v := root.Get("huggingFaceApiKey"); present(v) {
		b.HuggingFaceAPIKey = optional(v.Str)
	}
	if v := root.Get("openRouterApiKey"); present(v) {
		b.OpenRouterAPIKey = optional(v.Str)
	}

	return b, nil
}

func readVersion(root gjson.Result) (int, error) {
	v := root.Get("version")
	if !v.Exists() {
		return 0, malformed("missing version")
	}
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, malformed("version must be an integer")
	}
	return int(v.Int()), nil
}

// decodeEntity unmarshals one entity, logging and reporting false on failure
func (c *Codec) decodeEntity(kind string, value gjson.Result, dst any) bool {
	if !value.IsObject() {
		c.log.Warn().Str("kind", kind).Msg("dropping entry that is not an object")
		return false
	}
	if err := json.Unmarshal([]byte(value.Raw), dst); err != nil {
		c.log.Warn().Str("kind", kind).Str("id", value.Get("id").String()).Err(err).Msg("dropping undecodable entry")
		return false
	}
	return true
}

// unknownMember returns the first member provider missing from the catalog
func (c *Codec) unknownMember(s SwarmEntry) (string, bool) {
	for _, m := range s.Members {
		if _, ok := c.catalog.Lookup(m.Provider); !ok {
			return m.Provider, true
		}
	}
	return "", false
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "bool"
	}
	return "null"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}
