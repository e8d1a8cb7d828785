package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"aiswarm/config/models"
	"aiswarm/internal/logging"
	"aiswarm/internal/pricing"
	"aiswarm/internal/providers"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(store pricing.Store) *Service {
	return NewService(providers.Default(), store, logging.Nop())
}

// sampleConfig touches every kind of entity the bundle carries
func sampleConfig() *models.Config {
	cfg := models.NewConfig(providers.Default())

	openai := cfg.Providers["OPENAI"]
	openai.APIKey = "sk-openai"
	openai.ModelSource = providers.ModelSourceManual
	openai.ManualModels = []string{"gpt-4o", "o3"}
	openai.ModelListURL = "https://models.example.com/list"
	openai.ParametersIDs = []string{"p-base"}
	cfg.Providers["OPENAI"] = openai

	anthropic := cfg.Providers["ANTHROPIC"]
	anthropic.APIKey = "sk-ant"
	cfg.Providers["ANTHROPIC"] = anthropic

	cfg.Parameters = []models.Parameters{
		{ID: "p-base", Name: "base", Overlay: models.Overlay{
			Temperature:   models.Float64(0.7),
			MaxTokens:     models.Int(1024),
			StopSequences: []string{"END"},
			SystemPrompt:  models.String("be brief"),
		}},
		{ID: "p-search", Name: "search", Overlay: models.Overlay{
			SearchEnabled:   true,
			ReturnCitations: true,
			SearchRecency:   models.String("week"),
		}},
	}

	cfg.SetEndpoints("OPENAI", []models.Endpoint{
		{ID: "e-proxy", Name: "proxy", URL: "https://proxy.example.com/v1/", IsDefault: true},
		{ID: "e-direct", Name: "direct", URL: "https://api.openai.com/v1/"},
	})

	cfg.Agents = []models.Agent{
		{ID: "a-writer", Name: "writer", Provider: "OPENAI", Model: "gpt-4o", EndpointID: "e-proxy", ParametersIDs: []string{"p-base", "p-search"}},
		{ID: "a-critic", Name: "critic", Provider: "ANTHROPIC", APIKey: "sk-own"},
	}
	cfg.Flocks = []models.Flock{
		{ID: "f-team", Name: "team", AgentIDs: []string{"a-writer", "a-critic"}, ParametersIDs: []string{"p-base"}},
	}
	cfg.Swarms = []models.Swarm{
		{ID: "s-crowd", Name: "crowd", Members: []models.SwarmMember{
			{Provider: "OPENAI", Model: "gpt-4o"},
			{Provider: "GOOGLE", Model: "gemini-2.5-flash"},
		}, ParametersIDs: []string{"p-search"}},
	}
	cfg.Prompts = []models.Prompt{
		{ID: "pr-intro", Name: "intro", AgentID: "a-writer", PromptText: "You are @AGENT@ running @MODEL@"},
	}
	return cfg
}

func TestRoundTrip(t *testing.T) {
	source := pricing.NewMemoryStore()
	require.NoError(t, source.PutAll([]models.PricingOverride{
		{Provider: "OPENAI", Model: "gpt-4o", PromptPrice: 2.5e-6, CompletionPrice: 1e-5},
		{Provider: "GROQ", Model: "llama:70b", PromptPrice: 5.9e-7, CompletionPrice: 7.9e-7},
	}))
	keys := models.AuxKeys{HuggingFace: "hf-key", OpenRouter: "or-key"}
	original := sampleConfig()

	data, err := testService(source).Export(original, keys)
	require.NoError(t, err)

	target := pricing.NewMemoryStore()
	result, err := testService(target).Import(data, models.NewConfig(providers.Default()))
	require.NoError(t, err)

	assert.Equal(t, original, result.Config)
	assert.Equal(t, keys, result.Keys)

	want, _ := source.All()
	got, _ := target.All()
	assert.Equal(t, want, got)

	assert.Equal(t, Summary{Agents: 2, APIKeys: 2, PricingOverrides: 2, Endpoints: 2}, result.Summary)
}

func TestImportIsIdempotent(t *testing.T) {
	data, err := testService(nil).Export(sampleConfig(), models.AuxKeys{})
	require.NoError(t, err)

	svc := testService(pricing.NewMemoryStore())
	once, err := svc.Import(data, models.NewConfig(providers.Default()))
	require.NoError(t, err)
	twice, err := svc.Import(data, once.Config)
	require.NoError(t, err)

	assert.Equal(t, once.Config, twice.Config)
	assert.Equal(t, once.Summary, twice.Summary)
}

func TestImportLegacyDocument(t *testing.T) {
	raw := `{
		"version": 7,
		"agents": [
			{"id": "a1", "name": "one", "provider": "OPENAI", "model": "gpt-4o", "apiKey": ""},
			{"id": "a2", "name": "two", "provider": "MISTRAL", "model": "", "apiKey": ""}
		],
		"swarms": [{"id": "g1", "name": "team", "agentIds": ["a1", "a2"]}]
	}`

	result, err := testService(nil).Import([]byte(raw), models.NewConfig(providers.Default()))
	require.NoError(t, err)

	require.Len(t, result.Config.Flocks, 1)
	assert.Equal(t, "team", result.Config.Flocks[0].Name)
	assert.Equal(t, []string{"a1", "a2"}, result.Config.Flocks[0].AgentIDs)
	assert.Empty(t, result.Config.Swarms)
}

func TestImportDropsUnknownProviderAgent(t *testing.T) {
	raw := `{
		"version": 16,
		"agents": [
			{"id": "a1", "name": "one", "provider": "OPENAI", "model": "", "apiKey": ""},
			{"id": "a2", "name": "two", "provider": "NOT_A_PROVIDER", "model": "", "apiKey": ""}
		]
	}`

	result, err := testService(nil).Import([]byte(raw), models.NewConfig(providers.Default()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Agents)
	assert.Equal(t, "one", result.Config.Agents[0].Name)
}

func TestImportFailureLeavesStateUntouched(t *testing.T) {
	current := sampleConfig()
	before, err := json.Marshal(current)
	require.NoError(t, err)

	store := pricing.NewMemoryStore()
	for _, input := range []string{"", "{", `{"version": 99, "manualPricing": [{"key": "OPENAI:x", "promptPrice": 1, "completionPrice": 1}]}`} {
		result, err := testService(store).Import([]byte(input), current)
		assert.Error(t, err)
		assert.Nil(t, result)
	}

	after, err := json.Marshal(current)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	all, _ := store.All()
	assert.Empty(t, all)
}

func TestImportRejectsVersionsOutsideRange(t *testing.T) {
	current := sampleConfig()
	before, _ := json.Marshal(current)
	svc := testService(nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("out of range versions are rejected", prop.ForAll(
		func(version int) bool {
			doc := fmt.Sprintf(`{"version": %d, "agents": [{"id": "x", "name": "x", "provider": "OPENAI", "model": "", "apiKey": ""}]}`, version)
			_, err := svc.Import([]byte(doc), current)
			after, _ := json.Marshal(current)
			return errors.Is(err, ErrUnsupportedVersion) && string(after) == string(before)
		},
		gen.OneGenOf(
			gen.IntRange(-100, MinSupportedVersion-1),
			gen.IntRange(CurrentVersion+1, 1000),
		),
	))

	properties.TestingRun(t)
}

func genAgentFields() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.OneConstOf("OPENAI", "ANTHROPIC", "GOOGLE", "XAI", "GROQ"),
		gen.AlphaString(),
		gen.Bool(),
		gen.PtrOf(gen.Float64Range(0, 2)),
	)
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("export then import reproduces the configuration", prop.ForAll(
		func(fields [][]interface{}, apiKey string) bool {
			cfg := models.NewConfig(providers.Default())
			openai := cfg.Providers["OPENAI"]
			openai.APIKey = apiKey
			cfg.Providers["OPENAI"] = openai

			var flock models.Flock
			flock.ID, flock.Name = "f", "all"
			for i, f := range fields {
				agent := models.Agent{
					ID:       fmt.Sprintf("a%d", i),
					Name:     fmt.Sprintf("agent-%d-%s", i, f[0].(string)),
					Provider: f[1].(string),
					Model:    f[2].(string),
				}
				if f[3].(bool) {
					temperature, _ := f[4].(*float64)
					preset := models.Parameters{
						ID:      fmt.Sprintf("p%d", i),
						Name:    agent.Name,
						Overlay: models.Overlay{Temperature: temperature},
					}
					cfg.Parameters = append(cfg.Parameters, preset)
					agent.ParametersIDs = []string{preset.ID}
				}
				cfg.Agents = append(cfg.Agents, agent)
				flock.AgentIDs = append(flock.AgentIDs, agent.ID)
			}
			cfg.Flocks = []models.Flock{flock}

			svc := testService(nil)
			data, err := svc.Export(cfg, models.AuxKeys{})
			if err != nil {
				return false
			}
			result, err := svc.Import(data, models.NewConfig(providers.Default()))
			if err != nil {
				return false
			}
			return assert.ObjectsAreEqual(cfg, result.Config)
		},
		gen.SliceOf(genAgentFields()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
