package bundle

import (
	"errors"
	"strings"
	"testing"

	"aiswarm/config/models"
	"aiswarm/internal/logging"
	"aiswarm/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testCodec() *Codec {
	return NewCodec(providers.Default(), logging.Nop())
}

func TestDecodeAbortKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyInput},
		{"whitespace", "  \n\t", ErrEmptyInput},
		{"truncated", `{"version": 16`, ErrMalformedDocument},
		{"array at top level", `[]`, ErrMalformedDocument},
		{"missing version", `{"providers": {}}`, ErrMalformedDocument},
		{"string version", `{"version": "16"}`, ErrMalformedDocument},
		{"fractional version", `{"version": 15.5}`, ErrMalformedDocument},
		{"too old", `{"version": 2}`, ErrUnsupportedVersion},
		{"too new", `{"version": 17}`, ErrUnsupportedVersion},
		{"agents not an array", `{"version": 16, "agents": {}}`, ErrMalformedDocument},
		{"providers not an object", `{"version": 16, "providers": []}`, ErrMalformedDocument},
		{"key not a string", `{"version": 16, "openRouterApiKey": 3}`, ErrMalformedDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := testCodec().Decode([]byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			var importErr *ImportError
			require.True(t, errors.As(err, &importErr))
		})
	}
}

func TestDecodeUnsupportedVersionCarriesVersion(t *testing.T) {
	_, err := testCodec().Decode([]byte(`{"version": 99}`))

	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, KindUnsupportedVersion, importErr.Kind)
	assert.Equal(t, 99, importErr.Version)
	assert.Contains(t, err.Error(), "unsupported version 99")
}

func TestDecodeVersionBoundaries(t *testing.T) {
	for _, v := range []string{"3", "16"} {
		_, err := testCodec().Decode([]byte(`{"version": ` + v + `}`))
		assert.NoError(t, err, "version %s", v)
	}
}

func TestDecodeCustomVersionRange(t *testing.T) {
	codec := testCodec().WithVersionRange(VersionRange{Min: 10, Max: 12})

	_, err := codec.Decode([]byte(`{"version": 9}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	_, err = codec.Decode([]byte(`{"version": 12}`))
	assert.NoError(t, err)
}

func TestDecodeNullsAreAbsent(t *testing.T) {
	b, err := testCodec().Decode([]byte(`{"version": 16, "agents": null, "providers": null, "huggingFaceApiKey": null}`))
	require.NoError(t, err)
	assert.Empty(t, b.Agents)
	assert.Empty(t, b.Providers)
	assert.Nil(t, b.HuggingFaceAPIKey)
}

func TestDecodeToleratesBadEntities(t *testing.T) {
	raw := `{
		"version": 16,
		"providers": {
			"OPENAI": {"modelSource": "REMOTE", "manualModels": [], "apiKey": "sk-1"},
			"MYSTERY": {"modelSource": "REMOTE", "manualModels": [], "apiKey": "sk-2"},
			"GOOGLE": {"modelSource": "REMOTE", "manualModels": "oops", "apiKey": "sk-3"}
		},
		"agents": [
			{"id": "a1", "name": "good", "provider": "OPENAI", "model": "gpt-4o", "apiKey": ""},
			{"id": "a2", "name": "stranger", "provider": "MYSTERY", "model": "m", "apiKey": ""},
			{"id": "a3", "name": "broken", "provider": "OPENAI", "model": 5, "apiKey": ""},
			"not an object"
		],
		"swarms": [
			{"id": "s1", "name": "crowd", "members": [
				{"provider": "OPENAI", "model": "gpt-4o"},
				{"provider": "MYSTERY", "model": "m"}
			]},
			{"id": "s2", "name": "pair", "members": [
				{"provider": "OPENAI", "model": "gpt-4o"},
				{"provider": "GROQ", "model": "llama"}
			]}
		],
		"parameters": [
			{"id": "p1", "name": "ok", "temperature": 0.5},
			{"id": "p2", "name": "bad", "temperature": "hot"}
		],
		"providerEndpoints": [
			{"provider": "MYSTERY", "endpoints": [{"id": "e1", "name": "x", "url": "https://x/", "isDefault": true}]},
			{"provider": "OPENAI", "endpoints": [{"id": "e2", "name": "y", "url": "https://y/", "isDefault": true}]}
		]
	}`

	b, err := testCodec().Decode([]byte(raw))
	require.NoError(t, err)

	assert.Len(t, b.Providers, 1)
	assert.Contains(t, b.Providers, "OPENAI")

	require.Len(t, b.Agents, 1)
	assert.Equal(t, "good", b.Agents[0].Name)

	require.Len(t, b.Swarms, 1, "a swarm with an unknown member provider is dropped whole")
	assert.Equal(t, "s2", b.Swarms[0].ID)
	assert.Len(t, b.Swarms[0].Members, 2)

	require.Len(t, b.Parameters, 1)
	assert.Equal(t, 0.5, *b.Parameters[0].Temperature)

	require.Len(t, b.ProviderEndpoints, 1)
	assert.Equal(t, "OPENAI", b.ProviderEndpoints[0].Provider)
}

func TestDecodeLegacyDocument(t *testing.T) {
	raw := `{
		"version": 8,
		"swarms": [{"id": "g1", "name": "team", "agentIds": ["a1"], "parametersId": "p1"}],
		"flocks": [{"id": "s1", "name": "crowd", "members": [{"provider": "OPENAI", "model": "gpt"}]}]
	}`

	b, err := testCodec().Decode([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, b.Version)
	require.Len(t, b.Flocks, 1)
	assert.Equal(t, "g1", b.Flocks[0].ID)
	assert.Equal(t, []string{"p1"}, b.Flocks[0].ParametersIDs)
	require.Len(t, b.Swarms, 1)
	assert.Equal(t, "s1", b.Swarms[0].ID)
}

func TestDecodeLegacyVersionIsCheckedBeforeAdapting(t *testing.T) {
	_, err := testCodec().Decode([]byte(`{"version": 1, "swarms": [{"agentIds": []}]}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestEncodeShape(t *testing.T) {
	catalog := providers.Default()
	cfg := models.NewConfig(catalog)
	cfg.Flocks = []models.Flock{{ID: "f1", Name: "team", ParametersIDs: []string{"p1"}}}

	data, err := Marshal(testCodec().Encode(cfg, nil, models.AuxKeys{OpenRouter: "or-key"}))
	require.NoError(t, err)
	doc := gjson.ParseBytes(data)

	assert.Equal(t, int64(CurrentVersion), doc.Get("version").Int())
	assert.Len(t, doc.Get("providers").Map(), catalog.Len(), "every provider is emitted")
	assert.JSONEq(t, `[]`, doc.Get("providers.OPENAI.manualModels").Raw)

	for _, absent := range []string{"agents", "swarms", "parameters", "aiPrompts", "manualPricing", "providerEndpoints", "huggingFaceApiKey"} {
		assert.False(t, doc.Get(absent).Exists(), "%s should be omitted when empty", absent)
	}

	assert.JSONEq(t, `["p1"]`, doc.Get("flocks.0.parametersIds").Raw)
	assert.JSONEq(t, `[]`, doc.Get("flocks.0.agentIds").Raw)
	assert.False(t, strings.Contains(string(data), `"parametersId"`), "legacy single id is never written")
	assert.Equal(t, "or-key", doc.Get("openRouterApiKey").String())
}

func TestEncodePricingKeys(t *testing.T) {
	cfg := models.NewConfig(providers.Default())
	b := testCodec().Encode(cfg, []models.PricingOverride{
		{Provider: "GROQ", Model: "llama:70b", PromptPrice: 1e-7, CompletionPrice: 2e-7},
	}, models.AuxKeys{})

	require.Len(t, b.ManualPricing, 1)
	assert.Equal(t, "GROQ:llama:70b", b.ManualPricing[0].Key)
}
