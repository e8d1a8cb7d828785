package pricing

import (
	"path/filepath"
	"testing"

	"aiswarm/config/models"
	"aiswarm/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key          string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{"OPENAI:gpt-4o", "OPENAI", "gpt-4o", false},
		{"GROQ:llama:70b", "GROQ", "llama:70b", false},
		{"OPENAI", "", "", true},
		{":gpt-4o", "", "", true},
		{"OPENAI:", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			provider, model, err := ParseKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, provider)
			assert.Equal(t, tt.wantModel, model)
			assert.Equal(t, tt.key, FormatKey(provider, model))
		})
	}
}

func testSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// exercise both implementations through the interface
func storeContract(t *testing.T, s Store) {
	t.Helper()

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.PutAll([]models.PricingOverride{
		{Provider: "OPENAI", Model: "gpt-4o", PromptPrice: 0.1, CompletionPrice: 0.2},
		{Provider: "ANTHROPIC", Model: "claude", PromptPrice: 0.3, CompletionPrice: 0.4},
	}))
	require.NoError(t, s.PutAll([]models.PricingOverride{
		{Provider: "OPENAI", Model: "gpt-4o", PromptPrice: 1, CompletionPrice: 2},
	}))

	all, err = s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ANTHROPIC", all[0].Provider)
	assert.Equal(t, 1.0, all[1].PromptPrice)

	o, ok, err := s.Get("OPENAI", "gpt-4o")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2.0, o.CompletionPrice)

	_, ok, err = s.Get("OPENAI", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete("OPENAI", "gpt-4o"))
	all, err = s.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, testSQLite(t))
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	s := testSQLite(t)
	require.NoError(t, s.migrate())

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pricing.db")

	s, err := OpenSQLite(path, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, s.PutAll([]models.PricingOverride{{Provider: "XAI", Model: "grok", PromptPrice: 5, CompletionPrice: 6}}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, logging.Nop())
	require.NoError(t, err)
	defer s.Close()

	o, ok, err := s.Get("XAI", "grok")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5.0, o.PromptPrice)
}
