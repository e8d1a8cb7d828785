package utils

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"aiswarm/internal/providers"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"unset", "", "****"},
		{"eight characters or fewer", "gsk_1234", "****"},
		{"anthropic key", "sk-ant-api03-abcdefXYZ9", "sk-a****XYZ9"},
		{"openrouter key", "sk-or-v1-0123456789abcdef", "sk-o****cdef"},
		{"hugging face token", "hf_AbCdEfGhIjKlMnOp", "hf_A****MnOp"},
		{"groq key", "gsk_0123456789", "gsk_****6789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskAPIKey(tt.key); got != tt.expected {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestMaskAPIKeyHidesTheMiddle(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("at most eight characters of a key are shown", prop.ForAll(
		func(secret string) bool {
			key := "sk-" + secret + "-9999"
			masked := MaskAPIKey(key)
			return len(strings.ReplaceAll(masked, "****", "")) <= 8 &&
				(len(secret) < 4 || !strings.Contains(masked, secret))
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestValidateURL(t *testing.T) {
	for _, name := range providers.Default().Names() {
		p, _ := providers.Default().Lookup(name)
		for _, u := range p.Endpoints {
			if !ValidateURL(u) {
				t.Errorf("built-in endpoint %s of %s does not validate", u, name)
			}
		}
	}

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{"local ollama", "http://localhost:11434/v1", true},
		{"local proxy by address", "http://127.0.0.1:4000", true},
		{"azure style query", "https://my-resource.openai.azure.com/openai?api-version=2024-06-01", true},
		{"unset", "", false},
		{"host without scheme", "api.openai.com/v1", false},
		{"scheme without host", "https://", false},
		{"websocket", "wss://realtime.example.com/v1", false},
		{"file", "file:///etc/aiswarm/endpoint", false},
		{"prose", "the openai endpoint", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateURL(tt.url); got != tt.expected {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	catalog := providers.Default()
	for _, name := range catalog.Names() {
		p, _ := catalog.Lookup(name)
		if u := p.BuiltinURL(); NormalizeURL(u) != u {
			t.Errorf("built-in endpoint %s of %s is not normalized", u, name)
		}
	}

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"unset", "", ""},
		{"api base without slash", "https://api.groq.com/openai/v1", "https://api.groq.com/openai/v1/"},
		{"bare host", "http://localhost:11434", "http://localhost:11434/"},
		{"already normalized", "https://openrouter.ai/api/v1/", "https://openrouter.ai/api/v1/"},
		{"query is kept after the path", "https://proxy.example.com/v1?api-version=2024-06-01", "https://proxy.example.com/v1/?api-version=2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.url); got != tt.expected {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
