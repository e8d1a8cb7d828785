package validation

import (
	"math"
	"strings"
	"testing"

	"aiswarm/config/models"
)

func TestValidateAgent(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		agent   models.Agent
		wantErr bool
	}{
		{"valid", models.Agent{Name: "writer", Provider: "OPENAI"}, false},
		{"provider is not checked here", models.Agent{Name: "writer", Provider: "NOPE"}, false},
		{"empty name", models.Agent{Provider: "OPENAI"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateAgent(tt.agent)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAgent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.example.com/v1/", false},
		{"http://localhost:11434/v1", false},
		{"ftp://example.com", true},
		{"not a url", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := v.ValidateEndpoint(models.Endpoint{URL: tt.url})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProviderSetting(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateProviderSetting(models.ProviderSetting{ModelSource: "REMOTE"}); err != nil {
		t.Errorf("valid setting returned error: %v", err)
	}
	if err := v.ValidateProviderSetting(models.ProviderSetting{ModelSource: "SOMETIMES"}); err == nil {
		t.Error("invalid model source should error")
	}
	if err := v.ValidateProviderSetting(models.ProviderSetting{ModelSource: "MANUAL", ModelListURL: "nope"}); err == nil {
		t.Error("invalid model list URL should error")
	}
}

func TestValidateName(t *testing.T) {
	iv := NewInputValidator()

	tests := []struct {
		kind    string
		name    string
		wantErr string
	}{
		{"agent", "research/writer", ""},
		{"swarm", "Crowd of críticos", ""},
		{"endpoint", "local-proxy", ""},
		{"agent", "", "agent name cannot be empty"},
		{"flock", "   ", "flock name cannot be empty"},
		{"prompt", " summary", "cannot start or end with whitespace"},
		{"preset", "creative\n", "cannot start or end with whitespace"},
		{"endpoint", "proxy\x00two", "control characters"},
		{"agent", strings.Repeat("a", MaxNameLength+1), "too long"},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.name, func(t *testing.T) {
			err := iv.ValidateName(tt.kind, tt.name)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateName(%q) unexpected error: %v", tt.name, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateName(%q) error = %v, want %q", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestValidateModelName(t *testing.T) {
	iv := NewInputValidator()

	for _, ok := range []string{"gpt-4o", "meta-llama/Llama-3.3-70B-Instruct-Turbo", "llama:70b"} {
		if err := iv.ValidateModelName(ok); err != nil {
			t.Errorf("ValidateModelName(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "gpt 4o", "claude\t"} {
		if err := iv.ValidateModelName(bad); err == nil {
			t.Errorf("ValidateModelName(%q) expected error", bad)
		}
	}
}

func TestValidatePrice(t *testing.T) {
	iv := NewInputValidator()

	if err := iv.ValidatePrice("prompt", 0); err != nil {
		t.Errorf("zero price should be valid: %v", err)
	}
	for _, bad := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		if err := iv.ValidatePrice("prompt", bad); err == nil {
			t.Errorf("ValidatePrice(%v) expected error", bad)
		}
	}
}

func TestValidateOverlay(t *testing.T) {
	iv := NewInputValidator()
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	tests := []struct {
		name    string
		overlay models.Overlay
		wantErr bool
	}{
		{"temperature", models.Overlay{Temperature: f(0.7)}, false},
		{"toggle only", models.Overlay{SearchEnabled: true}, false},
		{"empty", models.Overlay{}, true},
		{"temperature too high", models.Overlay{Temperature: f(2.5)}, true},
		{"top-p above one", models.Overlay{TopP: f(1.2)}, true},
		{"zero max tokens", models.Overlay{MaxTokens: i(0)}, true},
		{"penalty out of range", models.Overlay{PresencePenalty: f(-3)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := iv.ValidateOverlay(tt.overlay)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverlay() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
