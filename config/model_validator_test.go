package config

import (
	"reflect"
	"testing"

	"aiswarm/config/models"
	"aiswarm/internal/providers"
)

func TestValidateModelInList(t *testing.T) {
	v := NewModelValidator()

	tests := []struct {
		name    string
		model   string
		models  []string
		wantErr bool
	}{
		{"model exists in list", "gpt-4o", []string{"gpt-4o", "o3"}, false},
		{"model not in list", "gpt-5", []string{"gpt-4o", "o3"}, true},
		{"empty model name", "", []string{"gpt-4o"}, true},
		{"model with whitespace matches trimmed", "  gpt-4o  ", []string{"gpt-4o"}, false},
		{"list item with whitespace matches trimmed model", "gpt-4o", []string{"  gpt-4o  "}, false},
		{"empty list", "gpt-4o", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateModelInList(tt.model, tt.models)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModelInList() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeModels(t *testing.T) {
	v := NewModelValidator()

	tests := []struct {
		name   string
		models []string
		want   []string
	}{
		{"no changes needed", []string{"gpt-4o", "o3"}, []string{"gpt-4o", "o3"}},
		{"trim whitespace", []string{"  gpt-4o  ", " o3 "}, []string{"gpt-4o", "o3"}},
		{"remove duplicates with whitespace", []string{"gpt-4o", "  gpt-4o  ", "o3"}, []string{"gpt-4o", "o3"}},
		{"remove empty strings", []string{"gpt-4o", "", "o3", "  "}, []string{"gpt-4o", "o3"}},
		{"nil input", nil, []string{}},
		{"preserve order", []string{"o3", "gpt-4o", "gpt-4.1"}, []string{"o3", "gpt-4o", "gpt-4.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.NormalizeModels(tt.models)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeModels() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateManualSetting(t *testing.T) {
	v := NewModelValidator()

	tests := []struct {
		name    string
		setting models.ProviderSetting
		wantErr bool
	}{
		{
			name:    "remote mode ignores the list",
			setting: models.ProviderSetting{ModelSource: providers.ModelSourceRemote},
		},
		{
			name:    "manual mode with default in list",
			setting: models.ProviderSetting{ModelSource: providers.ModelSourceManual, ManualModels: []string{"a", "b"}, DefaultModel: "b"},
		},
		{
			name:    "manual mode without default",
			setting: models.ProviderSetting{ModelSource: providers.ModelSourceManual, ManualModels: []string{"a"}},
		},
		{
			name:    "manual mode with empty list",
			setting: models.ProviderSetting{ModelSource: providers.ModelSourceManual, ManualModels: []string{" "}},
			wantErr: true,
		},
		{
			name:    "manual mode with default outside list",
			setting: models.ProviderSetting{ModelSource: providers.ModelSourceManual, ManualModels: []string{"a"}, DefaultModel: "z"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateManualSetting(tt.setting)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManualSetting() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
