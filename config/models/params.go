package models

// Overlay is the set of optional generation parameters a preset can override.
// Nil pointers and empty slices are absent and never override anything.
type Overlay struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxTokens        *int     `json:"maxTokens,omitempty"`
	TopP             *float64 `json:"topP,omitempty"`
	TopK             *int     `json:"topK,omitempty"`
	FrequencyPenalty *float64 `json:"frequencyPenalty,omitempty"`
	PresencePenalty  *float64 `json:"presencePenalty,omitempty"`
	Seed             *int     `json:"seed,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	SystemPrompt     *string  `json:"systemPrompt,omitempty"`

	ResponseFormatJSON bool    `json:"responseFormatJson,omitempty"`
	SearchEnabled      bool    `json:"searchEnabled,omitempty"`
	ReturnCitations    bool    `json:"returnCitations,omitempty"`
	SearchRecency      *string `json:"searchRecency,omitempty"`
}

// IsEmpty reports whether no field is present
func (o Overlay) IsEmpty() bool {
	return o.Temperature == nil &&
		o.MaxTokens == nil &&
		o.TopP == nil &&
		o.TopK == nil &&
		o.FrequencyPenalty == nil &&
		o.PresencePenalty == nil &&
		o.Seed == nil &&
		len(o.StopSequences) == 0 &&
		o.SystemPrompt == nil &&
		!o.ResponseFormatJSON &&
		!o.SearchEnabled &&
		!o.ReturnCitations &&
		o.SearchRecency == nil
}

// Apply returns o with every present field of next laid over it.
// Toggles are OR-ed.
func (o Overlay) Apply(next Overlay) Overlay {
	out := o.clone()
	if next.Temperature != nil {
		out.Temperature = ptr(*next.Temperature)
	}
	if next.MaxTokens != nil {
		out.MaxTokens = ptr(*next.MaxTokens)
	}
	if next.TopP != nil {
		out.TopP = ptr(*next.TopP)
	}
	if next.TopK != nil {
		out.TopK = ptr(*next.TopK)
	}
	if next.FrequencyPenalty != nil {
		out.FrequencyPenalty = ptr(*next.FrequencyPenalty)
	}
	if next.PresencePenalty != nil {
		out.PresencePenalty = ptr(*next.PresencePenalty)
	}
	if next.Seed != nil {
		out.Seed = ptr(*next.Seed)
	}
	if len(next.StopSequences) > 0 {
		out.StopSequences = append([]string(nil), next.StopSequences...)
	}
	if next.SystemPrompt != nil {
		out.SystemPrompt = ptr(*next.SystemPrompt)
	}
	if next.SearchRecency != nil {
		out.SearchRecency = ptr(*next.SearchRecency)
	}
	out.ResponseFormatJSON = out.ResponseFormatJSON || next.ResponseFormatJSON
	out.SearchEnabled = out.SearchEnabled || next.SearchEnabled
	out.ReturnCitations = out.ReturnCitations || next.ReturnCitations
	return out
}

func (o Overlay) clone() Overlay {
	out := o
	if o.Temperature != nil {
		out.Temperature = ptr(*o.Temperature)
	}
	if o.MaxTokens != nil {
		out.MaxTokens = ptr(*o.MaxTokens)
	}
	if o.TopP != nil {
		out.TopP = ptr(*o.TopP)
	}
	if o.TopK != nil {
		out.TopK = ptr(*o.TopK)
	}
	if o.FrequencyPenalty != nil {
		out.FrequencyPenalty = ptr(*o.FrequencyPenalty)
	}
	if o.PresencePenalty != nil {
		out.PresencePenalty = ptr(*o.PresencePenalty)
	}
	if o.Seed != nil {
		out.Seed = ptr(*o.Seed)
	}
	if o.StopSequences != nil {
		out.StopSequences = append([]string(nil), o.StopSequences...)
	}
	if o.SystemPrompt != nil {
		out.SystemPrompt = ptr(*o.SystemPrompt)
	}
	if o.SearchRecency != nil {
		out.SearchRecency = ptr(*o.SearchRecency)
	}
	return out
}

// MergeOverlays left-folds the overlays in order.
// Returns nil when the list is empty.
func MergeOverlays(overlays []Overlay) *Overlay {
	if len(overlays) == 0 {
		return nil
	}
	var acc Overlay
	for _, o := range overlays {
		acc = acc.Apply(o)
	}
	return &acc
}

// MergeParameters resolves the preset ids in order and merges them.
// Unresolvable ids are skipped; nil means no override at all.
func (c *Config) MergeParameters(ids []string) *Overlay {
	var overlays []Overlay
	for _, id := range ids {
		if p, ok := c.Preset(id); ok {
			overlays = append(overlays, p.Overlay)
		}
	}
	return MergeOverlays(overlays)
}

// AgentParameters merges the provider's default presets followed by the agent's own
func (c *Config) AgentParameters(a Agent) *Overlay {
	var ids []string
	if ps, ok := c.Providers[a.Provider]; ok {
		ids = append(ids, ps.ParametersIDs...)
	}
	ids = append(ids, a.ParametersIDs...)
	return c.MergeParameters(ids)
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }

func ptr[T any](v T) *T { return &v }
