package bundle

import (
	"fmt"

	"aiswarm/config/models"
	"aiswarm/internal/logging"
	"aiswarm/internal/pricing"
	"aiswarm/internal/providers"
)

// Result is the outcome of a successful import
type Result struct {
	Config  *models.Config
	Keys    models.AuxKeys
	Summary Summary
}

// Service is the export/import entry point used by callers
type Service struct {
	codec      *Codec
	reconciler *Reconciler
	store      pricing.Store
}

// NewService wires a codec and reconciler around a catalog and pricing store
func NewService(catalog *providers.Catalog, store pricing.Store, log *logging.Logger) *Service {
	log = log.Sub("bundle")
	return &Service{
		codec:      NewCodec(catalog, log),
		reconciler: NewReconciler(catalog, store, log),
		store:      store,
	}
}

// Codec returns the service's codec
func (s *Service) Codec() *Codec {
	return s.codec
}

// Export renders the configuration, the stored pricing overrides and the
// auxiliary keys as a bundle document
func (s *Service) Export(cfg *models.Config, keys models.AuxKeys) ([]byte, error) {
	var overrides []models.PricingOverride
	if s.store != nil {
		var err error
		overrides, err = s.store.All()
		if err != nil {
			return nil, fmt.Errorf("failed to read pricing overrides: %w", err)
		}
	}
	return Marshal(s.codec.Encode(cfg, overrides, keys))
}

// Import decodes data and reconciles it into a copy of current.
// On error current is untouched and nothing has been written anywhere.
func (s *Service) Import(data []byte, current *models.Config) (*Result, error) {
	b, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	cfg, summary := s.reconciler.Reconcile(b, current)

	var keys models.AuxKeys
	if b.HuggingFaceAPIKey != nil {
		keys.HuggingFace = *b.HuggingFaceAPIKey
	}
	if b.OpenRouterAPIKey != nil {
		keys.OpenRouter = *b.OpenRouterAPIKey
	}

	return &Result{Config: cfg, Keys: keys, Summary: summary}, nil
}
