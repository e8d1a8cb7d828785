package pricing

import (
	"sort"
	"sync"

	"aiswarm/config/models"
)

type key struct {
	provider string
	model    string
}

// MemoryStore is an in-memory Store
type MemoryStore struct {
	mu        sync.RWMutex
	overrides map[key]models.PricingOverride
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{overrides: make(map[key]models.PricingOverride)}
}

// All returns every override ordered by provider then model
func (m *MemoryStore) All() ([]models.PricingOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.PricingOverride, 0, len(m.overrides))
	for _, o := range m.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Model < out[j].Model
	})
	return out, nil
}

// Get returns the override for a provider/model pair
func (m *MemoryStore) Get(provider, model string) (models.PricingOverride, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.overrides[key{provider, model}]
	return o, ok, nil
}

// PutAll writes the overrides, replacing any with the same key
func (m *MemoryStore) PutAll(overrides []models.PricingOverride) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range overrides {
		m.overrides[key{o.Provider, o.Model}] = o
	}
	return nil
}

// Delete removes the override for a provider/model pair
func (m *MemoryStore) Delete(provider, model string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.overrides, key{provider, model})
	return nil
}
