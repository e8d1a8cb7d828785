package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aiswarm/config/models"
	"aiswarm/config/storage"
	"aiswarm/config/validation"
	"aiswarm/internal/bundle"
	"aiswarm/internal/logging"
	"aiswarm/internal/providers"
)

// StateFileName is the name of the persisted state inside the config directory
const StateFileName = "state.json"

// Manager loads and saves the persisted state.
// Writers are serialized in-process by a mutex and across processes by a
// lock on a sidecar file.
type Manager struct {
	statePath string
	catalog   *providers.Catalog
	backups   *storage.BackupManager
	log       *logging.Logger
	mu        sync.Mutex
}

// NewManager creates a Manager storing its state in dir
func NewManager(dir string, catalog *providers.Catalog, backups int, log *logging.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &Manager{
		statePath: filepath.Join(dir, StateFileName),
		catalog:   catalog,
		backups:   storage.NewBackupManager(backups),
		log:       log.Sub("config"),
	}, nil
}

// Path returns the path to the state file
func (m *Manager) Path() string {
	return m.statePath
}

// withFileLock runs fn while holding the sidecar lock
func (m *Manager) withFileLock(exclusive bool, fn func() error) error {
	file, err := os.OpenFile(m.statePath+".lock", os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer file.Close()

	lock := lockFileShared
	if exclusive {
		lock = lockFileExclusive
	}
	if err := lock(file); err != nil {
		return fmt.Errorf("failed to lock state file: %w", err)
	}
	defer func() {
		if err := unlockFile(file); err != nil {
			m.log.Warn().Err(err).Msg("failed to unlock state file")
		}
	}()

	return fn()
}

// read loads the state file; a missing or empty file yields a fresh state
func (m *Manager) read() (*models.State, error) {
	data, err := os.ReadFile(m.statePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := &models.State{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, state); err != nil {
			return nil, fmt.Errorf("failed to parse state file: %w", err)
		}
	}
	if state.Config == nil {
		state.Config = models.NewConfig(m.catalog)
	}
	state.Config.EnsureProviders(m.catalog)
	return state, nil
}

func (m *Manager) write(state *models.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := storage.AtomicWrite(m.statePath, data, m.backups); err != nil {
		return err
	}
	m.log.Debug().Str("path", m.statePath).Msg("state saved")
	return nil
}

// Load returns the persisted state
func (m *Manager) Load() (*models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var state *models.State
	err := m.withFileLock(false, func() error {
		var err error
		state, err = m.read()
		return err
	})
	return state, err
}

// Save replaces the persisted state
func (m *Manager) Save(state *models.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.withFileLock(true, func() error {
		return m.write(state)
	})
}

// Update loads the state, applies fn and saves the result.
// Nothing is written when fn returns an error.
func (m *Manager) Update(fn func(*models.State) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.withFileLock(true, func() error {
		state, err := m.read()
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		return m.write(state)
	})
}

// AuxKeys returns the persisted auxiliary service keys
func (m *Manager) AuxKeys() (models.AuxKeys, error) {
	state, err := m.Load()
	if err != nil {
		return models.AuxKeys{}, err
	}
	return state.AuxKeys, nil
}

// Export renders the persisted state as a bundle document
func (m *Manager) Export(svc *bundle.Service) ([]byte, error) {
	state, err := m.Load()
	if err != nil {
		return nil, err
	}
	return svc.Export(state.Config, state.AuxKeys)
}

// Import reconciles a bundle document into the persisted state.
// Auxiliary keys are only replaced by non-empty values from the bundle.
func (m *Manager) Import(svc *bundle.Service, data []byte) (bundle.Summary, error) {
	var summary bundle.Summary
	err := m.Update(func(state *models.State) error {
		result, err := svc.Import(data, state.Config)
		if err != nil {
			return err
		}
		state.Config = result.Config
		if result.Keys.HuggingFace != "" {
			state.AuxKeys.HuggingFace = result.Keys.HuggingFace
		}
		if result.Keys.OpenRouter != "" {
			state.AuxKeys.OpenRouter = result.Keys.OpenRouter
		}
		summary = result.Summary
		return nil
	})
	if err != nil {
		return bundle.Summary{}, err
	}
	m.log.Info().Str("summary", summary.String()).Msg("bundle imported")
	return summary, nil
}

// UpdateProvider edits one provider's setting and validates the fields the edit changed
func (m *Manager) UpdateProvider(name string, fn func(*models.ProviderSetting)) error {
	if _, err := m.catalog.Get(name); err != nil {
		return err
	}
	return m.Update(func(state *models.State) error {
		before := state.Config.Providers[name]
		setting := before
		setting.ManualModels = append([]string(nil), before.ManualModels...)
		fn(&setting)

		if err := validation.NewValidator().ValidateProviderSetting(setting); err != nil {
			return err
		}
		setting, err := NewModelValidator().ValidateEdit(before, setting)
		if err != nil {
			return err
		}

		state.Config.Providers[name] = setting
		return nil
	})
}

// ResetProvider restores a provider to the catalog defaults
func (m *Manager) ResetProvider(name string) error {
	return m.Update(func(state *models.State) error {
		return state.Config.ResetProvider(name, m.catalog)
	})
}

// Backups lists the state file's backups, oldest first
func (m *Manager) Backups() ([]string, error) {
	return m.backups.ListBackups(m.statePath)
}

// Restore replaces the state file with its most recent backup
func (m *Manager) Restore() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var restored string
	err := m.withFileLock(true, func() error {
		var err error
		restored, err = m.backups.RestoreFromLatestBackup(m.statePath)
		return err
	})
	return restored, err
}
