package pricing

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"aiswarm/config/models"
	"aiswarm/internal/logging"
)

// SQLiteStore is a Store persisted in a SQLite database
type SQLiteStore struct {
	db  *sql.DB
	log *logging.Logger
}

// OpenSQLite opens (or creates) the pricing database at path and runs migrations.
// Use ":memory:" for an in-memory database.
func OpenSQLite(path string, log *logging.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating pricing db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, log: log.Sub("pricing")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.log.Debug().Str("path", path).Msg("pricing database opened")
	return s, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.Version).Scan(&count); err != nil {
			return fmt.Errorf("checking migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		s.log.Debug().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// All returns every override ordered by provider then model
func (s *SQLiteStore) All() ([]models.PricingOverride, error) {
	rows, err := s.db.Query(`
		SELECT provider, model, prompt_price, completion_price
		FROM pricing_overrides
		ORDER BY provider, model`)
	if err != nil {
		return nil, fmt.Errorf("querying pricing overrides: %w", err)
	}
	defer rows.Close()

	var out []models.PricingOverride
	for rows.Next() {
		var o models.PricingOverride
		if err := rows.Scan(&o.Provider, &o.Model, &o.PromptPrice, &o.CompletionPrice); err != nil {
			return nil, fmt.Errorf("scanning pricing override: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Get returns the override for a provider/model pair
func (s *SQLiteStore) Get(provider, model string) (models.PricingOverride, bool, error) {
	o := models.PricingOverride{Provider: provider, Model: model}
	err := s.db.QueryRow(`
		SELECT prompt_price, completion_price
		FROM pricing_overrides
		WHERE provider = ? AND model = ?`, provider, model,
	).Scan(&o.PromptPrice, &o.CompletionPrice)
	if err == sql.ErrNoRows {
		return models.PricingOverride{}, false, nil
	}
	if err != nil {
		return models.PricingOverride{}, false, fmt.Errorf("querying pricing override: %w", err)
	}
	return o, true, nil
}

// PutAll writes the overrides in one transaction, replacing any with the same key
func (s *SQLiteStore) PutAll(overrides []models.PricingOverride) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin pricing write: %w", err)
	}
	for _, o := range overrides {
		if _, err := tx.Exec(`
			INSERT INTO pricing_overrides (provider, model, prompt_price, completion_price, updated_at)
			VALUES (?, ?, ?, ?, datetime('now'))
			ON CONFLICT(provider, model) DO UPDATE SET
				prompt_price = excluded.prompt_price,
				completion_price = excluded.completion_price,
				updated_at = excluded.updated_at`,
			o.Provider, o.Model, o.PromptPrice, o.CompletionPrice,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("writing pricing override %s: %w", FormatKey(o.Provider, o.Model), err)
		}
	}
	return tx.Commit()
}

// Delete removes the override for a provider/model pair
func (s *SQLiteStore) Delete(provider, model string) error {
	if _, err := s.db.Exec("DELETE FROM pricing_overrides WHERE provider = ? AND model = ?", provider, model); err != nil {
		return fmt.Errorf("deleting pricing override: %w", err)
	}
	return nil
}
