package pricing

// migration is a single schema migration
type migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "create pricing overrides",
		SQL: `
			CREATE TABLE pricing_overrides (
				provider         TEXT NOT NULL,
				model            TEXT NOT NULL,
				prompt_price     REAL NOT NULL,
				completion_price REAL NOT NULL,
				updated_at       TEXT NOT NULL DEFAULT (datetime('now')),
				PRIMARY KEY (provider, model)
			);
		`,
	},
}
