package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/postgres"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

var _ Migrator = (*MigrationRunner)(nil)

// MigrationRunner creates the catalog schema. The DDL sticks to types that both
// PostgreSQL and SQLite accept.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	steps := []struct {
		name string
		ddl  string
	}{
		{"phenomena", `
			CREATE TABLE IF NOT EXISTS phenomena (
				id VARCHAR(64) PRIMARY KEY,
				label TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				position INTEGER NOT NULL DEFAULT 0
			)`},
		{"phenomenon_parameters", `
			CREATE TABLE IF NOT EXISTS phenomenon_parameters (
				phenomenon_id VARCHAR(64) NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				name VARCHAR(128) NOT NULL,
				label TEXT NOT NULL,
				help TEXT NOT NULL DEFAULT '',
				min_value DOUBLE PRECISION NOT NULL,
				max_value DOUBLE PRECISION NOT NULL,
				step DOUBLE PRECISION NOT NULL,
				default_value DOUBLE PRECISION NOT NULL,
				is_integer BOOLEAN NOT NULL DEFAULT FALSE,
				PRIMARY KEY (phenomenon_id, name)
			)`},
		{"field_identifiers", `
			CREATE TABLE IF NOT EXISTS field_identifiers (
				name VARCHAR(128) PRIMARY KEY,
				field_id TEXT NOT NULL
			)`},
		{"static_params", `
			CREATE TABLE IF NOT EXISTS static_params (
				param_key VARCHAR(128) PRIMARY KEY,
				param_value TEXT NOT NULL
			)`},
		{"catalog_settings", `
			CREATE TABLE IF NOT EXISTS catalog_settings (
				setting_key VARCHAR(64) PRIMARY KEY,
				setting_value TEXT NOT NULL
			)`},
		{"idx_parameters_position", `
			CREATE INDEX IF NOT EXISTS idx_parameters_position ON phenomenon_parameters(phenomenon_id, position)`},
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.ddl); err != nil {
			return errors.Wrapf(err, "failed to create %s", step.name)
		}
	}
	return nil
}

// Seed stores c when the database holds no phenomena yet. It reports whether it wrote.
func (r *MigrationRunner) Seed(ctx context.Context, db *sqlx.DB, c *catalog.Catalog) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM phenomena`); err != nil {
		return false, errors.Wrap(err, "failed to count phenomena")
	}
	if count > 0 {
		return false, nil
	}
	if err := postgres.NewCatalogRepository(db).Save(ctx, c); err != nil {
		return false, errors.Wrap(err, "failed to seed catalog")
	}
	return true, nil
}
