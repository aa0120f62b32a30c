package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// sharedOwner is the phenomenon_id of shared controls
const sharedOwner = "*"

// catalogRepository implements ports.CatalogStore over the tables created by internal/migration.
// Queries are written with ? placeholders and rebound for the connection's driver.
type catalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new SQL catalog repository
func NewCatalogRepository(db *sqlx.DB) ports.CatalogStore {
	return &catalogRepository{db: db}
}

type phenomenonRow struct {
	ID          string `db:"id"`
	Label       string `db:"label"`
	Description string `db:"description"`
}

type parameterRow struct {
	PhenomenonID string `db:"phenomenon_id"`
	catalog.ParameterSpec
}

type pairRow struct {
	Key   string `db:"k"`
	Value string `db:"v"`
}

// Load reads the whole catalog. An empty database yields a catalog without phenomena,
// which fails validation upstream.
func (r *catalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	var phenomena []phenomenonRow
	if err := r.db.SelectContext(ctx, &phenomena, `
		SELECT id, label, description
		FROM phenomena
		ORDER BY position, id
	`); err != nil {
		return nil, fmt.Errorf("failed to load phenomena: %w", err)
	}

	var parameters []parameterRow
	if err := r.db.SelectContext(ctx, &parameters, `
		SELECT phenomenon_id, name, label, help, min_value, max_value, step, default_value, is_integer
		FROM phenomenon_parameters
		ORDER BY phenomenon_id, position
	`); err != nil {
		return nil, fmt.Errorf("failed to load parameters: %w", err)
	}

	var fields []pairRow
	if err := r.db.SelectContext(ctx, &fields, `SELECT name AS k, field_id AS v FROM field_identifiers`); err != nil {
		return nil, fmt.Errorf("failed to load field identifiers: %w", err)
	}

	var static []pairRow
	if err := r.db.SelectContext(ctx, &static, `SELECT param_key AS k, param_value AS v FROM static_params`); err != nil {
		return nil, fmt.Errorf("failed to load static parameters: %w", err)
	}

	var settings []pairRow
	if err := r.db.SelectContext(ctx, &settings, `SELECT setting_key AS k, setting_value AS v FROM catalog_settings`); err != nil {
		return nil, fmt.Errorf("failed to load catalog settings: %w", err)
	}

	c := &catalog.Catalog{}
	index := make(map[string]int, len(phenomena))
	for _, p := range phenomena {
		index[p.ID] = len(c.Phenomena)
		c.Phenomena = append(c.Phenomena, catalog.Phenomenon{ID: p.ID, Label: p.Label, Description: p.Description})
	}
	for _, p := range parameters {
		if p.PhenomenonID == sharedOwner {
			c.Shared = append(c.Shared, p.ParameterSpec)
			continue
		}
		pos, ok := index[p.PhenomenonID]
		if !ok {
			return nil, fmt.Errorf("parameter %s references unknown phenomenon %s", p.Name, p.PhenomenonID)
		}
		c.Phenomena[pos].Parameters = append(c.Phenomena[pos].Parameters, p.ParameterSpec)
	}
	if len(fields) > 0 {
		c.Fields = make(catalog.FieldMap, len(fields))
		for _, f := range fields {
			c.Fields[f.Key] = f.Value
		}
	}
	if len(static) > 0 {
		c.StaticParams = make(map[string]string, len(static))
		for _, s := range static {
			c.StaticParams[s.Key] = s.Value
		}
	}
	for _, s := range settings {
		switch s.Key {
		case "title":
			c.Title = s.Value
		case "intro":
			c.Intro = s.Value
		}
	}
	return c, nil
}

// Save replaces the stored catalog in one transaction
func (r *catalogRepository) Save(ctx context.Context, c *catalog.Catalog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"phenomenon_parameters", "phenomena", "field_identifiers", "static_params", "catalog_settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertPhenomenon := tx.Rebind(`INSERT INTO phenomena (id, label, description, position) VALUES (?, ?, ?, ?)`)
	insertParameter := tx.Rebind(`
		INSERT INTO phenomenon_parameters
			(phenomenon_id, position, name, label, help, min_value, max_value, step, default_value, is_integer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	addParameters := func(owner string, specs []catalog.ParameterSpec) error {
		for i, s := range specs {
			if _, err := tx.ExecContext(ctx, insertParameter,
				owner, i, s.Name, s.Label, s.Help, s.Min, s.Max, s.Step, s.Default, s.Integer,
			); err != nil {
				return fmt.Errorf("failed to insert parameter %s/%s: %w", owner, s.Name, err)
			}
		}
		return nil
	}

	if err := addParameters(sharedOwner, c.Shared); err != nil {
		return err
	}
	for i, p := range c.Phenomena {
		if _, err := tx.ExecContext(ctx, insertPhenomenon, p.ID, p.Label, p.Description, i); err != nil {
			return fmt.Errorf("failed to insert phenomenon %s: %w", p.ID, err)
		}
		if err := addParameters(p.ID, p.Parameters); err != nil {
			return err
		}
	}

	pairs := []struct {
		query  string
		values map[string]string
	}{
		{`INSERT INTO field_identifiers (name, field_id) VALUES (?, ?)`, c.Fields},
		{`INSERT INTO static_params (param_key, param_value) VALUES (?, ?)`, c.StaticParams},
		{`INSERT INTO catalog_settings (setting_key, setting_value) VALUES (?, ?)`, map[string]string{"title": c.Title, "intro": c.Intro}},
	}
	for _, p := range pairs {
		query := tx.Rebind(p.query)
		for k, v := range p.values {
			if _, err := tx.ExecContext(ctx, query, k, v); err != nil {
				return fmt.Errorf("failed to insert %s: %w", k, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
