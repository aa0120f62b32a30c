package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/builtin"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/excel"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/postgres"
	catalogyaml "github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/yaml"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/config"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/errors"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/migration"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure, only set for the database catalog source
	DB *sqlx.DB

	CatalogSource ports.CatalogSource
	Forms         *app.FormService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// Init opens the catalog source and builds the form service. A catalog that fails
// validation stops startup.
func (c *Container) Init(ctx context.Context) error {
	source, err := c.openCatalogSource(ctx)
	if err != nil {
		return err
	}
	c.CatalogSource = source

	forms, err := app.LoadFormService(ctx, source, c.Config.Form.EndpointURL, c.Logger)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s catalog", c.Config.Catalog.Source)
	}
	c.Forms = forms

	c.Logger.Info("catalog %s loaded from %s source: %d phenomena",
		forms.Catalog().Fingerprint().Short(), c.Config.Catalog.Source, len(forms.Catalog().Phenomena))
	return nil
}

func (c *Container) openCatalogSource(ctx context.Context) (ports.CatalogSource, error) {
	switch c.Config.Catalog.Source {
	case config.CatalogSourceYAML:
		return catalogyaml.NewLoader(c.Config.Catalog.File), nil
	case config.CatalogSourceXLSX:
		return excel.NewCatalogReader(c.Config.Catalog.File, c.Logger.Named("excel")), nil
	case config.CatalogSourceDatabase:
		db, err := OpenDatabase(ctx, c.Config.Database.Driver, c.Config.Database.URL)
		if err != nil {
			return nil, err
		}
		c.DB = db
		if err := migration.NewRunner().Run(ctx, db); err != nil {
			return nil, errors.Wrap(err, "database migration failed")
		}
		return postgres.NewCatalogRepository(db), nil
	case config.CatalogSourceBuiltin, "":
		return builtin.NewSource(), nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown catalog source %q", c.Config.Catalog.Source))
	}
}

// OpenDatabase connects with the named sqlx driver and pings the database
func OpenDatabase(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if driver == "sqlite" {
		// every connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
