package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/builtin"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/excel"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/postgres"
	catalogyaml "github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/yaml"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/config"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/container"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/migration"
)

// sourceFlags choose the catalog a command reads
type sourceFlags struct {
	source      string
	file        string
	databaseURL string
	driver      string
}

func newRootCmd() *cobra.Command {
	src := &sourceFlags{}

	rootCmd := &cobra.Command{
		Use:           "ddgctl",
		Short:         "Manage the Dynamic Data Gem phenomenon catalog and build submission links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// FORM_ENDPOINT_URL may come from the same .env file the server reads
			_ = godotenv.Load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&src.source, "source", config.CatalogSourceBuiltin, "Catalog source: builtin|yaml|xlsx|database")
	rootCmd.PersistentFlags().StringVar(&src.file, "file", "", "Catalog file for the yaml and xlsx sources")
	rootCmd.PersistentFlags().StringVar(&src.databaseURL, "database-url", "", "Database DSN for the database source")
	rootCmd.PersistentFlags().StringVar(&src.driver, "driver", "postgres", "Database driver: postgres|sqlite")

	rootCmd.AddCommand(
		newCatalogCmd(src),
		newMigrateCmd(src),
		newLinkCmd(src),
	)
	return rootCmd
}

// loadCatalog reads and validates the catalog named by the source flags
func (f *sourceFlags) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)

	switch strings.ToLower(f.source) {
	case config.CatalogSourceBuiltin:
		cat, err = builtin.NewSource().Load(ctx)
	case config.CatalogSourceYAML, config.CatalogSourceXLSX:
		cat, err = loadFile(ctx, f.file)
	case config.CatalogSourceDatabase:
		db, dbErr := container.OpenDatabase(ctx, f.driver, f.databaseURL)
		if dbErr != nil {
			return nil, dbErr
		}
		defer db.Close()
		cat, err = postgres.NewCatalogRepository(db).Load(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", f.source)
	}
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// loadFile picks the reader from the file extension
func loadFile(ctx context.Context, path string) (*catalog.Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("a catalog file is required")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return catalogyaml.NewLoader(path).Load(ctx)
	case ".xlsx":
		return excel.NewCatalogReader(path, internal.NewNopLogger()).Load(ctx)
	default:
		return nil, fmt.Errorf("unsupported catalog file %s (want .yaml, .yml or .xlsx)", path)
	}
}

func newMigrateCmd(src *sourceFlags) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables",
		Long: `Create the catalog tables in the database named by --database-url.

With --seed an empty database is filled with the built-in catalog.

Example: ddgctl migrate --database-url postgres://localhost/ddg?sslmode=disable --seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := container.OpenDatabase(ctx, src.driver, src.databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.NewRunner()
			if err := runner.Run(ctx, db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %s applied\n", runner.Version())

			if !seed {
				return nil
			}
			seeded, err := runner.Seed(ctx, db, catalog.Default())
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "seeded built-in catalog")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already present, seed skipped")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Insert the built-in catalog into an empty database")
	return cmd
}
