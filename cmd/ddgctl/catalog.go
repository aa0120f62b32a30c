package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/excel"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/postgres"
	catalogyaml "github.com/corricelli/NGSS-Dynamic-Data-Gem/adapters/yaml"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/container"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/migration"
)

func newCatalogCmd(src *sourceFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, export and import phenomenon catalogs",
	}
	cmd.AddCommand(
		newCatalogListCmd(src),
		newCatalogValidateCmd(src),
		newCatalogExportCmd(src),
		newCatalogImportCmd(src),
	)
	return cmd
}

func newCatalogListCmd(src *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every phenomenon with its controls and external field identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := src.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PE_ID\tPARAMETER\tMIN\tMAX\tSTEP\tDEFAULT\tFIELD")
			for _, spec := range cat.Shared {
				writeSpec(w, cat, "*", spec)
			}
			for _, p := range cat.Phenomena {
				for _, spec := range p.Parameters {
					writeSpec(w, cat, p.ID, spec)
				}
			}
			return w.Flush()
		},
	}
}

func writeSpec(w *tabwriter.Writer, cat *catalog.Catalog, owner string, spec catalog.ParameterSpec) {
	field, err := cat.FieldID(spec.Name)
	if err != nil {
		field = "-"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		owner, spec.Name, spec.Format(spec.Min), spec.Format(spec.Max),
		spec.Format(spec.Step), spec.Format(spec.Default), field)
}

func newCatalogValidateCmd(src *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog without serving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := src.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d phenomena, %d fields\n", len(cat.Phenomena), len(cat.FieldSet()))
			return nil
		},
	}
}

func newCatalogExportCmd(src *sourceFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the selected catalog to a .yaml or .xlsx file",
		Long: `Write the selected catalog to a file. The format follows the extension.

Example: ddgctl catalog export --out catalog.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := src.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			switch strings.ToLower(filepath.Ext(out)) {
			case ".yaml", ".yml":
				err = catalogyaml.WriteFile(out, cat)
			case ".xlsx":
				err = excel.WriteCatalog(out, cat)
			default:
				return fmt.Errorf("unsupported output file %q (want .yaml, .yml or .xlsx)", out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (.yaml, .yml or .xlsx)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newCatalogImportCmd(src *sourceFlags) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the database catalog with the contents of a file",
		Long: `Validate a .yaml or .xlsx catalog and store it in the database named by --database-url.
The schema is created when missing.

Example: ddgctl catalog import --from catalog.yaml --database-url postgres://localhost/ddg?sslmode=disable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := loadFile(ctx, from)
			if err != nil {
				return err
			}
			if err := cat.Validate(); err != nil {
				return err
			}

			db, err := container.OpenDatabase(ctx, src.driver, src.databaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migration.NewRunner().Run(ctx, db); err != nil {
				return err
			}
			if err := postgres.NewCatalogRepository(db).Save(ctx, cat); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d phenomena from %s\n", len(cat.Phenomena), from)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Catalog file to import (.yaml, .yml or .xlsx)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
