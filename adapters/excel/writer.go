package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
)

// WriteCatalog saves c as a workbook that CatalogReader can load
func WriteCatalog(path string, c *catalog.Catalog) error {
	layout := DefaultWorkbookLayout()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", layout.PhenomenaSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	phenomena := [][]interface{}{}
	parameters := [][]interface{}{}
	for _, spec := range c.Shared {
		parameters = append(parameters, parameterRow(SharedPhenomenon, spec))
	}
	for _, p := range c.Phenomena {
		phenomena = append(phenomena, []interface{}{p.ID, p.Label, p.Description})
		for _, spec := range p.Parameters {
			parameters = append(parameters, parameterRow(p.ID, spec))
		}
	}

	var fields [][]interface{}
	if c.Fields != nil {
		for _, name := range orderedKeys(c.Fields, c.FieldSet()) {
			fields = append(fields, []interface{}{name, c.Fields[name]})
		}
	}

	var static [][]interface{}
	for _, key := range orderedKeys(c.StaticParams, nil) {
		static = append(static, []interface{}{key, c.StaticParams[key]})
	}

	settings := [][]interface{}{{"title", c.Title}, {"intro", c.Intro}}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
		skip    bool
	}{
		{layout.PhenomenaSheet, phenomenaHeaders, phenomena, false},
		{layout.ParametersSheet, parametersHeaders, parameters, false},
		{layout.FieldsSheet, fieldsHeaders, fields, c.Fields == nil},
		{layout.StaticSheet, staticHeaders, static, len(static) == 0},
		{layout.SettingsSheet, settingsHeaders, settings, false},
	}

	for _, sheet := range sheets {
		if sheet.skip {
			continue
		}
		if sheet.name != layout.PhenomenaSheet {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}
		if err := writeRows(f, sheet.name, sheet.headers, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func parameterRow(owner string, spec catalog.ParameterSpec) []interface{} {
	return []interface{}{owner, spec.Name, spec.Label, spec.Min, spec.Max, spec.Step, spec.Default, spec.Integer, spec.Help}
}

// orderedKeys lists preferred keys that are present first, then the rest sorted
func orderedKeys(m map[string]string, preferred []string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range preferred {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
