package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// CatalogReader loads a phenomenon catalog from an .xlsx workbook. Columns are matched
// by header name, so their order in the sheet does not matter.
type CatalogReader struct {
	filePath string
	layout   WorkbookLayout
	logger   *internal.Logger
}

// NewCatalogReader creates a workbook catalog source with the default sheet layout
func NewCatalogReader(filePath string, logger *internal.Logger) ports.CatalogSource {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &CatalogReader{filePath: filePath, layout: DefaultWorkbookLayout(), logger: logger}
}

// Load opens the workbook and assembles the catalog
func (r *CatalogReader) Load(ctx context.Context) (*catalog.Catalog, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	c, err := r.readCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.filePath, err)
	}

	r.logger.Info("[CatalogReader] %s read in %.2fms (%d phenomena)",
		r.filePath, float64(time.Since(startTime).Nanoseconds())/1e6, len(c.Phenomena))
	return c, nil
}

func (r *CatalogReader) readCatalog(f *excelize.File) (*catalog.Catalog, error) {
	c := &catalog.Catalog{}

	phenomena, err := readSheet(f, r.layout.PhenomenaSheet, true)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	for _, row := range phenomena.Rows {
		id := row["id"]
		if id == "" {
			continue
		}
		index[id] = len(c.Phenomena)
		c.Phenomena = append(c.Phenomena, catalog.Phenomenon{
			ID:          id,
			Label:       row["label"],
			Description: row["description"],
		})
	}

	parameters, err := readSheet(f, r.layout.ParametersSheet, true)
	if err != nil {
		return nil, err
	}
	for i, row := range parameters.Rows {
		spec, err := parseParameterRow(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", parameters.Name, i+2, err)
		}
		owner := row["phenomenon"]
		if owner == SharedPhenomenon {
			c.Shared = append(c.Shared, spec)
			continue
		}
		pos, ok := index[owner]
		if !ok {
			return nil, fmt.Errorf("sheet %s row %d: unknown phenomenon %q", parameters.Name, i+2, owner)
		}
		c.Phenomena[pos].Parameters = append(c.Phenomena[pos].Parameters, spec)
	}

	fields, err := readSheet(f, r.layout.FieldsSheet, false)
	if err != nil {
		return nil, err
	}
	if fields != nil {
		c.Fields = make(catalog.FieldMap)
		for _, row := range fields.Rows {
			if row["name"] != "" {
				c.Fields[row["name"]] = row["field_id"]
			}
		}
	}

	static, err := readSheet(f, r.layout.StaticSheet, false)
	if err != nil {
		return nil, err
	}
	if static != nil && len(static.Rows) > 0 {
		c.StaticParams = make(map[string]string)
		for _, row := range static.Rows {
			if row["key"] != "" {
				c.StaticParams[row["key"]] = row["value"]
			}
		}
	}

	settings, err := readSheet(f, r.layout.SettingsSheet, false)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		for _, row := range settings.Rows {
			switch row["key"] {
			case "title":
				c.Title = row["value"]
			case "intro":
				c.Intro = row["value"]
			}
		}
	}

	return c, nil
}

// readSheet returns nil for an absent optional sheet
func readSheet(f *excelize.File, name string, required bool) (*SheetData, error) {
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		if required {
			return nil, fmt.Errorf("sheet %s not found", name)
		}
		return nil, nil
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	return processRows(name, rows), nil
}

// processRows converts raw string rows into header-keyed rows, skipping blank lines
func processRows(name string, rows [][]string) *SheetData {
	sheet := &SheetData{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	sheet.Headers = make([]string, len(rows[0]))
	for i, header := range rows[0] {
		sheet.Headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	for _, row := range rows[1:] {
		rowData := make(RawRowData)
		empty := true
		for j, cell := range row {
			if j < len(sheet.Headers) {
				value := strings.TrimSpace(cell)
				rowData[sheet.Headers[j]] = value
				if value != "" {
					empty = false
				}
			}
		}
		if !empty {
			sheet.Rows = append(sheet.Rows, rowData)
		}
	}
	return sheet
}

func parseParameterRow(row RawRowData) (catalog.ParameterSpec, error) {
	spec := catalog.ParameterSpec{
		Name:  row["name"],
		Label: row["label"],
		Help:  row["help"],
	}

	numbers := []struct {
		column string
		target *float64
	}{
		{"min", &spec.Min},
		{"max", &spec.Max},
		{"step", &spec.Step},
		{"default", &spec.Default},
	}
	for _, n := range numbers {
		v, err := strconv.ParseFloat(row[n.column], 64)
		if err != nil {
			return spec, fmt.Errorf("column %s of %s: %w", n.column, spec.Name, err)
		}
		*n.target = v
	}

	integer, err := parseFlag(row["integer"])
	if err != nil {
		return spec, fmt.Errorf("column integer of %s: %w", spec.Name, err)
	}
	spec.Integer = integer
	return spec, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "no", "n":
		return false, nil
	case "yes", "y":
		return true, nil
	}
	return strconv.ParseBool(s)
}
