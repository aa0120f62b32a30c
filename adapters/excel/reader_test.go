package excel

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
)

func TestWriteThenReadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	want := catalog.Default()
	want.StaticParams = map[string]string{"usp": "pp_url"}
	require.NoError(t, WriteCatalog(path, want))

	got, err := NewCatalogReader(path, internal.NewNopLogger()).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog changed through the workbook (-want +got):\n%s", diff)
	}
}

// A hand-made workbook with reordered columns, yes/no flags and blank rows
func TestReadHandMadeWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teacher.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Phenomena"))
	rows := map[string][][]interface{}{
		"Phenomena": {
			{"Label", "ID"},
			{"Photosynthesis", "LS1-5"},
			{"", ""},
		},
		"Parameters": {
			{"name", "phenomenon", "label", "min", "max", "step", "default", "integer"},
			{"Light_Max", "LS1-5", "Max light", 100, 2000, 100, 1000, "yes"},
			{"Noise_Sigma", "*", "Noise", 0, 100, 5, 10, "no"},
		},
	}
	for _, sheet := range []string{"Phenomena", "Parameters"} {
		if sheet != "Phenomena" {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for i, row := range rows[sheet] {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			require.NoError(t, f.SetSheetRow(sheet, cell, &r))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c, err := NewCatalogReader(path, internal.NewNopLogger()).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"LS1-5"}, c.IDs())
	assert.Nil(t, c.Fields, "no Fields sheet means the semantic names are used")
	require.Len(t, c.Shared, 1)
	assert.False(t, c.Shared[0].Integer)
	light, ok := c.Spec("Light_Max")
	require.True(t, ok)
	assert.True(t, light.Integer)
	assert.Equal(t, 2000.0, light.Max)
}

func TestReadRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{
			name: "non numeric bound",
			rows: [][]interface{}{parametersHeadersRow(), {"LS2-1", "L_param", "L", "low", 10, 1, 5, false, ""}},
		},
		{
			name: "unknown phenomenon",
			rows: [][]interface{}{parametersHeadersRow(), {"ESS1-1", "L_param", "L", 0, 10, 1, 5, false, ""}},
		},
		{
			name: "bad flag",
			rows: [][]interface{}{parametersHeadersRow(), {"LS2-1", "L_param", "L", 0, 10, 1, 5, "maybe", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.xlsx")
			f := excelize.NewFile()
			require.NoError(t, f.SetSheetName("Sheet1", "Phenomena"))
			require.NoError(t, f.SetSheetRow("Phenomena", "A1", &[]interface{}{"id", "label"}))
			require.NoError(t, f.SetSheetRow("Phenomena", "A2", &[]interface{}{"LS2-1", "Logistic"}))
			_, err := f.NewSheet("Parameters")
			require.NoError(t, err)
			for i, row := range tt.rows {
				cell, _ := excelize.CoordinatesToCellName(1, i+1)
				r := row
				require.NoError(t, f.SetSheetRow("Parameters", cell, &r))
			}
			require.NoError(t, f.SaveAs(path))
			require.NoError(t, f.Close())

			_, err = NewCatalogReader(path, internal.NewNopLogger()).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestReadMissingRequiredSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewCatalogReader(path, internal.NewNopLogger()).Load(context.Background())
	assert.ErrorContains(t, err, "sheet Phenomena not found")
}

func parametersHeadersRow() []interface{} {
	row := make([]interface{}, len(parametersHeaders))
	for i, h := range parametersHeaders {
		row[i] = h
	}
	return row
}
