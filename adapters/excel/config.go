package excel

// SharedPhenomenon marks a Parameters row as a shared control
const SharedPhenomenon = "*"

// WorkbookLayout names the sheets of a catalog workbook
type WorkbookLayout struct {
	PhenomenaSheet  string `json:"phenomena_sheet"`
	ParametersSheet string `json:"parameters_sheet"`
	FieldsSheet     string `json:"fields_sheet"`
	StaticSheet     string `json:"static_sheet"`
	SettingsSheet   string `json:"settings_sheet"`
}

// DefaultWorkbookLayout returns the sheet names written by WriteCatalog
func DefaultWorkbookLayout() WorkbookLayout {
	return WorkbookLayout{
		PhenomenaSheet:  "Phenomena",
		ParametersSheet: "Parameters",
		FieldsSheet:     "Fields",
		StaticSheet:     "Static",
		SettingsSheet:   "Settings",
	}
}

var (
	phenomenaHeaders  = []string{"id", "label", "description"}
	parametersHeaders = []string{"phenomenon", "name", "label", "min", "max", "step", "default", "integer", "help"}
	fieldsHeaders     = []string{"name", "field_id"}
	staticHeaders     = []string{"key", "value"}
	settingsHeaders   = []string{"key", "value"}
)
