package excel

// RawRowData represents a row of raw sheet data keyed by lower-cased header
type RawRowData map[string]string

// SheetData represents one worksheet
type SheetData struct {
	Name    string
	Headers []string
	Rows    []RawRowData
}
