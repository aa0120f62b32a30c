package catalog

// Reserved semantic field names. Every submission carries them next to the parameters.
const (
	FieldCategory = "PE_ID"
	FieldEmail    = "Email"
)

// ParameterSpec declares one bounded numeric control
type ParameterSpec struct {
	Name    string  `json:"name" yaml:"name" db:"name" validate:"required"`
	Label   string  `json:"label" yaml:"label" db:"label" validate:"required"`
	Help    string  `json:"help,omitempty" yaml:"help,omitempty" db:"help"`
	Min     float64 `json:"min" yaml:"min" db:"min_value"`
	Max     float64 `json:"max" yaml:"max" db:"max_value" validate:"gtfield=Min"`
	Step    float64 `json:"step" yaml:"step" db:"step" validate:"gt=0"`
	Default float64 `json:"default" yaml:"default" db:"default_value"`
	Integer bool    `json:"integer,omitempty" yaml:"integer,omitempty" db:"is_integer"`
}

// Phenomenon is one selectable category and the controls it activates
type Phenomenon struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	Label       string          `json:"label" yaml:"label" validate:"required"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []ParameterSpec `json:"parameters" yaml:"parameters" validate:"dive"`
}

// FieldMap maps a semantic field name to the opaque identifier the external form expects
type FieldMap map[string]string

// Catalog is the fixed set of phenomena, the shared controls and the external field mapping.
// A loaded catalog is read-only and safe to share between requests.
type Catalog struct {
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Intro        string            `json:"intro,omitempty" yaml:"intro,omitempty"`
	Phenomena    []Phenomenon      `json:"phenomena" yaml:"phenomena" validate:"required,min=1,dive"`
	Shared       []ParameterSpec   `json:"shared,omitempty" yaml:"shared,omitempty" validate:"dive"`
	Fields       FieldMap          `json:"fields,omitempty" yaml:"fields,omitempty"`
	StaticParams map[string]string `json:"static_params,omitempty" yaml:"static_params,omitempty"`
}
