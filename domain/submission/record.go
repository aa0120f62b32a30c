package submission

import (
	"time"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/core"
)

// Record is the request handed to the external form. It is built once at submit time
// and never stored.
type Record struct {
	ID        core.SubmissionID  `json:"id"`
	Category  string             `json:"pe_id"`
	Values    map[string]float64 `json:"values"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewRecord copies values so later edits to the caller's map do not leak into the record
func NewRecord(category, email string, values map[string]float64) Record {
	copied := make(map[string]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Record{
		ID:        core.NewSubmissionID(),
		Category:  category,
		Values:    copied,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// Pair is one semantic field and its display value
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
