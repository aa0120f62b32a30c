// Package form holds the selections of one form render: the chosen phenomenon,
// the value of every control and the requester's email address.
package form

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/core"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/submission"
)

var emailValidator = validator.New()

// State is owned by a single request and is not safe for concurrent use
type State struct {
	catalog  *catalog.Catalog
	category string
	values   map[string]float64
	email    string
}

// NewState starts with no phenomenon selected. Shared controls sit at their defaults,
// everything else at the zero placeholder.
func NewState(cat *catalog.Catalog) *State {
	s := &State{catalog: cat}
	s.reset()
	return s
}

func (s *State) reset() {
	s.values = make(map[string]float64)
	for _, name := range s.catalog.ParameterNames() {
		s.values[name] = 0
	}
	for _, spec := range s.catalog.Shared {
		s.values[spec.Name] = spec.Default
	}
}

// Select activates the controls of a phenomenon at their defaults and resets every other
// control to the zero placeholder. Shared controls keep their current value.
// An empty id clears the selection.
func (s *State) Select(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		s.category = ""
		s.resetCategoryValues(nil)
		return nil
	}

	p, ok := s.catalog.Lookup(id)
	if !ok {
		return core.NewUnknownCategoryError(id)
	}
	s.category = p.ID
	s.resetCategoryValues(p.Parameters)
	return nil
}

func (s *State) resetCategoryValues(active []catalog.ParameterSpec) {
	for name := range s.values {
		if !s.catalog.IsShared(name) {
			s.values[name] = 0
		}
	}
	for _, spec := range active {
		s.values[spec.Name] = spec.Default
	}
}

// Set moves an active control and returns the value actually stored,
// which is clamped to the control's bounds and step.
func (s *State) Set(name string, v float64) (float64, error) {
	if _, known := s.values[name]; !known {
		return 0, core.NewUnknownParameterError(name)
	}
	spec, ok := s.activeSpec(name)
	if !ok {
		return 0, core.NewInactiveParameterError(name, s.category)
	}
	stored := spec.Clamp(v)
	s.values[name] = stored
	return stored, nil
}

func (s *State) activeSpec(name string) (catalog.ParameterSpec, bool) {
	for _, spec := range s.Active() {
		if spec.Name == name {
			return spec, true
		}
	}
	return catalog.ParameterSpec{}, false
}

// SetEmail records where the generated data set should be sent
func (s *State) SetEmail(email string) {
	s.email = strings.TrimSpace(email)
}

// Category returns the selected PE ID, or "" when nothing is selected
func (s *State) Category() string {
	return s.category
}

// Email returns the trimmed email address
func (s *State) Email() string {
	return s.email
}

// Active returns the controls currently shown: shared controls, plus the selected
// phenomenon's controls when one is selected.
func (s *State) Active() []catalog.ParameterSpec {
	if s.category == "" {
		return append([]catalog.ParameterSpec(nil), s.catalog.Shared...)
	}
	active, _ := s.catalog.ActiveParameters(s.category)
	return active
}

// Value returns the stored value of a control
func (s *State) Value(name string) float64 {
	return s.values[name]
}

// Values returns a copy of every control value, active or not
func (s *State) Values() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validate returns the blocking messages shown at submit time
func (s *State) Validate() error {
	var errs []error
	if s.category == "" {
		errs = append(errs, core.ErrNoCategory)
	}
	switch {
	case s.email == "":
		errs = append(errs, core.ErrMissingEmail)
	case emailValidator.Var(s.email, "email") != nil:
		errs = append(errs, core.ErrInvalidEmail)
	}
	return errors.Join(errs...)
}

// Record validates the state and snapshots it into a submission record
func (s *State) Record() (submission.Record, error) {
	if err := s.Validate(); err != nil {
		return submission.Record{}, err
	}
	return submission.NewRecord(s.category, s.email, s.values), nil
}
