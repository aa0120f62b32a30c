package catalog

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/core"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the catalog before it is served. All defects are reported together.
func (c *Catalog) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return core.NewCatalogError("%v", err)
	}

	var problems []error
	report := func(format string, args ...interface{}) {
		problems = append(problems, core.NewCatalogError(format, args...))
	}

	integer := make(map[string]bool)
	checkSpec := func(owner string, s ParameterSpec) {
		if s.Name == FieldCategory || s.Name == FieldEmail {
			report("%s: parameter name %q is reserved", owner, s.Name)
		}
		if !s.Contains(s.Default) {
			report("%s: default %v of %s is outside [%v, %v]", owner, s.Default, s.Name, s.Min, s.Max)
		}
		if prev, ok := integer[s.Name]; ok && prev != s.Integer {
			report("%s: %s is declared both integer and fractional", owner, s.Name)
		}
		integer[s.Name] = s.Integer
	}

	shared := make(map[string]bool)
	for _, s := range c.Shared {
		if shared[s.Name] {
			report("shared: duplicate parameter %s", s.Name)
		}
		shared[s.Name] = true
		checkSpec("shared", s)
	}

	ids := make(map[string]bool)
	for _, p := range c.Phenomena {
		if ids[p.ID] {
			report("duplicate phenomenon id %s", p.ID)
		}
		ids[p.ID] = true

		names := make(map[string]bool)
		for _, s := range p.Parameters {
			if names[s.Name] || shared[s.Name] {
				report("%s: duplicate parameter %s", p.ID, s.Name)
			}
			names[s.Name] = true
			checkSpec(p.ID, s)
		}
	}

	external := make(map[string]string)
	for _, name := range c.FieldSet() {
		id, err := c.FieldID(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if other, ok := external[id]; ok {
			report("fields %s and %s share the external identifier %s", other, name, id)
		}
		external[id] = name
	}
	for key := range c.StaticParams {
		if name, ok := external[key]; ok {
			report("static parameter %s collides with the identifier of %s", key, name)
		}
	}

	return errors.Join(problems...)
}
