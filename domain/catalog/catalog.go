package catalog

import (
	"encoding/json"
	"strings"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/core"
)

// Lookup finds a phenomenon by its PE ID
func (c *Catalog) Lookup(id string) (Phenomenon, bool) {
	for _, p := range c.Phenomena {
		if p.ID == id {
			return p, true
		}
	}
	return Phenomenon{}, false
}

// IDs returns the phenomenon identifiers in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Phenomena))
	for _, p := range c.Phenomena {
		ids = append(ids, p.ID)
	}
	return ids
}

// ParameterNames is the ordered union of every semantic parameter name:
// shared controls first, then each phenomenon's controls in catalog order.
func (c *Catalog) ParameterNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(specs []ParameterSpec) {
		for _, s := range specs {
			if !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
		}
	}
	add(c.Shared)
	for _, p := range c.Phenomena {
		add(p.Parameters)
	}
	return names
}

// FieldSet is the fixed list of semantic fields every submission encodes
func (c *Catalog) FieldSet() []string {
	names := append([]string{FieldCategory}, c.ParameterNames()...)
	return append(names, FieldEmail)
}

// ActiveParameters returns the controls shown for a phenomenon, shared controls first
func (c *Catalog) ActiveParameters(id string) ([]ParameterSpec, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return nil, core.NewUnknownCategoryError(id)
	}
	active := make([]ParameterSpec, 0, len(c.Shared)+len(p.Parameters))
	active = append(active, c.Shared...)
	return append(active, p.Parameters...), nil
}

// Spec returns the first declaration of a parameter name. Shared declarations win.
func (c *Catalog) Spec(name string) (ParameterSpec, bool) {
	for _, s := range c.Shared {
		if s.Name == name {
			return s, true
		}
	}
	for _, p := range c.Phenomena {
		for _, s := range p.Parameters {
			if s.Name == name {
				return s, true
			}
		}
	}
	return ParameterSpec{}, false
}

// IsShared reports whether name is active for every phenomenon
func (c *Catalog) IsShared(name string) bool {
	for _, s := range c.Shared {
		if s.Name == name {
			return true
		}
	}
	return false
}

// FieldID resolves a semantic name to its external field identifier.
// A catalog without a field map uses the semantic names themselves.
func (c *Catalog) FieldID(name string) (string, error) {
	if c.Fields == nil {
		return name, nil
	}
	id := strings.TrimSpace(c.Fields[name])
	if id == "" {
		return "", core.NewUnmappedFieldError(name)
	}
	return id, nil
}

// Fingerprint identifies the catalog contents. Two catalogs with the same controls,
// labels and field map share a fingerprint whatever source they came from.
func (c *Catalog) Fingerprint() core.Hash {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return core.NewHash(data)
}
