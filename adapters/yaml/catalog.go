// Package yaml reads and writes phenomenon catalogs as YAML documents.
//
// A minimal document:
//
//	title: Dynamic Data Gem (DDG) Generator
//	shared:
//	  - {name: Noise_Sigma, label: Measurement Noise, min: 0, max: 1000, step: 50, default: 200, integer: true}
//	phenomena:
//	  - id: LS2-1
//	    label: "LS2-1: Logistic Growth"
//	    parameters:
//	      - {name: L_param, label: Carrying Capacity (L), min: 1000, max: 20000, step: 100, default: 8000, integer: true}
//	fields:
//	  PE_ID: entry.1001
package yaml

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// Loader reads a catalog from a YAML file on every Load
type Loader struct {
	path string
}

// NewLoader creates a YAML catalog source for path
func NewLoader(path string) ports.CatalogSource {
	return &Loader{path: path}
}

// Load reads and decodes the file
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document. Unknown keys are rejected so a misspelled
// field map does not silently fall back to the semantic names.
func Parse(data []byte) (*catalog.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c catalog.Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}

// Marshal encodes a catalog as YAML
func Marshal(c *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the catalog to path
func WriteFile(path string, c *catalog.Catalog) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
