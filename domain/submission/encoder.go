package submission

import (
	"fmt"
	"net/url"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
)

// Encoder turns records into links to the external form-processing endpoint
type Encoder struct {
	base    *url.URL
	catalog *catalog.Catalog
}

// NewEncoder parses the endpoint base URL. Only absolute http(s) URLs are accepted.
func NewEncoder(baseURL string, cat *catalog.Catalog) (*Encoder, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint URL must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint URL has no host: %q", baseURL)
	}
	return &Encoder{base: u, catalog: cat}, nil
}

// Endpoint returns the configured base URL
func (e *Encoder) Endpoint() string {
	return e.base.String()
}

// Query maps the record onto the fixed field set. Parameters missing from the record
// carry the zero placeholder. Any query already present on the base URL is kept.
func (e *Encoder) Query(rec Record) (url.Values, error) {
	q := e.base.Query()
	for k, v := range e.catalog.StaticParams {
		q.Set(k, v)
	}

	for _, pair := range e.Summary(rec) {
		id, err := e.catalog.FieldID(pair.Name)
		if err != nil {
			return nil, err
		}
		q.Set(id, pair.Value)
	}
	return q, nil
}

// Encode returns the full link the browser follows to deliver the request
func (e *Encoder) Encode(rec Record) (string, error) {
	q, err := e.Query(rec)
	if err != nil {
		return "", err
	}
	u := *e.base
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Summary lists the semantic fields in their fixed order with the values that will be sent
func (e *Encoder) Summary(rec Record) []Pair {
	names := e.catalog.ParameterNames()
	pairs := make([]Pair, 0, len(names)+2)
	pairs = append(pairs, Pair{Name: catalog.FieldCategory, Value: rec.Category})
	for _, name := range names {
		spec, _ := e.catalog.Spec(name)
		pairs = append(pairs, Pair{Name: name, Value: spec.Format(rec.Values[name])})
	}
	return append(pairs, Pair{Name: catalog.FieldEmail, Value: rec.Email})
}
