package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/form"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/submission"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ports"
)

// FormService turns form input into links to the external processing form
type FormService struct {
	catalog *catalog.Catalog
	encoder *submission.Encoder
	logger  *internal.Logger
}

// FormRequest is one submission as posted by the browser or the JSON API
type FormRequest struct {
	PEID   string             `json:"pe_id" form:"pe_id"`
	Email  string             `json:"email" form:"email"`
	Values map[string]float64 `json:"values"`
}

// Submission is the outcome of an accepted request
type Submission struct {
	Record  submission.Record `json:"record"`
	URL     string            `json:"url"`
	Summary []submission.Pair `json:"summary"`
}

// NewFormService creates a form service over a validated catalog
func NewFormService(cat *catalog.Catalog, encoder *submission.Encoder, logger *internal.Logger) *FormService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &FormService{
		catalog: cat,
		encoder: encoder,
		logger:  logger.Named("form"),
	}
}

// LoadFormService loads the catalog from source, validates it and binds it to the endpoint
func LoadFormService(ctx context.Context, source ports.CatalogSource, endpoint string, logger *internal.Logger) (*FormService, error) {
	cat, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	encoder, err := submission.NewEncoder(endpoint, cat)
	if err != nil {
		return nil, err
	}
	return NewFormService(cat, encoder, logger), nil
}

// Catalog returns the catalog the form is rendered from
func (s *FormService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Endpoint returns the external form endpoint
func (s *FormService) Endpoint() string {
	return s.encoder.Endpoint()
}

// NewState returns an empty form
func (s *FormService) NewState() *form.State {
	return form.NewState(s.catalog)
}

// Build applies a request to a fresh form. The returned state is always usable for
// re-rendering, even when err reports an unknown category or rejected values.
func (s *FormService) Build(req FormRequest) (*form.State, error) {
	state := s.NewState()
	state.SetEmail(req.Email)
	if err := state.Select(req.PEID); err != nil {
		return state, err
	}

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if _, err := state.Set(name, req.Values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return state, errors.Join(errs...)
}

// Submit validates the form and encodes it. Nothing is stored; the record only
// lives in the returned link.
func (s *FormService) Submit(state *form.State) (*Submission, error) {
	rec, err := state.Record()
	if err != nil {
		return nil, err
	}

	link, err := s.encoder.Encode(rec)
	if err != nil {
		s.logger.Error("failed to encode submission %s: %v", rec.ID, err)
		return nil, err
	}

	s.logger.Info("accepted submission %s for %s", rec.ID, rec.Category)
	return &Submission{
		Record:  rec,
		URL:     link,
		Summary: s.encoder.Summary(rec),
	}, nil
}
