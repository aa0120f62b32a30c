package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	apperrors "github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/errors"
)

// handleIndex renders the form. Choosing a phenomenon reloads this page with pe_id set;
// the email and shared controls ride along in the query so they survive the switch.
func (s *Server) handleIndex(c *gin.Context) {
	cat := s.forms.Catalog()
	shared, parseErr := readValues(c.GetQuery, specNames(cat.Shared))

	state, err := s.forms.Build(app.FormRequest{
		PEID:   c.Query("pe_id"),
		Email:  c.Query("email"),
		Values: shared,
	})
	err = errors.Join(parseErr, err)

	s.renderTemplate(c, apperrors.HTTPStatus(err), "index.html", newFormView(cat, state, err))
}

// handleSubmit validates the posted form and shows the link to the external form
func (s *Server) handleSubmit(c *gin.Context) {
	cat := s.forms.Catalog()
	peID := c.PostForm("pe_id")

	active := cat.Shared
	if params, err := cat.ActiveParameters(peID); err == nil {
		active = params
	}
	values, parseErr := readValues(c.GetPostForm, specNames(active))

	state, err := s.forms.Build(app.FormRequest{
		PEID:   peID,
		Email:  c.PostForm("email"),
		Values: values,
	})
	err = errors.Join(parseErr, err)

	var sub *app.Submission
	if err == nil {
		sub, err = s.forms.Submit(state)
	}
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		s.renderTemplate(c, status, "index.html", newFormView(cat, state, err))
		return
	}

	if s.opts.AutoRedirect {
		c.Redirect(http.StatusSeeOther, sub.URL)
		return
	}
	s.renderTemplate(c, http.StatusOK, "submitted.html", submittedView{
		Title:      cat.Title,
		URL:        sub.URL,
		Submission: sub,
	})
}

func specNames(specs []catalog.ParameterSpec) []string {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	return names
}

// readValues collects the named numeric fields that are present and non-blank
func readValues(lookup func(string) (string, bool), names []string) (map[string]float64, error) {
	values := make(map[string]float64)
	var errs []error
	for _, name := range names {
		raw, ok := lookup(name)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, apperrors.InvalidInput(fmt.Sprintf("%s must be a number, got %q", name, raw)))
			continue
		}
		values[name] = v
	}
	return values, errors.Join(errs...)
}
