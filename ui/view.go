package ui

import (
	"html/template"
	"strconv"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/app"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/catalog"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/domain/form"
)

type optionView struct {
	ID       string
	Label    string
	Selected bool
}

type controlView struct {
	Name  string
	Label template.HTML
	Help  template.HTML
	Min   string
	Max   string
	Step  string
	Value string
}

type formView struct {
	Title       string
	Intro       template.HTML
	Options     []optionView
	Selected    string
	Description template.HTML
	Shared      []controlView
	Controls    []controlView
	Email       string
	Errors      []string
}

type submittedView struct {
	Title      string
	URL        string
	Submission *app.Submission
}

func newFormView(cat *catalog.Catalog, state *form.State, err error) formView {
	v := formView{
		Title:    cat.Title,
		Intro:    renderMarkdown(cat.Intro),
		Selected: state.Category(),
		Email:    state.Email(),
		Errors:   errorMessages(err),
	}

	for _, p := range cat.Phenomena {
		v.Options = append(v.Options, optionView{ID: p.ID, Label: p.Label, Selected: p.ID == v.Selected})
	}

	for _, spec := range state.Active() {
		control := newControlView(spec, state.Value(spec.Name))
		if cat.IsShared(spec.Name) {
			v.Shared = append(v.Shared, control)
		} else {
			v.Controls = append(v.Controls, control)
		}
	}

	if p, ok := cat.Lookup(v.Selected); ok {
		v.Description = renderMarkdown(p.Description)
	}
	return v
}

func newControlView(spec catalog.ParameterSpec, value float64) controlView {
	return controlView{
		Name:  spec.Name,
		Label: renderInlineMarkdown(spec.Label),
		Help:  renderInlineMarkdown(spec.Help),
		Min:   spec.Format(spec.Min),
		Max:   spec.Format(spec.Max),
		Step:  strconv.FormatFloat(spec.Step, 'f', -1, 64),
		Value: spec.Format(value),
	}
}

// errorMessages flattens joined errors into one message per line
func errorMessages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, errorMessages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
