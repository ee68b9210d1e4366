// Package chtml renders chart tags, and pages containing them, to HTML.
package chtml

import (
	"errors"
	"html/template"
	"io"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/idgen"
	"github.com/gochartkick/chartkick/msgs"
	"github.com/gochartkick/chartkick/resolve"
)

// ErrTemplateNotFound is returned when a page is not in the registry.
var ErrTemplateNotFound = errors.New("template not found")

// Renderer provides parameters to page execution.
type Renderer struct {
	tofu *Tofu           // a registry of all pages in a bundle
	name string          // name of the page to render
	ids  idgen.Generator // allocates default chart ids
	msgs msgs.Bundle     // placeholder text
}

// WithIDs sets the generator that allocates chart ids.
func (r *Renderer) WithIDs(ids idgen.Generator) *Renderer {
	r.ids = ids
	return r
}

// WithMessages provides a message bundle to use during execution.
func (r *Renderer) WithMessages(bundle msgs.Bundle) *Renderer {
	r.msgs = bundle
	return r
}

// Execute applies a parsed page to the specified data object, and writes the
// output to wr.
func (r Renderer) Execute(wr io.Writer, obj data.Map) (err error) {
	if r.tofu == nil || r.tofu.registry == nil {
		return errors.New("template registry required")
	}
	if r.name == "" {
		return errors.New("template name required")
	}

	var page, ok = r.tofu.registry.Page(r.name)
	if !ok {
		return ErrTemplateNotFound
	}

	state := &state{
		page:      page,
		registry:  r.tofu.registry,
		wr:        wr,
		scope:     r.scope(obj),
		ids:       r.ids,
		msgs:      r.msgs,
		staticURL: r.tofu.staticURL,
	}
	defer state.errRecover(&err)
	state.walk(page)
	return
}

// Chart renders a single chart tag against obj.  It is the unit every
// chart on a page goes through.
func (r Renderer) Chart(node *ast.ChartNode, obj data.Map) (template.HTML, error) {
	var chart, err = resolve.Resolve(node, r.scope(obj), r.ids.Next())
	if err != nil {
		return "", err
	}
	return ChartHTML(chart, r.msgs)
}

// scope stacks the render context on top of the globals.
func (r Renderer) scope(obj data.Map) resolve.Scope {
	var s = resolve.Scope{r.tofu.globals}
	if obj != nil {
		s = append(s, obj)
	}
	return s
}
