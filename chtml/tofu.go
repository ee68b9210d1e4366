package chtml

import (
	"fmt"
	"io"

	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/idgen"
	"github.com/gochartkick/chartkick/template"
)

// Tofu is a bundle of parsed pages, ready to render to HTML.
type Tofu struct {
	registry  *template.Registry
	staticURL string   // base URL of chartkick.js
	globals   data.Map // bindings visible beneath every render context
	ids       idgen.Generator
}

// NewTofu returns a new instance that is ready to provide HTML rendering
// services for the given pages.  Chart ids come from idgen.Default.
func NewTofu(registry *template.Registry, staticURL string) *Tofu {
	return &Tofu{
		registry:  registry,
		staticURL: staticURL,
		globals:   data.Map{},
		ids:       idgen.Default,
	}
}

// AddGlobals makes the given values available to every page.  Values in the
// render context take precedence over globals of the same name.
func (tofu *Tofu) AddGlobals(globals data.Map) *Tofu {
	var newglobals = make(data.Map, len(tofu.globals)+len(globals))
	for k, v := range tofu.globals {
		newglobals[k] = v
	}
	for k, v := range globals {
		newglobals[k] = v
	}
	tofu.globals = newglobals
	return tofu
}

// StaticURL returns the base URL that chartkick.js is served from.
func (tofu *Tofu) StaticURL() string {
	return tofu.staticURL
}

// Registry returns the pages this Tofu renders.
func (tofu *Tofu) Registry() *template.Registry {
	return tofu.registry
}

// Render is a convenience function that executes the page of the given name,
// using the given object (converted to data.Map) as context, and writes the
// results to the given Writer.
//
// When converting structs, data.DefaultStructOptions are used.  In
// particular, struct fields are converted to lowerCamel unless a json tag
// names them.
func (tofu *Tofu) Render(wr io.Writer, name string, obj interface{}) (err error) {
	var m data.Map
	if obj != nil {
		defer func() {
			if e := recover(); e != nil {
				err = fmt.Errorf("converting render context: %v", e)
			}
		}()
		var ok bool
		m, ok = data.New(obj).(data.Map)
		if !ok {
			return fmt.Errorf("invalid data type. expected map/struct, got %T", obj)
		}
	}
	return tofu.NewRenderer(name).Execute(wr, m)
}

// NewRenderer returns a new instance of an html renderer for the named page.
func (tofu *Tofu) NewRenderer(name string) *Renderer {
	return &Renderer{
		tofu: tofu,
		name: name,
		ids:  tofu.ids,
	}
}
