package chtml

import (
	"fmt"
	"html/template"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/parse"
	"github.com/gochartkick/chartkick/resolve"
)

// FuncMap returns functions that draw charts from an html/template, using
// the tofu's static URL and id generator:
//
//	{{include_chartkick_scripts "highcharts"}}
//	{{line_chart .Sales "height" "400px" "library" .Library}}
//
// The chart functions take the chart data followed by option name/value
// pairs.
func FuncMap(tofu *Tofu) template.FuncMap {
	return tofu.NewRenderer("").Funcs()
}

// Funcs returns the html/template functions for this renderer, sharing its
// id generator and messages.
func (r *Renderer) Funcs() template.FuncMap {
	var funcs = template.FuncMap{
		parse.ScriptsTag: r.includeScripts,
	}
	for _, kind := range ast.ChartKinds {
		funcs[kind.Tag()] = r.chartFunc(kind)
	}
	return funcs
}

func (r *Renderer) chartFunc(kind ast.ChartKind) func(interface{}, ...interface{}) (template.HTML, error) {
	return func(obj interface{}, pairs ...interface{}) (html template.HTML, err error) {
		if len(pairs)%2 != 0 {
			return "", fmt.Errorf("%s: options must be name/value pairs, got %d arguments", kind.Tag(), len(pairs))
		}
		defer func() {
			if e := recover(); e != nil {
				err = fmt.Errorf("%s: %v", kind.Tag(), e)
			}
		}()

		var opts = resolve.Defaults(r.ids.Next())
		for i := 0; i < len(pairs); i += 2 {
			var key, ok = pairs[i].(string)
			if !ok || key == "" {
				return "", fmt.Errorf("%s: option name must be a non-empty string, got %v", kind.Tag(), pairs[i])
			}
			opts.Overlay(key, data.New(pairs[i+1]))
		}
		return ChartHTML(&resolve.Chart{
			Kind:    kind,
			Data:    data.New(obj),
			Options: opts,
		}, r.msgs)
	}
}

func (r *Renderer) includeScripts(selector ...string) (template.HTML, error) {
	if len(selector) > 1 {
		return "", fmt.Errorf("%s: takes at most one argument, got %d", parse.ScriptsTag, len(selector))
	}
	var name string
	if len(selector) == 1 {
		name = selector[0]
	}
	var lib, err = parse.ScriptLibrary(name)
	if err != nil {
		return "", err
	}
	return ScriptsHTML(lib, r.tofu.staticURL)
}
