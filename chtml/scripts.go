package chtml

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"strings"

	"github.com/gochartkick/chartkick/ast"
)

// ErrStaticURLRequired is returned when script tags are requested without a
// static asset URL to load chartkick.js from.
var ErrStaticURLRequired = errors.New("static URL required to include chartkick scripts")

// Sources of the third-party libraries each ScriptLibrary loads, in order.
var librarySources = map[ast.ScriptLibrary][]string{
	ast.GoogleCharts: {
		"http://www.google.com/jsapi",
	},
	ast.Highcharts: {
		"http://ajax.googleapis.com/ajax/libs/jquery/1.8.3/jquery.min.js",
		"http://code.highcharts.com/highcharts.js",
	},
}

var scriptsTemplate = template.Must(template.New("scripts").Parse(
	`{{range $i, $src := .}}{{if $i}}
{{end}}<script src="{{$src}}"></script>{{end}}`))

// ScriptSources returns the script URLs to include for lib, ending with
// chartkick.js under staticURL.
func ScriptSources(lib ast.ScriptLibrary, staticURL string) ([]string, error) {
	if staticURL == "" {
		return nil, ErrStaticURLRequired
	}
	var srcs, ok = librarySources[lib]
	if !ok {
		return nil, errors.New("unknown script library: " + lib.String())
	}
	return append(append([]string(nil), srcs...),
		strings.TrimSuffix(staticURL, "/")+"/chartkick.js"), nil
}

// WriteScripts writes the <script> tags for lib to w.
func WriteScripts(w io.Writer, lib ast.ScriptLibrary, staticURL string) error {
	var srcs, err = ScriptSources(lib, staticURL)
	if err != nil {
		return err
	}
	return scriptsTemplate.Execute(w, srcs)
}

// ScriptsHTML returns the <script> tags for lib.
func ScriptsHTML(lib ast.ScriptLibrary, staticURL string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := WriteScripts(&buf, lib, staticURL); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
