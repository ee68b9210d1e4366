package chtml

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/gochartkick/chartkick/idgen"
	"github.com/gochartkick/chartkick/msgs"
	pages "github.com/gochartkick/chartkick/template"
)

func TestFuncMap(t *testing.T) {
	var tofu = NewTofu(&pages.Registry{}, "/assets")
	tofu.ids = &idgen.Sequence{}

	var tmpl = template.Must(template.New("page").Funcs(FuncMap(tofu)).Parse(
		`{{include_chartkick_scripts}}
{{line_chart .Sales "height" "400px" "min" 0}}
{{column_chart .Sales}}`))

	var buf bytes.Buffer
	var err = tmpl.Execute(&buf, struct{ Sales map[string]int }{map[string]int{"Mon": 1, "Tue": 2}})
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{
		`<script src="http://www.google.com/jsapi"></script>
<script src="/assets/chartkick.js"></script>`,
		`new Chartkick.LineChart(document.getElementById("chart-0"), {"Mon": 1, "Tue": 2}, {"id": "chart-0", "height": "400px", "min": 0});`,
		`line-height: 400px;`,
		`new Chartkick.ColumnChart(document.getElementById("chart-1"), {"Mon": 1, "Tue": 2}, {"id": "chart-1", "height": "300px"});`,
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected to find\n%s\nin\n%s", s, buf.String())
		}
	}
}

func TestFuncMapErrors(t *testing.T) {
	var tests = []struct {
		name, text string
	}{
		{"odd options", `{{pie_chart .Data "height"}}`},
		{"non-string option name", `{{pie_chart .Data 1 2}}`},
		{"unconvertible data", `{{pie_chart .Chan}}`},
		{"unknown library", `{{include_chartkick_scripts "flot"}}`},
		{"too many libraries", `{{include_chartkick_scripts "highcharts" "googlecharts"}}`},
	}

	for _, test := range tests {
		var tofu = NewTofu(&pages.Registry{}, "/assets")
		var tmpl = template.Must(template.New(test.name).Funcs(FuncMap(tofu)).Parse(test.text))
		var err = tmpl.Execute(&bytes.Buffer{}, struct {
			Data []int
			Chan chan int
		}{[]int{1}, make(chan int)})
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestRendererFuncsUseMessages(t *testing.T) {
	var r = NewTofu(&pages.Registry{}, "/assets").NewRenderer("").
		WithIDs(idgen.Func(func() string { return "fixed" })).
		WithMessages(msgs.Map{Lang: "pt", Messages: map[string]string{msgs.Loading: "Carregando..."}})

	var tmpl = template.Must(template.New("page").Funcs(r.Funcs()).Parse(`{{pie_chart .}}`))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{`id="fixed"`, "Carregando...", `[1, 2]`} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected %q in\n%s", s, buf.String())
		}
	}
}

func TestFuncMapBlankDefaults(t *testing.T) {
	var tofu = NewTofu(&pages.Registry{}, "/assets")
	tofu.ids = &idgen.Sequence{}

	var tmpl = template.Must(template.New("page").Funcs(FuncMap(tofu)).Parse(
		`{{pie_chart .Sales "id" "" "height" " " "title" ""}}`))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Sales []int }{[]int{1}}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		`<div id="chart-0" style="height: 300px;`,
		`new Chartkick.PieChart(document.getElementById("chart-0"), [1], {"id": "chart-0", "height": "300px", "title": ""});`,
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("expected to find\n%s\nin\n%s", s, buf.String())
		}
	}
}
