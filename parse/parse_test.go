package parse

import (
	"reflect"
	"testing"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/errortypes"
)

func TestPage(t *testing.T) {
	var input = `{% load chartkick %}<html>
<head>{% include_chartkick_scripts "highcharts" %}</head>
{# the daily chart #}<body>{% line_chart sales with height=400px %}</body>
</html>`

	var page, err = Page("sales.html", input)
	if err != nil {
		t.Fatal(err)
	}

	var expected = []ast.Node{
		&ast.LoadNode{Pos: 0, Libraries: []string{"chartkick"}},
		&ast.RawTextNode{Pos: 20, Text: []byte("<html>\n<head>")},
		&ast.ScriptsNode{Pos: 33, Library: ast.Highcharts},
		&ast.RawTextNode{Pos: 77, Text: []byte("</head>\n")},
		&ast.RawTextNode{Pos: 106, Text: []byte("<body>")},
		&ast.ChartNode{Pos: 112, Kind: ast.LineChart, Data: &ast.DataRefNode{Pos: 112, Path: []string{"sales"}}, With: true,
			Options: []*ast.OptionNode{{Pos: 112, Key: "height", Value: &ast.StringNode{Pos: 112, Value: "400px"}}}},
		&ast.RawTextNode{Pos: 152, Text: []byte("</body>\n</html>")},
	}
	if !reflect.DeepEqual(expected, page.Body) {
		t.Errorf("got:\n%#v\nexpected:\n%#v", page.Body, expected)
		for i := range page.Body {
			t.Logf("%d: %#v", i, page.Body[i])
		}
	}
	if page.Name != "sales.html" || page.Text != input {
		t.Errorf("unexpected page header: %q", page.Name)
	}
}

func TestPageErrors(t *testing.T) {
	var tests = []struct {
		name, input string
		msg         string
		line, col   int
	}{
		{"missing argument", "<p>\n  {% line_chart %}", "bad.html:2:3: line_chart: statement requires at least one argument", 2, 3},
		{"unknown tag", "{% if x %}", "bad.html:1:1: if: unknown tag", 1, 1},
		{"unclosed tag", "a\nb {% pie_chart x", "bad.html:2:3: unclosed tag", 2, 3},
		{"bad option", "{% column_chart x with y %}\n{% line_chart %}", `bad.html:1:1: column_chart: invalid arguments: "y"`, 1, 1},
		{"empty tag", "x {%  %}", "bad.html:1:3: empty tag", 1, 3},
		{"unclosed comment", "x {# y", "bad.html:1:3: unclosed comment", 1, 3},
	}

	for _, test := range tests {
		var _, err = Page("bad.html", test.input)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if err.Error() != test.msg {
			t.Errorf("%s: got %q, expected %q", test.name, err.Error(), test.msg)
		}
		var pos = errortypes.ToErrFilePos(err)
		if pos == nil {
			t.Errorf("%s: expected a positioned error", test.name)
			continue
		}
		if pos.Line() != test.line || pos.Col() != test.col {
			t.Errorf("%s: got %d:%d, expected %d:%d", test.name, pos.Line(), pos.Col(), test.line, test.col)
		}
	}
}
