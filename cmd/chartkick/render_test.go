package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, filename, content string) string {
	t.Helper()
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestRenderCmd(t *testing.T) {
	var dir = t.TempDir()
	var page = writeFile(t, filepath.Join(dir, "page.html"),
		"{% include_chartkick_scripts %}\n{% pie_chart browsers with height=height %}\n")
	var ctx = writeFile(t, filepath.Join(dir, "ctx.json"), `{"browsers": [["Firefox", 45], ["Chrome", 55]]}`)
	var globals = writeFile(t, filepath.Join(dir, "globals.txt"), "height = 250px\n")
	var out = filepath.Join(dir, "page.out.html")

	var cmd = newRootCmd()
	cmd.SetArgs([]string{"render", page, "--data", ctx, "--out", out, "--globals", globals, "--static-url", "/assets/"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var content, err = os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{
		`<script src="/assets/chartkick.js"></script>`,
		`new Chartkick.PieChart(document.getElementById("chart-0"), [["Firefox", 45], ["Chrome", 55]], {"id": "chart-0", "height": "250px"});`,
	} {
		if !strings.Contains(string(content), s) {
			t.Errorf("expected %q in\n%s", s, content)
		}
	}
}

func TestRenderCmdStdout(t *testing.T) {
	var dir = t.TempDir()
	var page = writeFile(t, filepath.Join(dir, "page.html"), "<h1>{% column_chart data %}</h1>")
	var ctx = writeFile(t, filepath.Join(dir, "ctx.json"), `{"data": {"Mon": 1.5}}`)

	var stdout bytes.Buffer
	var cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"render", page, "-d", ctx})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), `<h1><div id="chart-0"`) ||
		!strings.Contains(stdout.String(), `{"Mon": 1.5}`) {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestRenderCmdErrors(t *testing.T) {
	var dir = t.TempDir()
	var page = writeFile(t, filepath.Join(dir, "page.html"), "{% line_chart data %}")
	var list = writeFile(t, filepath.Join(dir, "list.json"), `[1, 2]`)
	var bad = writeFile(t, filepath.Join(dir, "bad.json"), `{"data": `)

	for _, args := range [][]string{
		{"render", page},
		{"render", page, "--data", list},
		{"render", page, "--data", bad},
		{"render", page, "--data", filepath.Join(dir, "missing.json")},
		{"render", filepath.Join(dir, "missing.html")},
		{"render"},
	} {
		var cmd = newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestXgettextCmd(t *testing.T) {
	var stdout bytes.Buffer
	var cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"xgettext"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), `msgid "Loading..."`) {
		t.Errorf("unexpected template:\n%s", stdout.String())
	}
}
