package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gochartkick/chartkick"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/msgs"
)

func init() {
	log = zerolog.Nop()
	chartkick.Logger = log
}

type fakeMessages map[string]msgs.Map

func (f fakeMessages) Bundle(locale string) msgs.Bundle {
	if m, ok := f[locale]; ok {
		return m
	}
	return nil
}

func newTestServer(t *testing.T, page string, messages msgs.Provider) *httptest.Server {
	t.Helper()
	var tofu, err = chartkick.NewBundle().
		AddTemplateString("page.html", page).
		StaticURL("/static").
		CompileToTofu()
	if err != nil {
		t.Fatal(err)
	}
	var srv = newServer(tofu, "page.html", messages, prometheus.NewRegistry())
	var ts = httptest.NewServer(withLogging(srv.routes()))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header http.Header) (int, string) {
	t.Helper()
	var req, err = http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServe(t *testing.T) {
	var ts = newTestServer(t, "{% line_chart sales with title=title %}", fakeMessages{
		"fr": {Lang: "fr", Messages: map[string]string{msgs.Loading: "Chargement..."}},
	})

	var tests = []struct {
		query    string
		header   http.Header
		status   int
		contains []string
	}{
		{"?sales=[1,2,3]&title=Weekly", nil, 200, []string{`[1, 2, 3]`, `"title": "Weekly"`, "Loading..."}},
		{"?sales=%7B%22a%22:1%7D&title=%22x+y%22", nil, 200, []string{`{"a": 1}`, `"title": "x y"`}},
		{"?sales=1&locale=fr", nil, 200, []string{"Chargement..."}},
		{"?sales=1", http.Header{"Accept-Language": {"de, fr;q=0.8"}}, 200, []string{"Chargement..."}},
		{"?title=no+data", nil, 500, []string{`failed lookup for variable "sales"`}},
	}

	for _, test := range tests {
		var status, body = get(t, ts.URL+"/"+test.query, test.header)
		if status != test.status {
			t.Errorf("%s: status %d, expected %d\n%s", test.query, status, test.status, body)
		}
		for _, s := range test.contains {
			if !strings.Contains(body, s) {
				t.Errorf("%s: expected %q in\n%s", test.query, s, body)
			}
		}
	}

	var _, metrics = get(t, ts.URL+"/metrics", nil)
	for _, s := range []string{
		`chartkick_renders_total{page="page.html"} 4`,
		`chartkick_render_errors_total{page="page.html"} 1`,
	} {
		if !strings.Contains(metrics, s) {
			t.Errorf("expected %q in metrics:\n%s", s, metrics)
		}
	}
}

func TestQueryContext(t *testing.T) {
	var req = httptest.NewRequest("GET", "/?n=5&f=1.5&ok=true&s=hello&locale=fr&list=[1]", nil)
	var ctx = queryContext(req)
	var expected = map[string]string{
		"n":    "5",
		"f":    "1.5",
		"ok":   "true",
		"s":    "hello",
		"list": "[1]",
	}
	if len(ctx) != len(expected) {
		t.Errorf("got %v", ctx)
	}
	for k, v := range expected {
		if got := ctx[k]; got == nil || got.String() != v {
			t.Errorf("%s: got %v, expected %v", k, got, v)
		}
	}
	if _, ok := ctx["s"].(data.String); !ok {
		t.Errorf("s: expected a string, got %T", ctx["s"])
	}
	if _, ok := ctx["n"].(data.Int); !ok {
		t.Errorf("n: expected an int, got %T", ctx["n"])
	}
}
