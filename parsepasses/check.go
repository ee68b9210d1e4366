// Package parsepasses contains checks run over parsed pages after parsing.
package parsepasses

import (
	"fmt"
	"sort"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/chtml"
	"github.com/gochartkick/chartkick/template"
)

// CheckScripts validates that no page includes the chartkick scripts when
// there is no static URL to load them from.
func CheckScripts(reg *template.Registry, staticURL string) error {
	if staticURL != "" {
		return nil
	}
	for _, name := range reg.Names() {
		var page, ok = reg.Page(name)
		if !ok {
			continue
		}
		for _, node := range page.Body {
			if _, ok := node.(*ast.ScriptsNode); ok {
				return fmt.Errorf("%s:%d:%d: %w", name,
					reg.LineNumber(name, node), reg.ColNumber(name, node), chtml.ErrStaticURLRequired)
			}
		}
	}
	return nil
}

// DataRefs returns the top-level context variables the page's charts refer
// to, sorted.  Option references are included, even though an undefined one
// is not an error.
func DataRefs(page *ast.PageNode) []string {
	var seen = make(map[string]bool)
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		switch node := node.(type) {
		case *ast.DataRefNode:
			seen[node.Path[0]] = true
		case ast.ParentNode:
			for _, child := range node.Children() {
				walk(child)
			}
		}
	}
	for _, node := range page.Body {
		walk(node)
	}

	var names = make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
