// Package template holds the parsed pages of a bundle.
package template

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gochartkick/chartkick/ast"
)

// Registry provides convenient access to a collection of parsed pages.  It is
// safe for concurrent use, and its pages may be swapped out while in use.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]*ast.PageNode
}

// Add adds the given page to the registry.  Page names must be unique.
func (r *Registry) Add(page *ast.PageNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pages == nil {
		r.pages = make(map[string]*ast.PageNode)
	}
	if _, ok := r.pages[page.Name]; ok {
		return fmt.Errorf("page %q is defined twice", page.Name)
	}
	r.pages[page.Name] = page
	return nil
}

// Page returns the page with the given name.
func (r *Registry) Page(name string) (*ast.PageNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var page, ok = r.pages[name]
	return page, ok
}

// Replace swaps in the pages of other.  Renders already under way keep the
// pages they started with.
func (r *Registry) Replace(other *Registry) {
	other.mu.RLock()
	var pages = other.pages
	other.mu.RUnlock()
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
}

// Names returns the names of all registered pages, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LineNumber computes the line number in the named page on which the given
// node occurs, or 0 if the page is unknown.
func (r *Registry) LineNumber(name string, node ast.Node) int {
	var page, ok = r.Page(name)
	if !ok {
		return 0
	}
	return 1 + strings.Count(page.Text[:offset(page, node)], "\n")
}

// ColNumber computes the column of the given node within its line.
func (r *Registry) ColNumber(name string, node ast.Node) int {
	var page, ok = r.Page(name)
	if !ok {
		return 0
	}
	var pos = offset(page, node)
	return 1 + pos - (strings.LastIndex(page.Text[:pos], "\n") + 1)
}

func offset(page *ast.PageNode, node ast.Node) int {
	var pos = int(node.Position())
	if pos < 0 || pos > len(page.Text) {
		return 0
	}
	return pos
}
