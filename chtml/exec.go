package chtml

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/errortypes"
	"github.com/gochartkick/chartkick/idgen"
	"github.com/gochartkick/chartkick/msgs"
	"github.com/gochartkick/chartkick/resolve"
	"github.com/gochartkick/chartkick/template"
)

// state represents the state of an execution.
type state struct {
	page      *ast.PageNode
	registry  *template.Registry
	wr        io.Writer
	node      ast.Node      // current node, for errors
	scope     resolve.Scope // globals, then the render context
	ids       idgen.Generator
	msgs      msgs.Bundle
	staticURL string
}

// at marks the state to be on node n, for error reporting.
func (s *state) at(node ast.Node) {
	s.node = node
}

func (s *state) position() (line, col int) {
	if s.node == nil {
		return 0, 0
	}
	return s.registry.LineNumber(s.page.Name, s.node), s.registry.ColNumber(s.page.Name, s.node)
}

// errorf formats the error and terminates processing.
func (s *state) errorf(format string, args ...interface{}) {
	var line, col = s.position()
	panic(fmt.Errorf("%s:%d:%d: %s", s.page.Name, line, col, fmt.Sprintf(format, args...)))
}

// error terminates processing with err, positioned at the current node.
func (s *state) error(err error) {
	var line, col = s.position()
	switch e := err.(type) {
	case *errortypes.ResolutionError:
		panic(e.At(s.page.Name, line, col))
	case *errortypes.SyntaxError:
		panic(e.At(s.page.Name, line, col))
	}
	panic(fmt.Errorf("%s:%d:%d: %w", s.page.Name, line, col, err))
}

// errRecover is the handler that turns panics into returns from the top
// level of Execute.
func (s *state) errRecover(errp *error) {
	if e := recover(); e != nil {
		var line, col = s.position()
		switch e := e.(type) {
		case runtime.Error:
			*errp = fmt.Errorf("%s:%d:%d: %v\n%v", s.page.Name, line, col, e, string(debug.Stack()))
		case error:
			*errp = e
		default:
			*errp = fmt.Errorf("%s:%d:%d: %v", s.page.Name, line, col, e)
		}
	}
}

// walk goes through each node and writes its output.
func (s *state) walk(node ast.Node) {
	s.at(node)
	switch node := node.(type) {
	case *ast.PageNode:
		for _, node := range node.Body {
			s.walk(node)
		}
	case *ast.ListNode:
		for _, node := range node.Nodes {
			s.walk(node)
		}
	case *ast.RawTextNode:
		if _, err := s.wr.Write(node.Text); err != nil {
			s.errorf("%s", err)
		}
	case *ast.LoadNode:
		// nothing to do
	case *ast.ChartNode:
		s.evalChart(node)
	case *ast.ScriptsNode:
		if err := WriteScripts(s.wr, node.Library, s.staticURL); err != nil {
			s.error(err)
		}
	default:
		s.errorf("unknown node: %T", node)
	}
}

func (s *state) evalChart(node *ast.ChartNode) {
	var chart, err = resolve.Resolve(node, s.scope, s.ids.Next())
	if err != nil {
		s.error(err)
	}
	if err = WriteChart(s.wr, chart, s.msgs); err != nil {
		s.error(err)
	}
}
