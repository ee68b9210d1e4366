// Package resolve evaluates parsed chart tags against a render context.
// Nothing here allocates ids or writes output: given the same node, scope and
// id, the result is always the same.
package resolve

import (
	"fmt"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/errortypes"
)

// Chart is a chart tag with everything resolved, ready to be written out.
type Chart struct {
	Kind    ast.ChartKind
	Data    data.Value
	Options *Options
}

// Resolve evaluates node in scope, giving the chart the id unless the tag
// sets its own.  An undefined data reference is a ResolutionError.
func Resolve(node *ast.ChartNode, scope Scope, id string) (*Chart, error) {
	var opts = ChartOptions(node, scope, id)
	var val, err = Value(node.Data, scope)
	if err != nil {
		return nil, err
	}
	return &Chart{Kind: node.Kind, Data: val, Options: opts}, nil
}

// ChartOptions overlays the tag's options, in order, on the defaults.  An
// option that refers to an undefined variable takes the reference's text,
// so color=red needs no quotes.  The id and height keep their defaults
// unless the option resolves to a non-empty value.
func ChartOptions(node *ast.ChartNode, scope Scope, id string) *Options {
	var opts = Defaults(id)
	for _, opt := range node.Options {
		var val, err = Value(opt.Value, scope)
		switch {
		case err == nil:
		case isDefaultKey(opt.Key):
			continue
		default:
			val = data.String(opt.Value.String())
		}
		opts.Overlay(opt.Key, val)
	}
	return opts
}

// Value evaluates a literal or data reference node.
func Value(node ast.Node, scope Scope) (data.Value, error) {
	switch node := node.(type) {
	case *ast.NullNode:
		return data.Null{}, nil
	case *ast.BoolNode:
		return data.Bool(node.True), nil
	case *ast.IntNode:
		return data.Int(node.Value), nil
	case *ast.FloatNode:
		return data.Float(node.Value), nil
	case *ast.StringNode:
		return data.String(node.Value), nil
	case *ast.DataRefNode:
		var val = scope.Lookup(node.Path)
		if !data.IsDefined(val) {
			return nil, errortypes.NewResolutionError(node.String())
		}
		return val, nil
	}
	return nil, fmt.Errorf("can not evaluate %T", node)
}
