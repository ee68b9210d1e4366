package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gochartkick/chartkick/ast"
)

var (
	intPattern   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	floatPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)
	pathPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)
)

// Value parses a single value token: a quoted string, a number, true, false,
// null, or a dotted reference into the render context.  Any other bare token,
// such as 400px or #ff0000, is taken as a string literal.
func Value(token string) (ast.Node, error) {
	return value(token, 0)
}

func value(token string, pos ast.Pos) (ast.Node, error) {
	switch {
	case isQuoted(token):
		var s, err = unquoteString(token)
		if err != nil {
			return nil, err
		}
		return &ast.StringNode{Pos: pos, Quoted: token, Value: s}, nil
	case token == "null":
		return &ast.NullNode{Pos: pos}, nil
	case token == "true", token == "false":
		return &ast.BoolNode{Pos: pos, True: token == "true"}, nil
	case intPattern.MatchString(token):
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return &ast.IntNode{Pos: pos, Value: i}, nil
		}
		fallthrough
	case floatPattern.MatchString(token):
		var f, err = strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, err
		}
		return &ast.FloatNode{Pos: pos, Value: f}, nil
	case pathPattern.MatchString(token):
		return &ast.DataRefNode{Pos: pos, Path: strings.Split(token, ".")}, nil
	}
	return &ast.StringNode{Pos: pos, Value: token}, nil
}
