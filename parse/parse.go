// Package parse converts chart tags, and the pages that contain them, into
// their in-memory representation (AST).
package parse

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/errortypes"
)

// tree is the parsed representation of a single page.
type tree struct {
	name string        // name provided for the input
	text string        // the full input text
	lex  *lexer        // lexer provides a sequence of tokens
	root *ast.ListNode // top-level root of the tree
}

// Page parses the input into a PageNode.  Every tag on the page is parsed, so
// a page that parses without error renders without syntax errors.
func Page(name, text string) (node *ast.PageNode, err error) {
	var t = &tree{
		name: name,
		text: text,
		lex:  lex(name, text),
	}
	defer t.recover(&err)
	t.root = t.itemList()
	t.lex = nil
	return &ast.PageNode{
		Name: t.name,
		Text: t.text,
		Body: t.root.Nodes,
	}, nil
}

// itemList:
//	(text | comment | tag)* EOF
func (t *tree) itemList() *ast.ListNode {
	var list = &ast.ListNode{}
	for {
		var token = t.lex.nextItem()
		switch token.typ {
		case itemEOF:
			return list
		case itemError:
			t.errorf(token.pos, "", "%s", token.val)
		case itemComment:
			// dropped
		case itemText:
			list.Nodes = append(list.Nodes, &ast.RawTextNode{Pos: token.pos, Text: []byte(token.val)})
		case itemLeftDelim:
			list.Nodes = append(list.Nodes, t.tag(token))
		default:
			t.errorf(token.pos, "", "unexpected %v", token)
		}
	}
}

// tag parses everything following a "{%".
func (t *tree) tag(left item) ast.Node {
	var contents = t.lex.nextItem()
	switch contents.typ {
	case itemError:
		t.errorf(left.pos, "", "%s", contents.val)
	case itemTagContents:
	default:
		t.errorf(contents.pos, "", "unexpected %v in tag", contents)
	}
	if right := t.lex.nextItem(); right.typ != itemRightDelim {
		t.errorf(right.pos, "", "unexpected %v (expected %v)", right, itemRightDelim)
	}

	var node, err = tag(contents.val, left.pos)
	if err != nil {
		t.error(left.pos, err)
	}
	return node
}

// recover is the handler that turns panics into returns from the top level of
// Page.
func (t *tree) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	if t.lex != nil {
		t.lex.drain()
		t.lex = nil
	}
	if str, ok := e.(string); ok {
		*errp = errors.New(str)
	} else {
		*errp = e.(error)
	}
}

// errorf formats a positioned syntax error and terminates processing.
func (t *tree) errorf(pos ast.Pos, tag, format string, args ...interface{}) {
	t.error(pos, errortypes.NewSyntaxError(tag, format, args...))
}

// error attaches the position to err and terminates processing.
func (t *tree) error(pos ast.Pos, err error) {
	t.root = nil
	var line, col = t.lex.lineNumber(pos), t.lex.columnNumber(pos)
	switch e := err.(type) {
	case *errortypes.SyntaxError:
		panic(e.At(t.name, line, col))
	case *errortypes.ResolutionError:
		panic(e.At(t.name, line, col))
	}
	panic(fmt.Errorf("%s:%d:%d: %w", t.name, line, col, err))
}
