package parse

import (
	"fmt"
	"strings"

	"github.com/gochartkick/chartkick/ast"
	"github.com/gochartkick/chartkick/errortypes"
)

// Tag names recognized outside of the chart tags.
const (
	ScriptsTag = "include_chartkick_scripts"
	LoadTag    = "load"
)

// Tag parses the contents of a single tag, without delimiters, e.g.
//   line_chart sales with height=400px
func Tag(contents string) (ast.Node, error) {
	return tag(contents, 0)
}

func tag(contents string, pos ast.Pos) (ast.Node, error) {
	var bits, err = splitContents(contents)
	if err != nil {
		return nil, errortypes.NewSyntaxError(firstWord(contents), "%v", err)
	}
	if len(bits) == 0 {
		return nil, errortypes.NewSyntaxError("", "empty tag")
	}

	if kind, ok := ast.ChartKindForTag(bits[0]); ok {
		return chart(kind, bits, pos)
	}
	switch bits[0] {
	case ScriptsTag:
		return scripts(bits, pos)
	case LoadTag:
		if len(bits) < 2 {
			return nil, errortypes.NewSyntaxError(LoadTag, "statement requires at least one argument")
		}
		return &ast.LoadNode{Pos: pos, Libraries: bits[1:]}, nil
	}
	return nil, errortypes.NewSyntaxError(bits[0], "unknown tag")
}

// Chart parses the split contents of a chart tag:
//   [tag_name, data_variable, "with", key1=val1, key2=val2, ...]
// The option values are kept as deferred references.
func Chart(kind ast.ChartKind, bits []string) (*ast.ChartNode, error) {
	return chart(kind, bits, 0)
}

func chart(kind ast.ChartKind, bits []string, pos ast.Pos) (*ast.ChartNode, error) {
	var name = kind.Tag()
	if len(bits) < 2 {
		return nil, errortypes.NewSyntaxError(name, "statement requires at least one argument")
	}

	var dataNode, err = value(bits[1], pos)
	if err != nil {
		return nil, errortypes.NewSyntaxError(name, "invalid data argument %q: %v", bits[1], err)
	}
	var node = &ast.ChartNode{Pos: pos, Kind: kind, Data: dataNode}
	if len(bits) == 2 {
		return node, nil
	}

	if bits[2] != "with" {
		return nil, errortypes.NewSyntaxError(name, "expected 'with' statement, got %q", bits[2])
	}
	node.With = true

	for _, bit := range bits[3:] {
		var key, val, ok = splitOption(bit)
		if !ok {
			return nil, errortypes.NewSyntaxError(name, "invalid arguments: %q", bit)
		}
		valueNode, err := value(val, pos)
		if err != nil {
			return nil, errortypes.NewSyntaxError(name, "invalid arguments: %q: %v", bit, err)
		}
		node.Options = append(node.Options, &ast.OptionNode{Pos: pos, Key: key, Value: valueNode})
	}
	return node, nil
}

// splitOption splits key=value.  There must be exactly one "=" outside of
// quotes, and neither side may be empty.
func splitOption(bit string) (key, val string, ok bool) {
	var eq = -1
	var quote rune
	var esc bool
	for i, r := range bit {
		switch {
		case quote != 0:
			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == quote:
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '=':
			if eq != -1 {
				return "", "", false
			}
			eq = i
		}
	}
	if eq <= 0 || eq == len(bit)-1 {
		return "", "", false
	}
	return bit[:eq], bit[eq+1:], true
}

// Scripts parses the split contents of an include_chartkick_scripts tag.
// The single argument names the charting library, and may be quoted.
func Scripts(bits []string) (*ast.ScriptsNode, error) {
	return scripts(bits, 0)
}

func scripts(bits []string, pos ast.Pos) (*ast.ScriptsNode, error) {
	var selector string
	switch len(bits) {
	case 1:
	case 2:
		selector = bits[1]
		if isQuoted(selector) {
			var s, err = unquoteString(selector)
			if err != nil {
				return nil, errortypes.NewSyntaxError(ScriptsTag, "%v", err)
			}
			selector = s
		}
	default:
		return nil, errortypes.NewSyntaxError(ScriptsTag, "takes at most one argument, got %d", len(bits)-1)
	}
	lib, err := ScriptLibrary(selector)
	if err != nil {
		return nil, err
	}
	return &ast.ScriptsNode{Pos: pos, Library: lib}, nil
}

// ScriptLibrary resolves a library selector: "googlecharts", "highcharts"
// (in any case), or "" for Google Charts.
func ScriptLibrary(selector string) (ast.ScriptLibrary, error) {
	var lib, ok = ast.ParseScriptLibrary(selector)
	if !ok {
		return 0, errortypes.NewSyntaxError(ScriptsTag, "invalid argument: %s", singleQuote(selector))
	}
	return lib, nil
}

func singleQuote(s string) string {
	return fmt.Sprintf("'%s'", s)
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
