package chartkick

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/errortypes"
	"github.com/gochartkick/chartkick/parse"
	"github.com/gochartkick/chartkick/resolve"
)

// ParseGlobals parses the given input, expecting the form:
//  <global_name> = <value>
//
// Furthermore:
//  - Empty lines and lines beginning with '//' are ignored.
//  - <value> is read as a chart option value is: a quoted string, number,
//    true, false, null, or a bare word taken literally.
//  - A <value> beginning with '[' or '{' is JSON.
func ParseGlobals(input io.Reader) (data.Map, error) {
	var globals = make(data.Map)
	var scanner = bufio.NewScanner(input)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}
		var eq = strings.Index(line, "=")
		if eq == -1 {
			return nil, fmt.Errorf("no equals on line: %q", line)
		}
		var (
			name = strings.TrimSpace(line[:eq])
			expr = strings.TrimSpace(line[eq+1:])
		)
		if name == "" {
			return nil, fmt.Errorf("no name on line: %q", line)
		}
		var val, err = globalValue(expr)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		globals[name] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return globals, nil
}

func globalValue(expr string) (data.Value, error) {
	if strings.HasPrefix(expr, "[") || strings.HasPrefix(expr, "{") {
		return data.Unmarshal([]byte(expr))
	}
	var node, err = parse.Value(expr)
	if err != nil {
		return nil, err
	}
	val, err := resolve.Value(node, nil)
	if errortypes.IsResolution(err) {
		return data.String(expr), nil
	}
	return val, err
}
