package resolve

import (
	"strconv"

	"github.com/gochartkick/chartkick/data"
)

// Scope is a stack of variable bindings; later maps shadow earlier ones.
// A page render typically uses Scope{globals, context}.
type Scope []data.Map

// lookup checks the variable scopes, deepest out, for the given key
func (s Scope) lookup(k string) data.Value {
	for i := range s {
		var elem = s[len(s)-i-1]
		if val, ok := elem[k]; ok {
			return val
		}
	}
	return data.Undefined{}
}

// Lookup follows a dotted path through the scope.  Each segment after the
// first is a map key, or an index when applied to a list.  Any miss yields
// Undefined.
func (s Scope) Lookup(path []string) data.Value {
	if len(path) == 0 {
		return data.Undefined{}
	}
	var val = s.lookup(path[0])
	for _, seg := range path[1:] {
		switch v := val.(type) {
		case data.Map:
			val = v.Key(seg)
		case data.List:
			var i, err = strconv.Atoi(seg)
			if err != nil {
				return data.Undefined{}
			}
			val = v.Index(i)
		default:
			return data.Undefined{}
		}
	}
	if val == nil {
		return data.Undefined{}
	}
	return val
}
