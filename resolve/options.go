package resolve

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gochartkick/chartkick/data"
)

// DefaultHeight is the height of a chart that does not set one.
const DefaultHeight = "300px"

// Options is the final configuration handed to the client-side chart.  Keys
// keep the order in which they were first set.
type Options struct {
	keys   []string
	values map[string]data.Value
}

// Defaults returns the base options every chart starts from.
func Defaults(id string) *Options {
	var o = &Options{values: make(map[string]data.Value)}
	o.Set("id", data.String(id))
	o.Set("height", data.String(DefaultHeight))
	return o
}

// Set assigns a value.  Overwriting a key keeps its original position.
func (o *Options) Set(key string, v data.Value) {
	if o.values == nil {
		o.values = make(map[string]data.Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Overlay sets a caller-supplied option.  A blank id or height is ignored,
// so both always keep a usable value.
func (o *Options) Overlay(key string, v data.Value) {
	if isDefaultKey(key) && isBlank(v) {
		return
	}
	o.Set(key, v)
}

func isDefaultKey(key string) bool {
	return key == "id" || key == "height"
}

func isBlank(v data.Value) bool {
	switch v := v.(type) {
	case nil, data.Null, data.Undefined:
		return true
	case data.String:
		return strings.TrimSpace(string(v)) == ""
	}
	return false
}

// Get returns the value under key.
func (o *Options) Get(key string) (data.Value, bool) {
	var v, ok = o.values[key]
	return v, ok
}

// Keys returns the option names in order.
func (o *Options) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Options) Len() int { return len(o.keys) }

// ID is the element id the chart draws into.
func (o *Options) ID() string {
	return o.display("id")
}

// Height is the CSS height of the placeholder element.
func (o *Options) Height() string {
	return o.display("height")
}

func (o *Options) display(key string) string {
	if v, ok := o.values[key]; ok && data.IsDefined(v) {
		return v.String()
	}
	return ""
}

// Map returns the options as an unordered data.Map.
func (o *Options) Map() data.Map {
	var m = make(data.Map, len(o.values))
	for k, v := range o.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the options as a JSON object in key order.
func (o *Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.Write(data.MarshalString(k))
		buf.WriteString(": ")
		var b, err = data.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
