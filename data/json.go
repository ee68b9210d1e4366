package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Marshal returns the JSON encoding of v.
//
// Output uses ", " and ": " separators and sorts map keys, so the same value
// always encodes to the same text.  Strings escape <, > and & so the result
// may be embedded in a <script> element.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString returns the JSON encoding of a single string.
func MarshalString(s string) []byte {
	var buf bytes.Buffer
	encodeString(&buf, s)
	return buf.Bytes()
}

func encode(buf *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case nil, Undefined:
		return fmt.Errorf("can not encode undefined value to JSON")
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(v)))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		var f = float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("can not encode %v to JSON", f)
		}
		var s = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case String:
		encodeString(buf, string(v))
	case List:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := encode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		buf.WriteByte('{')
		for i, k := range sortedKeys(v) {
			if i > 0 {
				buf.WriteString(", ")
			}
			encodeString(buf, k)
			buf.WriteString(": ")
			if err := encode(buf, v[k]); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("can not encode %T to JSON", v)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) {
	// encoding/json never fails on a string, and escapes HTML by default.
	var b, _ = json.Marshal(s)
	buf.Write(b)
}

func sortedKeys(m Map) []string {
	var keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unmarshal parses JSON text into a Value.  Integral numbers become Int when
// they fit, all others Float.
func Unmarshal(text []byte) (Value, error) {
	var dec = json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return fromJSON(raw)
}

func fromJSON(raw interface{}) (Value, error) {
	switch raw := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(raw), nil
	case string:
		return String(raw), nil
	case json.Number:
		if !strings.ContainsAny(string(raw), ".eE") {
			if i, err := raw.Int64(); err == nil {
				return Int(i), nil
			}
		}
		f, err := raw.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case []interface{}:
		var list = make(List, len(raw))
		for i, item := range raw {
			v, err := fromJSON(item)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case map[string]interface{}:
		var m = make(Map, len(raw))
		for k, item := range raw {
			v, err := fromJSON(item)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}
	return nil, fmt.Errorf("unexpected JSON type %T", raw)
}
