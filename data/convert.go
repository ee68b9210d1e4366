package data

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var timeType = reflect.TypeOf(time.Time{})

// Marshaler is implemented by types that convert themselves into a Value.
type Marshaler interface {
	MarshalValue() Value
}

// New converts the given data into a Value, using DefaultStructOptions for
// structs.
func New(value interface{}) Value {
	return NewWith(DefaultStructOptions, value)
}

// NewWith converts the given data value into a Value, using the provided
// StructOptions for any structs encountered.
//
// It panics on values that have no chart representation, such as channels,
// functions, or maps with non-string keys.
func NewWith(convert StructOptions, value interface{}) Value {
	// quick return if we're passed an existing data.Value
	if val, ok := value.(Value); ok {
		return val
	}

	if value == nil {
		return Null{}
	}

	if m, ok := value.(Marshaler); ok {
		return m.MarshalValue()
	}

	// drill through pointers and interfaces to the underlying type
	var v = reflect.ValueOf(value)
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Null{}
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Null{}
	}

	if v.Type() == timeType {
		return String(v.Interface().(time.Time).Format(convert.timeFormat()))
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(v.Float())
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.String:
		return String(v.String())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return Null{}
		}
		var slice = make(List, v.Len())
		for i := 0; i < v.Len(); i++ {
			slice[i] = NewWith(convert, v.Index(i).Interface())
		}
		return slice
	case reflect.Map:
		var m = make(Map, v.Len())
		for _, key := range v.MapKeys() {
			if key.Kind() != reflect.String {
				panic(fmt.Errorf("map keys must be strings, got %v", key.Type()))
			}
			m[key.String()] = NewWith(convert, v.MapIndex(key).Interface())
		}
		return m
	case reflect.Struct:
		return convert.Data(v.Interface())
	default:
		panic(fmt.Errorf("unexpected data type: %T (%v)", value, value))
	}
}

// DefaultStructOptions is used by New.
var DefaultStructOptions = StructOptions{
	LowerCamel: true,
	TimeFormat: time.RFC3339,
}

// StructOptions provides flexibility in conversion of structs to Maps.
type StructOptions struct {
	LowerCamel bool   // if true, convert field names to lowerCamel.
	TimeFormat string // format string for time.Time. (if empty, use RFC 3339)
}

func (c StructOptions) timeFormat() string {
	if c.TimeFormat == "" {
		return time.RFC3339
	}
	return c.TimeFormat
}

// Data converts the exported fields of obj into a Map.  A `json` field tag
// names the key, or removes the field with "-".
func (c StructOptions) Data(obj interface{}) Map {
	var m = make(Map)
	var v = reflect.ValueOf(obj)
	var valType = v.Type()
	for i := 0; i < valType.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		var field = valType.Field(i)
		var key = field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			var name = strings.Split(tag, ",")[0]
			if name == "-" {
				continue
			}
			if name != "" {
				m[name] = NewWith(c, v.Field(i).Interface())
				continue
			}
		}
		if c.LowerCamel {
			var firstRune, size = utf8.DecodeRuneInString(key)
			key = string(unicode.ToLower(firstRune)) + key[size:]
		}
		m[key] = NewWith(c, v.Field(i).Interface())
	}
	return m
}
