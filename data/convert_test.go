package data

import (
	"reflect"
	"testing"
	"time"
)

// Ensure all of the data types implement Value
var (
	_ Value = Undefined{}
	_ Value = Null{}
	_ Value = Bool(false)
	_ Value = Int(0)
	_ Value = Float(0.0)
	_ Value = String("")
	_ Value = List{}
	_ Value = Map{}
)

type AInt struct{ A int }

var jan1, _ = time.Parse(time.RFC3339, "2014-01-01T00:00:00Z")

func TestNew(t *testing.T) {
	tests := []struct{ input, expected interface{} }{
		// basic types
		{nil, Null{}},
		{true, Bool(true)},
		{int(0), Int(0)},
		{int64(0), Int(0)},
		{uint32(0), Int(0)},
		{float32(0), Float(0)},
		{"", String("")},
		{[]string{"a"}, List{String("a")}},
		{[2]int{1, 2}, List{Int(1), Int(2)}},
		{[]interface{}{"a"}, List{String("a")}},
		{map[string]string{}, Map{}},
		{map[string]string{"a": "b"}, Map{"a": String("b")}},
		{map[string]interface{}{"a": nil}, Map{"a": Null{}}},
		{map[string]interface{}{"a": []int{1}}, Map{"a": List{Int(1)}}},

		// type aliases
		{[]Int{5}, List{Int(5)}},
		{map[string]Value{"a": List{Int(1)}}, Map{"a": List{Int(1)}}},
		{Map{"foo": Null{}}, Map{"foo": Null{}}},

		// pointers
		{pInt(5), Int(5)},
		{(*int)(nil), Null{}},
		{&jan1, String(jan1.Format(time.RFC3339))},

		// structs with all of the above, and unexported fields.
		// also, structs have their fields lowerCamel and Time's default formatting.
		{struct {
			A  Int
			L  List
			PI *int
			no Int
			T  time.Time
		}{Int(5), List{}, pInt(2), 5, jan1},
			Map{"a": Int(5), "l": List{}, "pI": Int(2), "t": String(jan1.Format(time.RFC3339))}},
		{[]*struct {
			PI *AInt
		}{{nil}},
			List{Map{"pI": Null{}}}},
		{testPoint{"Jan", 12, "secret"},
			Map{"name": String("Jan"), "y": Int(12)}},
		{testIDURLMarshaler{1, "https://example.com"},
			Map{"id": Int(1), "url": String("https://example.com")}},
	}

	for _, test := range tests {
		output := New(test.input)
		if !reflect.DeepEqual(test.expected, output) {
			t.Errorf("%#v =>\n %#v, expected:\n%#v", test.input, output, test.expected)
		}
	}
}

type testPoint struct {
	Label  string `json:"name"`
	Y      int    `json:"y,omitempty"`
	Secret string `json:"-"`
}

type testIDURLMarshaler struct {
	ID  int
	URL string
}

func (t testIDURLMarshaler) MarshalValue() Value {
	return Map{
		"id":  New(t.ID),
		"url": New(t.URL),
	}
}

func TestNewPanicsOnNonStringKeys(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic")
		}
	}()
	New(map[int]string{1: "a"})
}

func TestStructOptions(t *testing.T) {
	var testStruct = struct {
		CaseFormat int
		Time       time.Time
		unexported int
		Nested     struct {
			CaseFormat *bool
			Time       *time.Time
		}
	}{
		CaseFormat: 5,
		Time:       jan1,
	}

	tests := []struct {
		convert  StructOptions
		expected Map
	}{
		{DefaultStructOptions, Map{
			"caseFormat": Int(5),
			"time":       String(jan1.Format(time.RFC3339)),
			"nested": Map{
				"caseFormat": Null{},
				"time":       Null{},
			},
		}},
		{StructOptions{false, time.Stamp}, Map{
			"CaseFormat": Int(5),
			"Time":       String(jan1.Format(time.Stamp)),
			"Nested": Map{
				"CaseFormat": Null{},
				"Time":       Null{},
			},
		}},
		{StructOptions{LowerCamel: true}, Map{
			"caseFormat": Int(5),
			"time":       String(jan1.Format(time.RFC3339)),
			"nested": Map{
				"caseFormat": Null{},
				"time":       Null{},
			},
		}},
	}

	for _, test := range tests {
		output := test.convert.Data(testStruct)
		if !reflect.DeepEqual(test.expected, output) {
			t.Errorf("%#v =>\n%#v, expected:\n%#v", test.convert, output, test.expected)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		input    interface{}
		key      string
		expected interface{}
	}{
		{map[string]interface{}{}, "foo", Undefined{}},
		{map[string]interface{}{"foo": nil}, "foo", Null{}},
	}

	for _, test := range tests {
		actual := New(test.input).(Map).Key(test.key)
		if !reflect.DeepEqual(test.expected, actual) {
			t.Errorf("%v => %#v, expected %#v", test.input, actual, test.expected)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		input    interface{}
		index    int
		expected interface{}
	}{
		{[]interface{}{}, 0, Undefined{}},
		{[]interface{}{1}, 0, Int(1)},
		{[]interface{}{1}, -1, Undefined{}},
	}

	for _, test := range tests {
		actual := New(test.input).(List).Index(test.index)
		if !reflect.DeepEqual(test.expected, actual) {
			t.Errorf("%v => %#v, expected %#v", test.input, actual, test.expected)
		}
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		a, b  Value
		equal bool
	}{
		{Int(1), Float(1), true},
		{Int(1), String("1"), false},
		{List{Int(1), String("a")}, List{Int(1), String("a")}, true},
		{List{Int(1)}, List{Int(1), Int(2)}, false},
		{Map{"a": List{Null{}}}, Map{"a": List{Null{}}}, true},
		{Map{"a": Int(1)}, Map{"b": Int(1)}, false},
		{Undefined{}, Null{}, false},
	}

	for _, test := range tests {
		if actual := test.a.Equals(test.b); actual != test.equal {
			t.Errorf("%v == %v => %v, expected %v", test.a, test.b, actual, test.equal)
		}
	}
}

func BenchmarkStructOptions(b *testing.B) {
	var testStruct = struct {
		CaseFormat  int
		Time        time.Time
		NestedSlice []interface{}
		NestedMap   map[string]interface{}
	}{
		CaseFormat:  5,
		Time:        jan1,
		NestedSlice: []interface{}{"a", 2, true, nil, 5.0, []uint8{1, 2, 3}},
		NestedMap: map[string]interface{}{
			"string": "a",
			"slice":  []*int{pInt(1), pInt(2), pInt(3)},
		},
	}

	for i := 0; i < b.N; i++ {
		var output = NewWith(DefaultStructOptions, testStruct).(Map)
		if len(output) != 4 {
			b.Errorf("unexpected output")
		}
	}
}

func pInt(i int) *int {
	return &i
}
