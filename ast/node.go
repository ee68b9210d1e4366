// Package ast contains definitions for the in-memory representation of
// chart tags and the pages that contain them.  Nodes are pure data: nothing
// here looks at a render context.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Node represents any singular piece of a page.  For example, a sequence of
// raw text or a chart tag.
type Node interface {
	String() string // String returns the source representation of this node.
	Position() Pos  // byte position of start of node in full original input string
}

// ParentNode is any Node that has descendent nodes.
type ParentNode interface {
	Node
	Children() []Node
}

// Pos represents a byte position in the original input text from which this
// node was parsed.  It is useful to construct helpful error messages.
type Pos int

// Position returns this position.  It is implemented as a method so that Nodes
// may embed a Pos and fulfill this part of the Node interface for free.
func (p Pos) Position() Pos {
	return p
}

// PageNode represents a page template.
type PageNode struct {
	Name string
	Text string
	Body []Node
}

func (n PageNode) Position() Pos {
	return 0
}

func (n PageNode) Children() []Node {
	return n.Body
}

func (n PageNode) String() string {
	var b bytes.Buffer
	for _, n := range n.Body {
		fmt.Fprint(&b, n)
	}
	return b.String()
}

// ListNode holds a sequence of nodes.
type ListNode struct {
	Pos
	Nodes []Node // The element nodes in lexical order.
}

func (l *ListNode) String() string {
	b := new(bytes.Buffer)
	for _, n := range l.Nodes {
		fmt.Fprint(b, n)
	}
	return b.String()
}

func (l *ListNode) Children() []Node {
	return l.Nodes
}

type RawTextNode struct {
	Pos
	Text []byte // The text; may span newlines.
}

func (t *RawTextNode) String() string {
	return string(t.Text)
}

// LoadNode is a {% load %} tag.  It produces no output.
type LoadNode struct {
	Pos
	Libraries []string
}

func (n *LoadNode) String() string {
	return "{% load " + strings.Join(n.Libraries, " ") + " %}"
}

// ChartKind selects the client-side constructor for a chart.
type ChartKind int

const (
	LineChart ChartKind = iota
	PieChart
	ColumnChart
)

var chartKinds = []struct{ tag, name string }{
	LineChart:   {"line_chart", "LineChart"},
	PieChart:    {"pie_chart", "PieChart"},
	ColumnChart: {"column_chart", "ColumnChart"},
}

// ChartKinds lists every chart kind.
var ChartKinds = []ChartKind{LineChart, PieChart, ColumnChart}

// Name is the constructor name, e.g. "LineChart" for Chartkick.LineChart.
func (k ChartKind) Name() string {
	if k < 0 || int(k) >= len(chartKinds) {
		return "ChartKind(" + strconv.Itoa(int(k)) + ")"
	}
	return chartKinds[k].name
}

// Tag is the name of the tag that renders this kind, e.g. "line_chart".
func (k ChartKind) Tag() string {
	if k < 0 || int(k) >= len(chartKinds) {
		return ""
	}
	return chartKinds[k].tag
}

func (k ChartKind) String() string {
	return k.Name()
}

// ChartKindForTag returns the kind rendered by the named tag.
func ChartKindForTag(tag string) (ChartKind, bool) {
	for i, k := range chartKinds {
		if k.tag == tag {
			return ChartKind(i), true
		}
	}
	return 0, false
}

// ChartNode is a parsed chart tag, e.g.
//   {% line_chart sales with height=400px %}
type ChartNode struct {
	Pos
	Kind    ChartKind
	Data    Node          // the data reference or literal
	With    bool          // whether "with" was present
	Options []*OptionNode // in the order given
}

func (n *ChartNode) String() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "{%% %s %s", n.Kind.Tag(), n.Data)
	if n.With {
		b.WriteString(" with")
	}
	for _, opt := range n.Options {
		b.WriteString(" ")
		b.WriteString(opt.String())
	}
	b.WriteString(" %}")
	return b.String()
}

func (n *ChartNode) Children() []Node {
	var nodes = []Node{n.Data}
	for _, opt := range n.Options {
		nodes = append(nodes, opt)
	}
	return nodes
}

// Option returns the option with the given key, or nil.
func (n *ChartNode) Option(key string) *OptionNode {
	for _, opt := range n.Options {
		if opt.Key == key {
			return opt
		}
	}
	return nil
}

// OptionNode is one key=value argument following "with".
type OptionNode struct {
	Pos
	Key   string
	Value Node
}

func (n *OptionNode) String() string {
	return n.Key + "=" + n.Value.String()
}

func (n *OptionNode) Children() []Node {
	return []Node{n.Value}
}

// ScriptLibrary is the client-side charting library Chartkick draws with.
type ScriptLibrary int

const (
	GoogleCharts ScriptLibrary = iota
	Highcharts
)

func (l ScriptLibrary) String() string {
	switch l {
	case GoogleCharts:
		return "googlecharts"
	case Highcharts:
		return "highcharts"
	}
	return "ScriptLibrary(" + strconv.Itoa(int(l)) + ")"
}

// ParseScriptLibrary accepts "googlecharts" or "highcharts" in any case.  The
// empty string selects GoogleCharts.
func ParseScriptLibrary(name string) (ScriptLibrary, bool) {
	switch strings.ToLower(name) {
	case "", "googlecharts":
		return GoogleCharts, true
	case "highcharts":
		return Highcharts, true
	}
	return 0, false
}

// ScriptsNode is an {% include_chartkick_scripts %} tag.
type ScriptsNode struct {
	Pos
	Library ScriptLibrary
}

func (n *ScriptsNode) String() string {
	return "{% include_chartkick_scripts " + strconv.Quote(n.Library.String()) + " %}"
}

// Values ----------

type NullNode struct {
	Pos
}

func (s *NullNode) String() string {
	return "null"
}

type BoolNode struct {
	Pos
	True bool
}

func (b *BoolNode) String() string {
	return strconv.FormatBool(b.True)
}

type IntNode struct {
	Pos
	Value int64
}

func (n *IntNode) String() string {
	return strconv.FormatInt(n.Value, 10)
}

type FloatNode struct {
	Pos
	Value float64
}

func (n *FloatNode) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringNode is a string literal.  Quoted is the source text, if the literal
// was written with quotes.
type StringNode struct {
	Pos
	Quoted string
	Value  string
}

func (s *StringNode) String() string {
	if s.Quoted != "" {
		return s.Quoted
	}
	return s.Value
}

// DataRefNode is a deferred reference into the render context, e.g.
// "sales.daily.0".  Each segment of Path is a map key or a list index.
type DataRefNode struct {
	Pos
	Path []string
}

func (n *DataRefNode) String() string {
	return strings.Join(n.Path, ".")
}
