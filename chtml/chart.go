package chtml

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/msgs"
	"github.com/gochartkick/chartkick/resolve"
)

// chartTemplate is the markup written for every chart.  The element id and
// height pass through the attribute and CSS escapers; everything inside the
// script is JSON, assembled by scriptBody.
var chartTemplate = template.Must(template.New("chart").Parse(`<div id="{{.ID}}" style="height: {{.Height}}; text-align: center; color: #999; line-height: {{.Height}}; font-size: 14px; font-family: Lucida Grande, Lucida Sans Unicode, Verdana, Arial, Helvetica, sans-serif;">
    {{.Loading}}
</div>
<script>
{{.Script}}
</script>
`))

// messagePolicy cleans translated placeholder text before it is written
// unescaped into the page.
var messagePolicy = bluemonday.UGCPolicy()

type chartView struct {
	ID      string
	Height  string
	Loading template.HTML
	Script  template.JS
}

// WriteChart writes the markup for a resolved chart to w.  The placeholder
// text is taken from bundle, which may be nil.
func WriteChart(w io.Writer, chart *resolve.Chart, bundle msgs.Bundle) error {
	var script, err = scriptBody(chart)
	if err != nil {
		return err
	}
	return chartTemplate.Execute(w, chartView{
		ID:      chart.Options.ID(),
		Height:  chart.Options.Height(),
		Loading: template.HTML(messagePolicy.Sanitize(msgs.Text(bundle, msgs.Loading))),
		Script:  template.JS(script),
	})
}

// ChartHTML returns the markup for a resolved chart.
func ChartHTML(chart *resolve.Chart, bundle msgs.Bundle) (template.HTML, error) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, chart, bundle); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// scriptBody builds the statement that draws the chart, wrapped in a CDATA
// comment.  JSON encoding escapes '<', '>' and '&', so nothing in it can
// close the script element.
func scriptBody(chart *resolve.Chart) (string, error) {
	var dataJSON, err = data.Marshal(chart.Data)
	if err != nil {
		return "", fmt.Errorf("%s data: %w", chart.Kind.Tag(), err)
	}
	optionsJSON, err := chart.Options.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%s options: %w", chart.Kind.Tag(), err)
	}
	var buf bytes.Buffer
	buf.WriteString("//<![CDATA[\nnew Chartkick.")
	buf.WriteString(chart.Kind.Name())
	buf.WriteString("(document.getElementById(")
	buf.Write(data.MarshalString(chart.Options.ID()))
	buf.WriteString("), ")
	buf.Write(dataJSON)
	buf.WriteString(", ")
	buf.Write(optionsJSON)
	buf.WriteString(");\n//]]>")
	return buf.String(), nil
}
