/*
Package chartkick draws Chartkick charts from server-rendered pages.

A page is HTML (or any text) containing chart tags:

  {% load chartkick %}
  {% include_chartkick_scripts "highcharts" %}

  {% line_chart sales with height=400px min=0 %}
  {% pie_chart browsers %}
  {% column_chart stats.weekly with id=weekly library.title="Weekly visits" %}

Each chart tag becomes a placeholder element and a short script that hands
the data, and the options, to the client-side Chartkick library as JSON.
The first argument names the chart data in the render context; options
follow "with" as name=value pairs.  An option value may be a quoted string,
a number, true, false, null, or a reference into the render context.  Any
other bare word, like 400px, is taken literally.

Usage example

Typically in a web application you have a directory containing the pages
that draw charts.  This code snippet will parse a file of globals, all pages
within app/views, and provide back a Tofu instance that can be used to
render any of them.  (Error checking is skipped.)

On startup:

  tofu, _ := chartkick.NewBundle().
      WatchFiles(mode == "dev").            // watch pages, reload on changes (in dev)
      AddGlobalsFile("views/globals.txt").  // parse a file of globals
      AddTemplateDir("views").              // load *.html in all sub-directories
      StaticURL("/static").                 // where chartkick.js is served
      CompileToTofu()

To render a page:

  var obj = data.Map{
    "sales":    data.New(sales),
    "browsers": data.New(browsers),
  }
  tofu.NewRenderer("views/dashboard.html").
    WithMessages(pomsgs.Bundle(locale)).
    Execute(resp, obj)

Charts may also be drawn from html/template using chtml.FuncMap:

  {{include_chartkick_scripts}}
  {{line_chart .Sales "height" "400px"}}

Chart ids

Charts that do not set an id are numbered chart-0, chart-1, ... from a
sequence shared by the process.  Renderers accept their own idgen.Generator
for deterministic output.
*/
package chartkick

// Version is the version of this package.
const Version = "0.0.1"
