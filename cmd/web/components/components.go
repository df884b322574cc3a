// Package components holds the page level components of the web interface.
// Fragments produced by pkg/render are composed into full pages here.
package components

import (
	"html/template"

	"github.com/a-h/templ"
	"github.com/rubiojr/seek/cmd/web/components/types"
	"github.com/rubiojr/seek/pkg/render"
)

const layout = `{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header class="site-header">
  <a class="brand" href="/">{{.Title}}</a>
</header>
<main class="container">{{end}}

{{define "foot"}}</main>
<footer class="site-footer">
  <small>seek {{.Version}}{{with .Index.Source}} · {{$.Index.Documents}} documents from {{.}}{{end}}</small>
</footer>
{{- if .LiveReload}}
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/api/events");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "reload" && msg.index && msg.index.ok) { location.reload(); }
  };
})();
</script>
{{- end}}
</body>
</html>{{end}}

{{define "form"}}<form class="search-form" action="{{formAction .}}" method="get" role="search" autocomplete="off">
  <input class="search-input" type="search" name="q" value="{{.Query}}" placeholder="Search" aria-label="Search" autofocus>
  {{- range .Filters}}
  <input type="hidden" name="f" value="{{.}}">
  {{- end}}
  <button class="search-button" type="submit">Search</button>
</form>{{end}}

{{define "search"}}{{template "head" .}}
{{template "form" .}}
{{.Suggestions}}
{{.FilterMenu}}
{{with summary .}}<p class="search-summary">{{.}}</p>{{end}}
{{.Results}}
{{.Pagination}}
{{template "foot" .}}{{end}}

{{define "error"}}{{template "head" .}}
<div class="search-error" role="alert">{{.Error}}</div>
{{template "foot" .}}{{end}}`

var pages = template.Must(template.New("pages").
	Funcs(render.GetTemplateFuncs()).
	Funcs(template.FuncMap{
		"summary":    Summary,
		"formAction": FormAction,
	}).
	Parse(layout))

// Search renders the search page.
func Search(data types.PageData) templ.Component {
	return templ.FromGoHTML(pages.Lookup("search"), data)
}

// Error renders an error page.
func Error(data types.PageData) templ.Component {
	return templ.FromGoHTML(pages.Lookup("error"), data)
}
