package render

import "html/template"

const gridCardTemplate = `{{define "grid_card"}}<div class="result result-grid">
  <div class="card"{{with .Tooltip}} title="{{.}}"{{end}}>
    <div class="card-frame">
      {{- if .Image}}
      <img class="card-image" src="{{.Image}}" alt="">
      {{- else}}
      <svg class="card-image" width="400" height="300" role="img" aria-label="{{.Title}}">
        <circle cx="50%" cy="50%" r="100" fill="{{hsl (hue .Title)}}"></circle>
        <text x="50%" y="50%" dy="0.35em" text-anchor="middle" fill="white" font-size="100" font-family="Arial, sans-serif">{{initial .Title}}</text>
      </svg>
      {{- end}}
    </div>
    <h3><a class="card-title" href="{{.URL}}">{{.Title}}</a></h3>
    {{- with .Text}}
    <p class="card-text">{{.}}</p>
    {{- end}}
  </div>
</div>{{end}}`

const listCardTemplate = `{{define "list_card"}}<div class="result result-list card"{{with .Tooltip}} title="{{.}}"{{end}}>
  {{- if .Image}}
  <div class="card-row">
    <div class="card-aside"><img class="card-image" src="{{.Image}}" alt=""></div>
    <div class="card-main">{{template "list_body" .}}</div>
  </div>
  {{- else}}
  {{template "list_body" .}}
  {{- end}}
</div>{{end}}
{{define "list_body"}}<div class="card-body">
    {{- with .Project}}
    <h6 class="card-project"><span class="icon-feed" aria-hidden="true"></span><small>{{.}}</small></h6>
    {{- end}}
    <h3><a class="card-title" href="{{.URL}}">{{.Title}}</a></h3>
    {{- with .Date}}
    <div class="card-date"><time datetime="{{.}}">{{formatDate .}}</time></div>
    {{- end}}
    <p class="card-text">{{.Text}}</p>
  </div>{{end}}`

const filtersTemplate = `{{define "filters"}}<div class="search-filters{{if .Active}} show{{end}}">
  {{- range .Active}}
  <a class="search-filter-button" data-state="active" href="{{.Href}}"{{if $.Tooltip}} title="Remove filter {{.Value}}"{{end}}><span class="filter-remove" aria-hidden="true">×</span>{{.Value}}</a>
  {{- end}}
  {{- range .Available}}
  <a class="search-filter-button" href="{{.Href}}"{{if $.Tooltip}} title="{{.Count}} {{plural .Count "result" "results"}}"{{end}}>{{.Value}} <span class="badge-filter">{{.Count}}</span></a>
  {{- end}}
</div>{{end}}`

const paginationTemplate = `{{define "pagination"}}<nav class="search-pagination" aria-label="Search results pages">
  <ul class="pagination">
    {{- range .}}
    <li class="page-item{{if .Current}} active{{end}}"><a class="page-link" href="{{.Href}}"{{with .Label}} aria-label="{{.}}"{{end}}{{if .Current}} aria-current="page"{{end}}>{{.Text}}</a></li>
    {{- end}}
  </ul>
</nav>{{end}}`

const suggestionsTemplate = `{{define "suggestions"}}<div class="search-suggestions">
  {{- range .}}
  <a class="search-suggestion-item" href="{{.Href}}">{{.Value}}</a>
  {{- end}}
</div>{{end}}`

const resultsTemplate = `{{define "results"}}{{if .Cards -}}
<div class="search-results view-{{.View}}">
  {{- range .Cards}}
  {{.}}
  {{- end}}
</div>
{{- else -}}
<p class="search-empty">No results found.</p>
{{- end}}{{end}}`

var templates = template.Must(template.New("render").Funcs(GetTemplateFuncs()).Parse(
	gridCardTemplate + listCardTemplate + filtersTemplate + paginationTemplate + suggestionsTemplate + resultsTemplate,
))
