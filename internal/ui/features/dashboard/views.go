package dashboard

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var views = template.Must(template.New("dashboard").Parse(`
{{define "page"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - adboard</title>
<link rel="stylesheet" href="{{.Stylesheet}}">
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"></script>
</head>
<body data-signals="{{.Signals}}"
      data-on:keydown__window="evt.altKey && evt.key === 'e' && {{.Table.EditModeAction}}">
<nav class="levels">
{{- range .Nav.Items}}
  <a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Title}}</a>
{{- end}}
</nav>
{{- if .Nav.UpHref}}
<p class="up"><a href="{{.Nav.UpHref}}">Back to {{.Nav.Level.Parent.Title}}</a>{{if .Nav.ParentID}} / {{.Nav.ParentID}}{{end}}</p>
{{- end}}
<main id="ui-content" data-init="@get('{{.UpdatesURL}}')">
{{template "table" .Table}}
</main>
</body>
</html>
{{end}}

{{define "table"}}<section id="entity-table" class="entity-table{{if .EditMode}} editing{{end}}">
<header>
  <h1>{{.Title}} <small>({{.Count}})</small></h1>
  <form class="filters" onsubmit="return false">
    <select data-bind:status data-on:change="{{.FilterAction}}">
      <option value="">All statuses</option>
      <option value="active">Active</option>
      <option value="paused">Paused</option>
      <option value="archived">Archived</option>
    </select>
    <input type="search" placeholder="Search by name" data-bind:search data-on:input__debounce.300ms="{{.FilterAction}}">
  </form>
  <button type="button" data-on:click="{{.ResetAction}}">Reset sort</button>
  <button type="button" data-on:click="{{.EditModeAction}}">{{if .EditMode}}Done editing{{else}}Edit{{end}}</button>
  {{- if .SortLabel}}<p class="sort-label">Sorted by {{.SortLabel}}</p>{{end}}
</header>
<table>
<thead><tr>
{{- range .Headers}}
  <th aria-sort="{{.AriaSort}}"{{if .Numeric}} class="num"{{end}}><button type="button" data-on:click="{{.Action}}">{{.Label}} {{.Indicator}}</button></th>
{{- end}}
</tr></thead>
<tbody>
{{- range $row := .Rows}}
<tr id="row-{{$row.ID}}" data-status="{{$row.Status}}">
{{- range $i, $c := $row.Cells}}
  <td{{if $c.Numeric}} class="num"{{end}}>
  {{- if and (eq $i 0) $.EditMode}}<input name="name" value="{{$c.Text}}">
  {{- else if and (eq $i 0) $row.Href}}<a href="{{$row.Href}}">{{$c.Text}}</a>
  {{- else}}{{$c.Text}}{{end -}}
  </td>
{{- end}}
</tr>
{{- else}}
<tr><td colspan="{{len .Headers}}">No {{.Title}} match the current filters.</td></tr>
{{- end}}
</tbody>
<tfoot><tr>
{{- range .Totals}}
  <td{{if .Numeric}} class="num"{{end}}>{{.Text}}</td>
{{- end}}
</tr></tfoot>
</table>
</section>
{{end}}
`))

// Page renders a full dashboard page.
func Page(v PageView) templ.Component {
	return component("page", v)
}

// Table renders the table fragment.
func Table(v TableView) templ.Component {
	return component("table", v)
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}
