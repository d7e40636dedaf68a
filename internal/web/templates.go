package web

import "html/template"

var pages = template.Must(template.New("pages").Parse(`
{{define "index"}}<!DOCTYPE html>
<html>
<head><title>miragex</title></head>
<body>
<h1>miragex</h1>
<form method="POST" action="/deploy">
  <p><label>Repository URL<br><input type="text" name="repo" size="60" placeholder="https://github.com/org/repo.git"></label></p>
  <p><label>Environment variables (KEY=VALUE per line)<br><textarea name="env" rows="6" cols="60"></textarea></label></p>
  <p><label>Hostname<br><input type="text" name="host" size="60" placeholder="app.example.org"></label></p>
  <p><button type="submit">Deploy</button></p>
</form>
<p><a href="/deployments">Deployments</a></p>
</body>
</html>{{end}}

{{define "deployed"}}<!DOCTYPE html>
<html>
<head><title>miragex</title></head>
<body>
<h1>Deployed</h1>
<p>Created <strong>{{.Name}}</strong>, routed to <strong>{{.Host}}</strong>.</p>
<p><a href="/logs/{{.Name}}">Logs</a> | <a href="/deployments">Deployments</a></p>
</body>
</html>{{end}}

{{define "deployments"}}<!DOCTYPE html>
<html>
<head><title>miragex</title></head>
<body>
<h1>Deployments</h1>
<table border="1" cellpadding="4">
<tr><th>Name</th><th>Phase</th><th>Host</th><th>Created</th><th></th></tr>
{{range .Deployments}}
<tr>
  <td>{{.Name}}</td>
  <td>{{.Phase}}{{if not .Complete}} (partial){{end}}</td>
  <td>{{if .Host}}{{.Host}}{{else}}(unknown){{end}}</td>
  <td>{{.Created.Format "2006-01-02 15:04:05"}}</td>
  <td><a href="/logs/{{.Name}}">logs</a> <a href="/manifest/{{.Name}}">manifest</a> <a href="/delete/{{.Name}}">delete</a></td>
</tr>
{{else}}
<tr><td colspan="5">No deployments.</td></tr>
{{end}}
</table>
<p><a href="/">Deploy</a></p>
</body>
</html>{{end}}

{{define "error"}}<!DOCTYPE html>
<html>
<head><title>miragex</title></head>
<body>
<h1>Something went wrong</h1>
<p>{{.Message}}</p>
<p><a href="/">Back</a></p>
</body>
</html>{{end}}
`))
