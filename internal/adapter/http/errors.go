package http

import (
	"html/template"
	"net/http"
)

const sourceNotFoundMessage = "The earthquake catalog could not be found. Check that CATALOG_PATH points to an existing file."

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Earthquake Dashboard</title></head>
<body>
<h1>Earthquake Dashboard</h1>
<p>{{.}}</p>
</body>
</html>
`))

func writeErrorPage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	errorPage.Execute(w, msg) //nolint:errcheck // best-effort error response
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client may have gone away
}
