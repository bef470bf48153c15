package callback

import (
	"encoding/json"
	"html/template"
	"net/http"
)

// errorResponse represents a standard error response
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
	<head>
		<title>Misfit authorization</title>
	</head>
	<body>
		<center>
			<h1>{{.Title}}</h1>
			{{if .Detail}}<p>{{.Detail}}</p>{{end}}
		</center>
	</body>
</html>
`))

type page struct {
	Title  string
	Detail string
}

// writePage renders the browser-facing result of the redirect flow.
func writePage(w http.ResponseWriter, statusCode int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = pageTmpl.Execute(w, p)
}
