// Package templates holds the HTML pages rendered by the handlers.
package templates

import (
	"embed"
	"html/template"

	"stocks-simulator/format"
)

//go:embed *.html
var files embed.FS

// Funcs are the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"usd":  format.USD,
		"when": format.Timestamp,
	}
}

// Load parses every embedded page. Pages are named after their file,
// e.g. "index.html".
func Load() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs()).ParseFS(files, "*.html")
}

func MustLoad() *template.Template {
	return template.Must(Load())
}
