// Package web holds the server-rendered views of the catalog.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates parses every view. Each page is addressable by its file name,
// e.g. "author_list.html"; layout.html contributes the shared "header" and
// "footer" blocks.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFiles, "templates/*.html")
}
