// Package webui embeds the server-rendered templates and static assets for
// the chat front-end.
package webui

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates parses the embedded page templates. Panics on malformed embeds,
// which is a build defect, not a runtime condition.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// StaticFS returns the embedded static assets rooted at static/.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
