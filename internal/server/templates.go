package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:generate sh -c "GOOS=js GOARCH=wasm go build -o static/portfolio.wasm ../../cmd/portfolio-wasm && cp $GOROOT/lib/wasm/wasm_exec.js static/"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var assetFS embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(assetFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
