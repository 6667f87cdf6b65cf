package web

import (
	"embed"
	"html/template"
	"io/fs"
	"os"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the page templates. Each page defines "content" and
// renders inside "layout".
func Templates() (map[string]*template.Template, error) {
	pages := []string{"index", "codigo", "leads", "casos", "proveedores", "exito"}

	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		out[name] = tmpl
	}
	return out, nil
}

// GetFileSystem returns the static assets to serve.
func GetFileSystem() (fs.FS, error) {
	// Dev mode: serve from disk
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		return os.DirFS(dir), nil
	}
	return fs.Sub(staticFS, "static")
}
