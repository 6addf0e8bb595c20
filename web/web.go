// Package web holds the server-rendered views, embedded into the binary so
// the deployment is a single artifact.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewEngine builds the Fiber view engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The templates are embedded at compile time; this cannot fail at
		// runtime unless the directory layout changes.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
