// internal/app/features/errors/templates.go
package errors

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var errorPages embed.FS

func init() {
	templates.Register(templates.Set{Name: "errors", FS: errorPages, Patterns: []string{"templates/*.gohtml"}})
}
