// Package resources holds the templates every page shares: the layout,
// the section banner, the pager.
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// SetName is the template set the shared partials register under.
const SetName = "shared"

//go:embed templates/*.gohtml
var sharedFS embed.FS

var once sync.Once

// LoadSharedTemplates registers the shared set. Safe to call more than
// once; bootstrap calls it before the engine boots.
func LoadSharedTemplates() {
	once.Do(func() {
		templates.Register(templates.Set{Name: SetName, FS: sharedFS, Patterns: []string{"templates/*.gohtml"}})
	})
}
