package formhtml

import (
	"io/fs"

	"github.com/goliatone/go-formhtml/pkg/fragment"
)

// EmbeddedTemplates exposes the built-in fragment templates so callers can
// copy or extend them. Names read "fragments/<kind>.tmpl".
func EmbeddedTemplates() fs.FS {
	return fragment.TemplatesFS()
}
