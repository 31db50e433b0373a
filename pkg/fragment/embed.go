package fragment

import (
	"embed"
	"io/fs"
)

//go:embed templates/fragments/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in fragment templates rooted so that names
// read "fragments/<kind>.tmpl".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
