package template

import (
	"io"
)

// FragmentRenderer renders a template by name. The fragment assembler only
// needs this much. Names that look like template markup render inline.
type FragmentRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// Engine is the full surface of a template engine: named and inline rendering
// plus the filter and global hooks used by theme overrides and preview pages.
type Engine interface {
	FragmentRenderer
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
