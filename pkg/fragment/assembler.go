package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	rendertemplate "github.com/goliatone/go-formhtml/pkg/render/template"
	"github.com/goliatone/go-formhtml/pkg/render/template/gotemplate"
)

// ErrUnknownKind is returned when a kind has no registered template.
var ErrUnknownKind = errors.New("fragment: unknown kind")

// Choice is a rendered option inside a select.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Fragment carries the already-resolved pieces a template interpolates.
// Attributes is the serialised output of attrs.Normalize; every other string
// is inserted verbatim.
type Fragment struct {
	ID              string
	Name            string
	Type            string
	Value           string
	Attributes      string
	Prefix          string
	Suffix          string
	Placeholder     string
	DataList        []string
	Choices         []Choice
	Checked         bool
	Label           string
	LabelAttributes string
	Tooltip         string
	Control         string
	Level           int
}

func (f Fragment) context() map[string]any {
	data := map[string]any{
		"id":               f.ID,
		"name":             f.Name,
		"type":             f.Type,
		"value":            f.Value,
		"attributes":       f.Attributes,
		"prefix":           f.Prefix,
		"suffix":           f.Suffix,
		"placeholder":      f.Placeholder,
		"checked":          f.Checked,
		"label":            f.Label,
		"label_attributes": f.LabelAttributes,
		"tooltip":          f.Tooltip,
		"control":          f.Control,
		"level":            f.Level,
	}
	if len(f.DataList) > 0 {
		data["datalist"] = f.DataList
	}
	if len(f.Choices) > 0 {
		choices := make([]map[string]any, 0, len(f.Choices))
		for _, choice := range f.Choices {
			choices = append(choices, map[string]any{
				"value":    choice.Value,
				"label":    choice.Label,
				"selected": choice.Selected,
			})
		}
		data["options"] = choices
	}
	return data
}

// Assembler renders fragments through a FragmentRenderer. Overrides replace a
// kind's template with another template name or with inline template content.
type Assembler struct {
	renderer  rendertemplate.FragmentRenderer
	registry  *Registry
	overrides map[Kind]string
}

// NewAssembler wires an assembler. A nil registry uses DefaultRegistry.
func NewAssembler(renderer rendertemplate.FragmentRenderer, registry *Registry, overrides map[Kind]string) *Assembler {
	if registry == nil {
		registry = DefaultRegistry()
	}
	cloned := make(map[Kind]string, len(overrides))
	for kind, tpl := range overrides {
		if strings.TrimSpace(tpl) != "" {
			cloned[kind] = tpl
		}
	}
	return &Assembler{renderer: renderer, registry: registry, overrides: cloned}
}

// NewDefaultAssembler builds a pongo2 engine over the embedded templates plus
// any extra filesystems, which take precedence.
func NewDefaultAssembler(extra fs.FS, baseDir string) (*Assembler, error) {
	opts := []gotemplate.Option{gotemplate.WithFS(TemplatesFS())}
	if extra != nil {
		opts = []gotemplate.Option{gotemplate.WithFS(overlayFS{primary: extra, fallback: TemplatesFS()})}
	}
	if baseDir != "" {
		opts = append(opts, gotemplate.WithBaseDir(baseDir))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("fragment: create template engine: %w", err)
	}
	return NewAssembler(engine, nil, nil), nil
}

// WithOverrides returns a copy of the assembler using the given overrides on
// top of the existing ones.
func (a *Assembler) WithOverrides(overrides map[Kind]string) *Assembler {
	merged := make(map[Kind]string, len(a.overrides)+len(overrides))
	for kind, tpl := range a.overrides {
		merged[kind] = tpl
	}
	for kind, tpl := range overrides {
		merged[kind] = tpl
	}
	return NewAssembler(a.renderer, a.registry, merged)
}

// Registry exposes the kind registry.
func (a *Assembler) Registry() *Registry {
	return a.registry
}

// Render assembles kind with f. The output is trimmed of surrounding
// whitespace.
func (a *Assembler) Render(kind Kind, f Fragment) (string, error) {
	if a == nil || a.renderer == nil {
		return "", errors.New("fragment: assembler has no renderer")
	}
	name, ok := a.overrides[kind]
	if !ok {
		descriptor, found := a.registry.Descriptor(kind)
		if !found || descriptor.Template == "" {
			return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		name = descriptor.Template
	}
	out, err := a.renderer.Render(name, f.context())
	if err != nil {
		return "", fmt.Errorf("fragment: render %s: %w", kind, err)
	}
	return strings.TrimSpace(out), nil
}

// overlayFS resolves names against primary first.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	file, err := o.primary.Open(name)
	if err == nil {
		return file, nil
	}
	return o.fallback.Open(name)
}
