package fragment

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Kind names a fragment template.
type Kind string

// Built-in fragment kinds.
const (
	KindInput     Kind = "input"
	KindSelect    Kind = "select"
	KindTextarea  Kind = "textarea"
	KindCheckbox  Kind = "checkbox"
	KindRadio     Kind = "radio"
	KindHidden    Kind = "hidden"
	KindFile      Kind = "file"
	KindField     Kind = "field"
	KindFieldset  Kind = "fieldset"
	KindHeader    Kind = "header"
	KindText      Kind = "text"
	KindPage      Kind = "page"
	KindTooltip   Kind = "tooltip"
	KindEncrypted Kind = "encrypted"
)

// Script is inline JavaScript a kind needs once per form.
type Script struct {
	Name   string
	Inline string
}

// Descriptor binds a kind to its template and script dependencies. Kinds
// assembled in Go rather than through a template leave Template empty.
type Descriptor struct {
	Kind     Kind
	Template string
	Scripts  []Script
}

// Registry maps kinds to descriptors. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[Kind]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[Kind]Descriptor)}
}

// DefaultRegistry returns a registry with every built-in kind registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, kind := range []Kind{
		KindInput, KindSelect, KindTextarea, KindCheckbox, KindRadio, KindHidden,
		KindFile, KindField, KindFieldset, KindHeader, KindText, KindPage,
	} {
		reg.MustRegister(Descriptor{Kind: kind, Template: "fragments/" + string(kind) + ".tmpl"})
	}
	reg.MustRegister(Descriptor{Kind: KindTooltip, Scripts: []Script{{Name: "tooltip", Inline: tooltipScript}}})
	reg.MustRegister(Descriptor{Kind: KindEncrypted, Scripts: []Script{{Name: "encrypted", Inline: encryptedScript}}})
	return reg
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for kind, descriptor := range r.kinds {
		cloned.kinds[kind] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register adds or replaces a descriptor.
func (r *Registry) Register(descriptor Descriptor) error {
	kind := Kind(strings.ToLower(strings.TrimSpace(string(descriptor.Kind))))
	if kind == "" {
		return fmt.Errorf("fragment: kind is required")
	}
	if descriptor.Template == "" && len(descriptor.Scripts) == 0 {
		return fmt.Errorf("fragment: descriptor for %q has neither template nor scripts", kind)
	}
	descriptor.Kind = kind

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(descriptor Descriptor) {
	if err := r.Register(descriptor); err != nil {
		panic(err)
	}
}

// Descriptor looks up a kind.
func (r *Registry) Descriptor(kind Kind) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.kinds[kind]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.kinds))
	for kind := range r.kinds {
		out = append(out, kind)
	}
	slices.Sort(out)
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Kind:     src.Kind,
		Template: src.Template,
		Scripts:  slices.Clone(src.Scripts),
	}
}
