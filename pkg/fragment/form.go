package fragment

import (
	"context"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/postname"
)

// Form is the mutable state of a single render: the id counter, the current
// post-array prefix, registered tooltips and the scripts already emitted. A
// Form must not be shared between goroutines; start one per page or request.
type Form struct {
	ctx       context.Context
	b         *Builder
	ids       *identity.Resolver
	postArray string
	lastID    string
	tooltips  map[string]string
	scripts   map[string]bool
	cleared   map[string]bool
	tipSeq    int
	buttonSeq int
}

// FieldOptions decorates wrapped fields.
type FieldOptions struct {
	Tooltip     string
	DataList    []string
	Placeholder string
}

type control struct {
	html  string
	id    string
	flags attrs.Flags
}

// Builder returns the builder the form was started from.
func (f *Form) Builder() *Builder {
	return f.b
}

// LastID returns the id assigned to the most recently rendered control, for
// callers that need to associate their own label.
func (f *Form) LastID() string {
	return f.lastID
}

// PostArray returns the current post-array prefix.
func (f *Form) PostArray() string {
	return f.postArray
}

// SetPostArray changes the prefix for every following element.
func (f *Form) SetPostArray(prefix string) {
	f.postArray = prefix
}

// WithPostArray renders fn under prefix and restores the previous prefix
// afterwards, even if fn panics.
func (f *Form) WithPostArray(prefix string, fn func() string) string {
	previous := f.postArray
	f.postArray = prefix
	defer func() { f.postArray = previous }()
	return fn()
}

// PostName wraps name in the current post array.
func (f *Form) PostName(name string) string {
	return postname.Resolve(name, f.postArray)
}

// AddTooltip registers a tooltip for the named element; wrapped fields pick it
// up when they render.
func (f *Form) AddTooltip(name, message string) {
	f.tooltips[name] = message
}

func (f *Form) escape(value string) string {
	if f.b.cfg.rawValues {
		return value
	}
	return html.EscapeString(value)
}

func (f *Form) escapeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = f.escape(value)
	}
	return out
}

func (f *Form) normalize(set attrs.Set) (string, attrs.Flags) {
	return attrs.Normalize(set, f.b.cfg.include)
}

func (f *Form) requiredLabelClass() string {
	return f.b.Token(TokenRequiredLabelClass, attrs.DefaultRequiredLabelClass)
}

// decorations extracts prefix and suffix from set and renders them as spans
// carrying the element's class.
func (f *Form) decorations(set attrs.Set) (string, string, attrs.Set) {
	rest := set.Clone()
	prefix := rest.Take(attrs.KeyPrefix)
	suffix := rest.Take(attrs.KeySuffix)
	class := rest.Get(attrs.KeyClass)
	return decoration(prefix, class), decoration(suffix, class), rest
}

func decoration(text, class string) string {
	if text == "" {
		return ""
	}
	if class == "" {
		return "<span>" + text + "</span>"
	}
	return `<span class="` + class + `">` + text + "</span>"
}

// resolveID applies the form's resolver, or takes exactID verbatim.
func (f *Form) resolveID(name, exactID string, set attrs.Set) (string, attrs.Set) {
	if exactID != "" {
		return exactID, set.Without(attrs.KeyID)
	}
	return f.ids.Resolve(name, set)
}

func (f *Form) render(kind Kind, frag Fragment) string {
	out, err := f.b.assembler.Render(kind, frag)
	if err != nil {
		f.b.cfg.logger.Warn("fragment render failed", "kind", string(kind), "id", frag.ID, "error", err)
		return ""
	}
	return out
}

// script returns the kind's scripts the first time the kind is used.
func (f *Form) script(kind Kind) string {
	descriptor, ok := f.b.assembler.Registry().Descriptor(kind)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, s := range descriptor.Scripts {
		if f.scripts[s.Name] {
			continue
		}
		f.scripts[s.Name] = true
		b.WriteString(s.Inline)
		b.WriteString("\n")
	}
	return b.String()
}

// wrap renders a control inside the field template: div, label and tooltip.
func (f *Form) wrap(label, name string, ctl control, divAttrs attrs.Set, opts FieldOptions, before string) string {
	div := divAttrs.CleanDiv()
	if f.b.cfg.mspField {
		div = div.AddClass(f.b.Token(TokenMSPClass, "msp_label"))
	}
	divString, _ := f.normalize(div)

	if label != "" {
		label += ":"
	}
	return f.render(KindField, Fragment{
		ID:              ctl.id,
		Attributes:      divString,
		Prefix:          before,
		Label:           label,
		LabelAttributes: ctl.flags.LabelAttributes(f.requiredLabelClass()),
		Tooltip:         f.fieldTooltip(name, opts.Tooltip, ctl.flags),
		Control:         ctl.html,
	})
}

func (f *Form) fieldTooltip(name, explicit string, flags attrs.Flags) string {
	message := explicit
	if message == "" {
		message = f.tooltips[name]
	}
	if message == "" {
		return ""
	}
	return f.Tooltip(message, TooltipOptions{Flags: flags})
}

func (f *Form) nextID(base string) string {
	return base + "_" + strconv.Itoa(f.ids.Next())
}

func (f *Form) logInvalid(method string, got int, want string) string {
	f.b.cfg.logger.Debug("invalid field values", "method", method, "received", got, "expected", want)
	return ""
}
