package fragment

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/options"
)

// SelectSpec describes a <select>. Value is a single value, or a comma
// separated list when the attributes carry "multiple".
type SelectSpec struct {
	Name       string
	Value      string
	Values     []string
	Options    []options.Option
	Attributes attrs.Set
	// ExactID bypasses id derivation and the uniqueness suffix.
	ExactID string
}

// Select renders a bare <select>.
func (f *Form) Select(spec SelectSpec) string {
	return f.selectControl(spec).html
}

// SelectRows renders a <select> whose options come from query rows.
func (f *Form) SelectRows(spec SelectSpec, rows options.Rows, valueField, labelField string) string {
	spec.Options = append(rows.Options(valueField, labelField), spec.Options...)
	return f.Select(spec)
}

// DivSelect renders a labelled <select>. Multiple selects are preceded by a
// hidden field that clears the stored value when nothing is chosen.
func (f *Form) DivSelect(label string, spec SelectSpec, opts FieldOptions) string {
	ctl := f.selectControl(spec)
	if ctl.html == "" {
		return ""
	}
	before := ""
	if spec.Attributes.Has("multiple") {
		before = f.Hidden(spec.Name+"[]", "", true)
	}
	return f.wrap(label, spec.Name, ctl, spec.Attributes, opts, before)
}

// DivSelectRows is DivSelect fed from query rows.
func (f *Form) DivSelectRows(label string, spec SelectSpec, rows options.Rows, valueField, labelField string, opts FieldOptions) string {
	spec.Options = append(rows.Options(valueField, labelField), spec.Options...)
	return f.DivSelect(label, spec, opts)
}

func (f *Form) selectControl(spec SelectSpec) control {
	prefix, suffix, set := f.decorations(spec.Attributes)
	id, set := f.resolveID(spec.Name, spec.ExactID, set)

	multiple := set.Has("multiple")
	selected := map[string]bool{}
	switch {
	case len(spec.Values) > 0:
		for _, v := range spec.Values {
			selected[v] = true
		}
	case multiple:
		for _, v := range strings.Split(spec.Value, ",") {
			selected[strings.TrimSpace(v)] = true
		}
	default:
		selected[spec.Value] = true
	}

	choices := make([]Choice, 0, len(spec.Options))
	for _, opt := range spec.Options {
		choices = append(choices, Choice{
			Value:    f.escape(opt.Value),
			Label:    f.escape(opt.Label),
			Selected: selected[opt.Value],
		})
	}

	name := spec.Name
	if multiple {
		name += "[]"
	}
	attrString, flags := f.normalize(set)
	f.lastID = id
	return control{
		id:    id,
		flags: flags,
		html: f.render(KindSelect, Fragment{
			ID:         id,
			Name:       f.PostName(name),
			Attributes: attrString,
			Prefix:     prefix,
			Suffix:     suffix,
			Choices:    choices,
		}),
	}
}

// CheckSpec describes one checkbox or radio button. ID defaults to the id
// derived from Name and Value.
type CheckSpec struct {
	Label      string
	ID         string
	Name       string
	Value      string
	Checked    bool
	Attributes attrs.Set
}

// Checkbox renders a checkbox posting into name[]. The first checkbox of
// each name in a form is preceded by a blank hidden field so unchecking
// every box still clears the stored selection.
func (f *Form) Checkbox(spec CheckSpec) string {
	var b strings.Builder
	if !f.cleared[spec.Name] {
		f.cleared[spec.Name] = true
		b.WriteString(f.Hidden(spec.Name+"[]", "", true))
		b.WriteString("\n")
	}
	width := "min-width:" + strconv.Itoa(len(spec.Label)+4) + "ch;"
	out := f.check(KindCheckbox, spec, spec.Name+"[]", ` style="`+width+`"`)
	if out == "" {
		return ""
	}
	b.WriteString(out)
	return b.String()
}

// Radio renders a radio button.
func (f *Form) Radio(spec CheckSpec) string {
	return f.check(KindRadio, spec, spec.Name, "")
}

func (f *Form) check(kind Kind, spec CheckSpec, name, labelAttrs string) string {
	set := spec.Attributes.Clone()
	if spec.ID != "" {
		set[attrs.KeyID] = spec.ID
	} else if !set.Has(attrs.KeyID) {
		set[attrs.KeyID] = checkID(spec.Name, spec.Value)
	}
	prefix, _, set := f.decorations(set)
	id, set := f.ids.Resolve(spec.Name, set)
	attrString, _ := f.normalize(set)
	f.lastID = id
	return f.render(kind, Fragment{
		ID:              id,
		Name:            f.PostName(name),
		Value:           f.escape(spec.Value),
		Attributes:      attrString,
		Prefix:          prefix,
		Checked:         spec.Checked,
		Label:           f.escape(spec.Label),
		LabelAttributes: labelAttrs,
	})
}

func checkID(name, value string) string {
	id := identity.FromName(name)
	if value == "" {
		return id
	}
	return id + "_" + identity.FromName(value)
}

// DivCheckbox groups rendered checkboxes in a fieldset.
func (f *Form) DivCheckbox(label string, boxes []string, set attrs.Set, tooltip string) string {
	return f.group("checkbox_div", label, boxes, set, tooltip)
}

// DivRadio groups rendered radio buttons in a fieldset.
func (f *Form) DivRadio(label string, radios []string, set attrs.Set, tooltip string) string {
	return f.group("radio_div", label, radios, set, tooltip)
}

func (f *Form) group(class, label string, items []string, set attrs.Set, tooltip string) string {
	divString, flags := f.normalize(set.AddClass(class))
	if label != "" {
		label += ":"
	}
	if tooltip != "" {
		tooltip = f.Tooltip(tooltip, TooltipOptions{Flags: flags})
	}
	return f.render(KindFieldset, Fragment{
		Attributes:      divString,
		Label:           label,
		LabelAttributes: flags.LabelAttributes(f.requiredLabelClass()),
		Tooltip:         tooltip,
		Control:         strings.Join(items, "\n"),
	})
}
