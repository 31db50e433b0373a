package fragment

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/attrs"
)

// TextAreaSpec describes a <textarea>.
type TextAreaSpec struct {
	Name        string
	Value       string
	Attributes  attrs.Set
	Placeholder string
	ExactID     string
}

// TextArea renders a bare <textarea>. The body is escaped like any value.
func (f *Form) TextArea(spec TextAreaSpec) string {
	return f.textArea(spec).html
}

func (f *Form) textArea(spec TextAreaSpec) control {
	prefix, suffix, set := f.decorations(spec.Attributes)
	id, set := f.resolveID(spec.Name, spec.ExactID, set)
	attrString, flags := f.normalize(set)
	f.lastID = id
	return control{
		id:    id,
		flags: flags,
		html: f.render(KindTextarea, Fragment{
			ID:          id,
			Name:        f.PostName(spec.Name),
			Value:       f.escape(spec.Value),
			Attributes:  attrString,
			Prefix:      prefix,
			Suffix:      suffix,
			Placeholder: f.escape(spec.Placeholder),
		}),
	}
}

// DivTextArea renders a labelled <textarea>.
func (f *Form) DivTextArea(label, name, value string, set attrs.Set, opts FieldOptions) string {
	ctl := f.textArea(TextAreaSpec{
		Name:        name,
		Value:       value,
		Attributes:  set,
		Placeholder: opts.Placeholder,
	})
	return f.wrap(label, name, ctl, set, opts, "")
}

// DefaultNoteFormID is the form DivTextAreaNote saves when none is named.
const DefaultNoteFormID = "generic_form_1"

// DivTextAreaNote renders an editable note that saves its form through
// autoUpdate when it loses focus. Notes are never disabled or read-only.
func (f *Form) DivTextAreaNote(label, name, value string, set attrs.Set, formID string) string {
	if formID == "" {
		formID = DefaultNoteFormID
	}
	div := set.CleanDiv()
	if f.b.cfg.mspField {
		div = div.AddClass(f.b.Token(TokenMSPClass, "msp_label"))
	}
	divString, _ := f.normalize(div)

	ctl := f.textArea(TextAreaSpec{
		Name:       name,
		Value:      value,
		Attributes: set.Without("disabled", "readonly").With("onblur", "autoUpdate('"+f.escape(formID)+"');"),
	})
	if label != "" {
		label += ":"
	}
	return "<div" + divString + ">\n" +
		`<label for="` + ctl.id + `"` + ctl.flags.LabelAttributes(f.requiredLabelClass()) + ` style="float:left;width: 30px;">` +
		label + f.fieldTooltip(name, "", ctl.flags) + "</label>\n" +
		ctl.html + "\n</div>"
}

// TextDisplay renders a read-only labelled value. An empty value renders
// nothing.
func (f *Form) TextDisplay(id, label, value string, set attrs.Set) string {
	if value == "" {
		return ""
	}
	prefix, suffix, set := f.decorations(set)
	set = set.With(attrs.KeyID, id)
	id, set = f.ids.Resolve(id, set)
	attrString, _ := f.normalize(set)
	if label != "" {
		label += ":"
	}
	f.lastID = id
	return f.render(KindText, Fragment{
		ID:         id,
		Value:      f.escape(value),
		Label:      f.escape(label),
		Attributes: attrString,
		Prefix:     prefix,
		Suffix:     suffix,
	})
}

// DivTextDisplay renders a value as a <span> inside the usual labelled div.
func (f *Form) DivTextDisplay(label, name, value string, set attrs.Set, opts FieldOptions) string {
	_, _, rest := f.decorations(set)
	id, rest := f.ids.Resolve(name, rest)
	attrString, flags := f.normalize(rest)
	f.lastID = id
	ctl := control{
		id:    id,
		flags: flags,
		html:  `<span id="` + id + `"` + attrString + `>` + f.escape(value) + `</span>`,
	}
	return f.wrap(label, name, ctl, set, opts, "")
}

// Header renders <h1>..<h6>. Levels outside that range are clamped.
func (f *Form) Header(level int, text string, set attrs.Set) string {
	level = max(1, min(level, 6))
	prefix, suffix, set := f.decorations(set)
	tag := "h" + strconv.Itoa(level)
	if !set.Has(attrs.KeyID) {
		set = set.With(attrs.KeyID, tag)
	}
	id, set := f.ids.Resolve(tag, set)
	attrString, _ := f.normalize(set)
	f.lastID = id
	return f.render(KindHeader, Fragment{
		ID:         id,
		Value:      f.escape(text),
		Attributes: attrString,
		Prefix:     prefix,
		Suffix:     suffix,
		Level:      level,
	})
}

// UL renders items as a list. Each item is wrapped in the prefix and suffix
// spans. Items are inserted verbatim.
func (f *Form) UL(items []string, set attrs.Set) string {
	prefix, suffix, set := f.decorations(set)
	attrString, _ := f.normalize(set)
	var b strings.Builder
	b.WriteString("<ul" + attrString + ">")
	for _, item := range items {
		b.WriteString("<li>" + prefix + item + suffix + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// DivMessage renders a labelled paragraph. message is inserted verbatim.
func (f *Form) DivMessage(label, message, tooltip string) string {
	if tooltip != "" {
		tooltip = f.Tooltip(tooltip, TooltipOptions{})
	}
	return "<div>\n<label>" + label + ":</label>" + tooltip + "\n" +
		`<p style="display:inline-block;padding-top:7px;">` + message + "</p>\n</div>"
}

// DivMessageTight is DivMessage with less padding and preserved line breaks.
func (f *Form) DivMessageTight(label, message string) string {
	return "<div>\n<label>" + label + ":</label>\n" +
		`<p style="display:inline-block;padding-top:2px;white-space: pre-line;">` + message + "</p>\n</div>"
}

// InlineMessage renders a label and message on one line.
func (f *Form) InlineMessage(label, message string) string {
	return `<label style="display:inline-block;margin:0 2px 0 0;padding:0">` + label + ":</label>\n" + message + "<br />"
}

// ControllerMessages renders the success and error paragraphs a controller
// reports after a submission. Empty messages are skipped.
func ControllerMessages(success, failure string) string {
	var b strings.Builder
	if success != "" {
		b.WriteString(`<p class="success">` + success + "</p>")
	}
	if failure != "" {
		b.WriteString(`<p class="error">` + failure + "</p>")
	}
	return b.String()
}

// Page wraps body in the form element. title, when set, is shown as a heading.
func (f *Form) Page(id, title, body string, set attrs.Set) string {
	// Include attributes target controls, not the form itself.
	attrString, _ := attrs.Normalize(set, nil)
	return f.render(KindPage, Fragment{
		ID:         id,
		Name:       id,
		Label:      f.escape(title),
		Attributes: attrString,
		Control:    body,
	})
}
