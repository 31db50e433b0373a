package fragment

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formhtml/pkg/attrs"
)

// DefaultContainer is the ajax target used when none is given.
const DefaultContainer = "PARENT"

func (f *Form) buttonAttrs(set attrs.Set) string {
	attrString, _ := f.normalize(set.AddClass(f.b.Token(TokenButtonClass, "")))
	return attrString
}

// debugSubmit renders the plain submit button shown next to ajax buttons when
// debugging is on.
func (f *Form) debugSubmit(value, text, attrString string) string {
	if !f.b.cfg.debugAjax {
		return ""
	}
	return "\n" + `<button type="submit" name="PostButton" value="` + value + `"` + attrString + `>Submit ` + text + `</button>`
}

// AjaxButton submits formID through formSubmit() and loads the response into
// container.
func (f *Form) AjaxButton(name, text, formID string, set attrs.Set, container string) string {
	if container == "" {
		container = DefaultContainer
	}
	attrString := f.buttonAttrs(set)
	return `<button type="button" name="` + name + `" value="` + name + `" onclick="formSubmit(this, '` + formID + `', '` + container + `');"` +
		attrString + `>` + text + `</button>` + f.debugSubmit(name, text, attrString)
}

// NavButton is the save button inside a navigation div.
func (f *Form) NavButton(text, formID string, set attrs.Set, container string) string {
	return `<div class="navigation">` + "\n" + f.AjaxButton("AjaxSave", text, formID, set, container) + "\n</div>"
}

// SubmitSelf posts the page's own form with a plain submit button.
func (f *Form) SubmitSelf(name, text string, set attrs.Set) string {
	return `<button type="submit" name="PostButton" value="` + name + `"` + f.buttonAttrs(set) + `>` + text + `</button>`
}

// SubmitNew saves a new record from a popup form to targetURL.
func (f *Form) SubmitNew(text, formID, targetURL string, set attrs.Set) string {
	return `<button type="button" name="AjaxSave" value="AjaxSave" onclick="formSubmitNew(this, '` + formID + `', '` + targetURL + `');"` +
		f.buttonAttrs(set) + `>` + text + `</button>`
}

// SubmitDelete deletes the record behind a popup form through targetURL.
func (f *Form) SubmitDelete(text, formID, targetURL string, set attrs.Set) string {
	return `<button type="button" name="AjaxDelete" value="AjaxDelete" onclick="formSubmitDelete(this, '` + formID + `', '` + targetURL + `');"` +
		f.buttonAttrs(set) + `>` + text + `</button>`
}

// FormClose closes the modal holding the form. text defaults to "Close".
func (f *Form) FormClose(text string, set attrs.Set) string {
	if text == "" {
		text = "Close"
	}
	return `<button type="button" name="Close" value="Close" onclick="formClose();"` + f.buttonAttrs(set.AddClass("close")) + `>` + text + `</button>`
}

// PageButton opens a popup form page through onclick. Its id combines the
// text, the name and a per-form counter.
func (f *Form) PageButton(name, text, onclick, title string) string {
	f.buttonSeq++
	ident := strings.NewReplacer(" ", "", `"`, "", "/", "").Replace(text)
	var titleAttr, classAttr string
	if title != "" {
		classAttr = ` class="subtleLink"`
		titleAttr = ` title="` + title + `"`
	}
	return `<button id="AjaxButton` + ident + name + strconv.Itoa(f.buttonSeq) + `"` + classAttr + ` type="button"` + titleAttr +
		` name="` + name + `" value="` + name + `" aria-expanded="false" aria-controls="generic_popup_form" onclick="` + onclick + `">` + text + `</button>`
}

// DivLink renders a labelled anchor to href.
func (f *Form) DivLink(label, title, href string, set attrs.Set) string {
	return f.linkDiv(label, `<a href="`+href+`">`+title+`</a>`, set)
}

// DivOnClick renders a labelled anchor running script on click.
func (f *Form) DivOnClick(label, title, script string, set attrs.Set) string {
	return f.linkDiv(label, `<a onclick="`+script+`">`+title+`</a>`, set)
}

func (f *Form) linkDiv(label, anchor string, set attrs.Set) string {
	prefix, suffix, set := f.decorations(set)
	attrString, _ := f.normalize(set)
	var b strings.Builder
	b.WriteString("<div" + attrString + ">\n")
	if label != "" {
		b.WriteString(`<label style="padding-top: 0px;">` + label + ":</label>\n")
	}
	b.WriteString(prefix + anchor + suffix + "\n</div>")
	return b.String()
}

// SpanMore shortens content to roughly length bytes, cutting at a space near
// the end, and adds More/Less toggles for the remainder. The cut never splits
// a rune. Short content is returned unchanged.
func (f *Form) SpanMore(content string, length int) string {
	if len(content) < length || length <= 0 {
		return content
	}
	end := length
	for end > 0 && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}
	// Look for a word break in the last 15 bytes.
	cut := end
	start := max(0, end-15)
	if i := strings.LastIndexByte(content[start:end], ' '); i >= 0 {
		cut = start + i
	}
	shown, hidden := content[:cut], content[cut:]

	n := strconv.Itoa(f.ids.Next())
	more, less := "more_"+n, "less_"+n
	return shown + "\n" +
		`<span id="` + less + `" style="display:none;">` + hidden +
		`<a onclick="document.getElementById('` + less + `').style.display='none';document.getElementById('` + more + `').style.display='initial';">(Less)</a></span>` + "\n" +
		`<a id="` + more + `" style="display:inline;" onclick="document.getElementById('` + less + `').style.display='initial';document.getElementById('` + more + `').style.display='none';">(More...)</a>`
}
