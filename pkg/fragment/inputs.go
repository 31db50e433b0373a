package fragment

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/postname"
)

// Date and time layouts posted by browser inputs.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
	TimeLayout     = "15:04"
)

var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateTimeLayout,
	DateLayout,
	"01/02/2006",
	"15:04:05",
	TimeLayout,
}

// InputSpec describes a bare <input>.
type InputSpec struct {
	Type        string
	Name        string
	Value       string
	Attributes  attrs.Set
	DataList    []string
	Placeholder string
	// ExactID bypasses id derivation and the uniqueness suffix.
	ExactID string
}

// DateOptions tunes date inputs.
type DateOptions struct {
	FieldOptions
	StartBlank bool
	PriorOnly  bool
}

// Input renders a bare <input>.
func (f *Form) Input(spec InputSpec) string {
	return f.input(spec).html
}

// InputText renders a bare text input.
func (f *Form) InputText(name, value string, set attrs.Set) string {
	return f.Input(InputSpec{Type: "text", Name: name, Value: value, Attributes: set})
}

func (f *Form) input(spec InputSpec) control {
	kind := spec.Type
	if kind == "" {
		kind = "text"
	}
	prefix, suffix, set := f.decorations(spec.Attributes)
	id, set := f.resolveID(spec.Name, spec.ExactID, set)
	if len(spec.DataList) > 0 {
		set["list"] = "datalist_" + id
	}
	attrString, flags := f.normalize(set)
	f.lastID = id

	return control{
		id:    id,
		flags: flags,
		html: f.render(KindInput, Fragment{
			Type:        kind,
			ID:          id,
			Name:        f.PostName(spec.Name),
			Value:       f.escape(spec.Value),
			Attributes:  attrString,
			Prefix:      prefix,
			Suffix:      suffix,
			Placeholder: f.escape(spec.Placeholder),
			DataList:    f.escapeAll(spec.DataList),
		}),
	}
}

// Hidden renders a hidden input. Its id always carries the form counter. The
// name is wrapped in the post array only when usePostArray is set.
func (f *Form) Hidden(name, value string, usePostArray bool) string {
	postName := name
	if usePostArray {
		postName = f.PostName(name)
	}
	return f.render(KindHidden, Fragment{
		ID:    f.nextID(identity.FromName(name)),
		Name:  postName,
		Value: f.escape(value),
	})
}

// DivInput renders a labelled input inside a div. A blank label omits the
// <label>.
func (f *Form) DivInput(kind, label, name, value string, set attrs.Set, opts FieldOptions) string {
	ctl := f.input(InputSpec{
		Type:        kind,
		Name:        name,
		Value:       value,
		Attributes:  set,
		DataList:    opts.DataList,
		Placeholder: opts.Placeholder,
	})
	return f.wrap(label, name, ctl, set, opts, "")
}

// DivInputText widens the input to fit its value.
func (f *Form) DivInputText(label, name, value string, set attrs.Set, opts FieldOptions) string {
	return f.DivInput("text", label, name, value, set.AddMinWidth(len(value)), opts)
}

// DivInputEmail renders an email input with the email validation class.
func (f *Form) DivInputEmail(label, name, value string, set attrs.Set, opts FieldOptions) string {
	set = set.AddMinWidth(len(value)).AddClass("email")
	return f.DivInput("email", label, name, value, set, opts)
}

// DivInputSearch renders a search input, usually with a datalist.
func (f *Form) DivInputSearch(label, name, value string, set attrs.Set, opts FieldOptions) string {
	return f.DivInput("search", label, name, value, set, opts)
}

// DivInputNumber defaults an empty value to 0.
func (f *Form) DivInputNumber(label, name, value string, set attrs.Set, opts FieldOptions) string {
	if value == "" {
		value = "0"
	}
	return f.DivInput("number", label, name, value, set, opts)
}

// DivInputRate renders a dollar rate between 0 and 999.
func (f *Form) DivInputRate(label, name, value string, set attrs.Set, opts FieldOptions) string {
	if value == "" {
		value = "0"
	}
	set = set.Clone()
	set[attrs.KeyPrefix] = "$"
	set["min"] = "0"
	set["max"] = "999"
	set["step"] = "1"
	return f.DivInput("number", label, name, value, set, opts)
}

// DivInputTel renders a phone number input.
func (f *Form) DivInputTel(label, name, value string, set attrs.Set, opts FieldOptions) string {
	set = set.AddClass("phone_number").With("maxlength", "12")
	return f.DivInput("tel", label, name, value, set, opts)
}

// DivInputTime normalises value to HH:MM. An empty value shows the current
// time.
func (f *Form) DivInputTime(label, name, value string, set attrs.Set, opts FieldOptions) string {
	value = f.formatTime(value, TimeLayout)
	return f.DivInput("time", label, name, value, set.AddClass("time"), opts)
}

// DivInputDate renders a date input. Empty and zero dates default to today
// unless StartBlank is set; PriorOnly caps the value at today.
func (f *Form) DivInputDate(label, name, value string, set attrs.Set, opts DateOptions) string {
	blank := opts.StartBlank && isZeroTime(value)
	value = f.formatTime(value, DateLayout)
	if opts.PriorOnly {
		set = set.With("max", f.b.cfg.clock().Format(DateLayout)).AddClass("prior_date")
	} else {
		set = set.AddClass("date")
	}
	if blank {
		value = ""
	}
	return f.DivInput("date", label, name, value, set, opts.FieldOptions)
}

// DivInputDateTime renders a datetime-local input.
func (f *Form) DivInputDateTime(label, name, value string, set attrs.Set, opts FieldOptions) string {
	value = f.formatTime(value, DateTimeLayout)
	return f.DivInput("datetime-local", label, name, value, set.AddClass("date"), opts)
}

// DivInputPassword renders an encrypted input without autocomplete.
func (f *Form) DivInputPassword(label, name, value string, set attrs.Set, opts FieldOptions) string {
	set = set.With("autocomplete", "new-password").AddClass("password")
	return f.DivInputEncrypted(label, name, value, set, opts)
}

// DivInputEncrypted posts under the Encrypt prefix and shows the decrypted
// value. Inputs that are not passwords reveal their value on focus; read-only
// ones get a Reveal button instead.
func (f *Form) DivInputEncrypted(label, name, value string, set attrs.Set, opts FieldOptions) string {
	set = set.Clone()
	readonly := set["readonly"] != "" || f.b.cfg.include["readonly"] != ""
	withButton := false
	if !set.Has("autocomplete") {
		set["autocomplete"] = "off"
		set["onfocus"] = "changeEncrypted(this, 'text');"
		set["onblur"] = "changeEncrypted(this, 'password');"
		if readonly {
			withButton = true
			set["width"] = "80%"
			set[attrs.KeyStyle] = "display:inline-block"
		}
	}

	if value != "" && f.b.cfg.decrypter != nil {
		plain, err := f.b.cfg.decrypter.Decrypt(f.ctx, value)
		if err != nil {
			f.b.cfg.logger.Warn("decrypt field value", "name", name, "error", err)
			plain = ""
		}
		value = plain
	}

	out := f.WithPostArray(postname.Encrypt, func() string {
		return f.DivInput("password", label, name, value, set, opts)
	})
	if out == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(out)
	if withButton {
		b.WriteString("\n")
		b.WriteString(`<button type="button" style="display:inline-block" onclick="toggleEncrypted(this, '` + f.lastID + `');">Reveal</button>`)
	}
	if script := f.script(KindEncrypted); script != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(script))
	}
	return b.String()
}

// formatTime reformats value into layout. Empty and zero dates yield the
// current time; unparseable values yield "".
func (f *Form) formatTime(value, layout string) string {
	if isZeroTime(value) {
		return f.b.cfg.clock().Format(layout)
	}
	if parsed, ok := parseTime(value); ok {
		return parsed.Format(layout)
	}
	f.b.cfg.logger.Debug("unparseable date value", "value", value)
	return ""
}

func isZeroTime(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.HasPrefix(value, "0000-00-00")
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, candidate := range parseLayouts {
		if parsed, err := time.Parse(candidate, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FileFlag tells the controller what to do with a previously stored file.
type FileFlag string

// File flags.
const (
	FileKeep    FileFlag = ""
	FileArchive FileFlag = "A"
	FileDelete  FileFlag = "D"
)

// DefaultFileAccept lists the file types accepted when none are given.
const DefaultFileAccept = ".pdf,.jpg,.png"

// FileSpec describes a file upload field. FileID is the stored file, or -1.
type FileSpec struct {
	Label              string
	Name               string
	FileID             int
	Attributes         attrs.Set
	Previous           FileFlag
	ArchiveDescription string
	Tooltip            string
}

// DivInputFile renders a hidden file input driven by a Choose File button and
// a drop target, plus the hidden fields telling the controller what to do
// with an existing file.
func (f *Form) DivInputFile(spec FileSpec) string {
	n := strconv.Itoa(f.ids.Next())
	exists := spec.FileID > -1

	set := spec.Attributes.Clone()
	for key, value := range f.b.cfg.include {
		if value != "" {
			set[key] = value
		}
	}
	fileAttrs := attrs.Set{
		attrs.KeyOnChange: "formSelectFile('" + n + "')",
		"accept":          DefaultFileAccept,
	}
	if exists {
		set = set.RemoveClass("required")
	}
	if class := set.Get(attrs.KeyClass); strings.Contains(class, "required") {
		fileAttrs[attrs.KeyClass] = class
	}
	wrapperClass := "file_upload_wrapper"
	if set.Has("readonly") {
		fileAttrs["disabled"] = "disabled"
		delete(set, "readonly")
		wrapperClass += " read_only"
	}
	multiple := false
	if set.Has("multiple") {
		multiple = true
		fileAttrs["multiple"] = set.Take("multiple")
	}
	if set.Has("accept") {
		fileAttrs["accept"] = set.Take("accept")
	}
	prefix := set.Take(attrs.KeyPrefix)
	suffix := set.Take(attrs.KeySuffix)
	if prefix != "" {
		prefix += "&nbsp;"
	}
	if suffix != "" {
		suffix = "&nbsp;" + suffix
	}

	// Include attributes are already merged above.
	divString, _ := attrs.Normalize(set.CleanDiv(), nil)
	fileString, flags := attrs.Normalize(fileAttrs, nil)

	var link, hidden, view string
	if exists && f.b.cfg.files != nil {
		id := spec.FileID
		view = `<span style="margin:0;">View File: <button type="button" style="margin: 0 0 0 5px;" onclick="window.open('` +
			f.b.cfg.files.DisplayURL(id) + `', '_blank');">View</button></span>`
		link = `<span class="download_file">` + f.b.cfg.files.DownloadLink(id, "Download") + `</span>`
	}
	if exists {
		fileID := strconv.Itoa(spec.FileID)
		switch spec.Previous {
		case FileDelete:
			hidden = f.Hidden("DeleteFile["+spec.Name+"]", fileID, false)
		case FileArchive:
			hidden = f.Hidden("ArchiveFile["+spec.Name+"]", fileID, false)
			if spec.ArchiveDescription != "" {
				hidden += "\n" + f.Hidden("ArchiveDesc["+spec.Name+"]", spec.ArchiveDescription, false)
			}
		default:
			hidden = f.Hidden("PriorFile["+spec.Name+"]", fileID, false)
		}
	}

	tooltip := f.fieldTooltip(spec.Name, spec.Tooltip, flags)
	name := spec.Name
	placeholder := "Drag 1 file here"
	if multiple {
		name += "[]"
		placeholder = "Drag files here"
	}
	fileID := "file_" + n
	f.lastID = fileID
	input := f.render(KindFile, Fragment{ID: fileID, Name: name, Attributes: fileString})

	var b strings.Builder
	b.WriteString("<div" + divString + ">\n")
	if view != "" {
		b.WriteString(view + "\n")
	}
	if spec.Label != "" {
		b.WriteString("<label>" + spec.Label + ":" + link + tooltip + "</label>\n")
	}
	b.WriteString(`<div class="` + wrapperClass + `">` + "\n")
	b.WriteString(input + "\n")
	b.WriteString(prefix)
	b.WriteString(`<label for="` + fileID + `" id="label_` + n + `"><button type="button" class="upload_button" aria-controls="filename_` + n +
		`" onclick="document.getElementById('` + fileID + `').click();">Choose File</button></label>` + "\n")
	b.WriteString(`<label for="filename_` + n + `" class="hide">Uploaded File</label>` + "\n")
	b.WriteString(`<input type="text" id="filename_` + n + `" ondrop="formDropFile(event, '` + n +
		`');" ondragover="return false;" autocomplete="off" readonly="readonly" placeholder="` + placeholder + `"/>` + suffix + "\n")
	if spec.Label == "" && tooltip != "" {
		b.WriteString(tooltip + "\n")
	}
	b.WriteString("</div>\n")
	if hidden != "" {
		b.WriteString(hidden + "\n")
	}
	b.WriteString("</div>")
	return b.String()
}
