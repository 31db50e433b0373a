package fragment

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/postname"
	"github.com/goliatone/go-formhtml/pkg/testsupport"
)

func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	base := []Option{
		WithClock(testsupport.FixedClock(time.Time{})),
		WithRandomSuffix(testsupport.FixedSuffix("abcd1234")),
	}
	b, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	return b
}

func newTestForm(t *testing.T, opts ...Option) *Form {
	t.Helper()
	return newTestBuilder(t, opts...).NewForm(testsupport.Context())
}

func TestDivInput_Markup(t *testing.T) {
	form := newTestForm(t)
	got := form.DivInput("text", "First Name", "FirstName", "Ada", nil, FieldOptions{})
	want := "<div>\n" +
		`<label for="first_name">First Name:</label>` + "\n" +
		`<input type="text" id="first_name" name="FieldValues[FirstName]" value="Ada"/>` + "\n" +
		"</div>"
	if got != want {
		t.Fatalf("unexpected markup\nwant: %q\ngot:  %q", want, got)
	}
	if form.LastID() != "first_name" {
		t.Fatalf("expected last id first_name, got %q", form.LastID())
	}
}

func TestDivInput_RequiredAndHiddenLabel(t *testing.T) {
	form := newTestForm(t, WithRequiredLabelClass("is-required"))
	got := form.DivInput("text", "Email", "Email", "", attrs.Set{
		"class": "required",
		"style": "display:none;",
	}, FieldOptions{})
	testsupport.AssertContains(t, got,
		`<div class="required" style="display:none;">`,
		`<label for="email" class="is-required" style="display:none;">Email:</label>`,
		`value="" class="required" style="display:none;"/>`,
	)
}

func TestDivInput_EmptyLabelOmitsLabel(t *testing.T) {
	form := newTestForm(t)
	got := form.DivInput("text", "", "Code", "x", nil, FieldOptions{})
	testsupport.AssertNotContains(t, got, "<label")
}

func TestInput_EscapesValues(t *testing.T) {
	form := newTestForm(t)
	got := form.InputText("Note", `"><script>`, nil)
	testsupport.AssertContains(t, got, `value="&#34;&gt;&lt;script&gt;"`)

	raw := newTestForm(t, WithRawValues())
	got = raw.InputText("Note", `a&b`, nil)
	testsupport.AssertContains(t, got, `value="a&b"`)
}

func TestPlaceholder_Escaped(t *testing.T) {
	form := newTestForm(t)
	got := form.Input(InputSpec{Type: "text", Name: "Q", Placeholder: `say "hi"`})
	testsupport.AssertContains(t, got, `placeholder="say &#34;hi&#34;"`)

	area := form.DivTextArea("Notes", "Notes", "", nil, FieldOptions{Placeholder: `<b>"x"</b>`})
	testsupport.AssertContains(t, area, `placeholder="&lt;b&gt;&#34;x&#34;&lt;/b&gt;"`)
}

func TestInput_PrefixSuffixAndDataList(t *testing.T) {
	form := newTestForm(t)
	got := form.Input(InputSpec{
		Type:       "search",
		Name:       "City",
		Attributes: attrs.Set{"class": "wide", "prefix": "In", "suffix": "!"},
		DataList:   []string{"Austin", "Boston"},
	})
	testsupport.AssertContains(t, got,
		`<span class="wide">In</span><input type="search"`,
		`list="datalist_city"`,
		`/><span class="wide">!</span>`,
		`<datalist id="datalist_city"><option value="Austin"><option value="Boston"></datalist>`,
	)
	testsupport.AssertNotContains(t, got, `prefix=`, `suffix=`)
}

func TestForm_UniqueIDsShareOneCounter(t *testing.T) {
	form := newTestForm(t, WithUniqueIDs(true))
	first := form.InputText("City", "", nil)
	second := form.InputText("City", "", nil)
	hidden := form.Hidden("Token", "t", false)

	testsupport.AssertContains(t, first, `id="city_1"`)
	testsupport.AssertContains(t, second, `id="city_2"`)
	testsupport.AssertContains(t, hidden, `id="token_3"`, `name="Token"`)

	other := newTestBuilder(t, WithUniqueIDs(true)).NewForm(testsupport.Context())
	testsupport.AssertContains(t, other.InputText("City", "", nil), `id="city_1"`)
}

func TestForm_PostArrayScoping(t *testing.T) {
	form := newTestForm(t)
	inner := form.WithPostArray(postname.Encrypt, func() string {
		return form.InputText("SSN", "", nil)
	})
	testsupport.AssertContains(t, inner, `name="Encrypt[SSN]"`)
	if form.PostArray() != postname.Default {
		t.Fatalf("post array not restored: %q", form.PostArray())
	}

	form.SetPostArray("")
	testsupport.AssertContains(t, form.InputText("SSN", "", nil), `name="SSN"`)

	bare := newTestForm(t, WithPostArray(""))
	testsupport.AssertContains(t, bare.Hidden("Id", "7", true), `name="Id"`)
}

func TestForm_IncludeAttributesApplyEverywhere(t *testing.T) {
	form := newTestForm(t, WithIncludeAttributes(attrs.Set{"readonly": "readonly", "class": "locked"}))
	got := form.DivInputText("Name", "Name", "", attrs.Set{"class": "wide"}, FieldOptions{})
	testsupport.AssertContains(t, got, `class="wide locked"`, `readonly="readonly"`)
}

func TestTypedInputs(t *testing.T) {
	form := newTestForm(t)

	cases := []struct {
		name string
		got  string
		want []string
	}{
		{"number defaults to zero", form.DivInputNumber("Qty", "Qty", "", nil, FieldOptions{}), []string{`type="number"`, `value="0"`}},
		{"rate", form.DivInputRate("Rate", "Rate", "12", nil, FieldOptions{}), []string{`<span>$</span>`, `max="999"`, `min="0"`, `step="1"`}},
		{"tel", form.DivInputTel("Phone", "Phone", "", nil, FieldOptions{}), []string{`type="tel"`, `class="phone_number"`, `maxlength="12"`}},
		{"email", form.DivInputEmail("Email", "Email", "a@b.co", nil, FieldOptions{}), []string{`class="email"`, `style="min-width:6ch"`}},
		{"date default today", form.DivInputDate("Start", "Start", "", nil, DateOptions{}), []string{`value="2024-03-05"`, `class="date"`}},
		{"zero date", form.DivInputDate("Start", "Start", "0000-00-00", nil, DateOptions{}), []string{`value="2024-03-05"`}},
		{"prior only", form.DivInputDate("Born", "Born", "2001-02-03", nil, DateOptions{PriorOnly: true}), []string{`value="2001-02-03"`, `max="2024-03-05"`, `class="prior_date"`}},
		{"start blank", form.DivInputDate("End", "End", "", nil, DateOptions{StartBlank: true}), []string{`value=""`}},
		{"datetime", form.DivInputDateTime("At", "At", "2023-07-08 09:10:11", nil, FieldOptions{}), []string{`type="datetime-local"`, `value="2023-07-08T09:10"`}},
		{"time", form.DivInputTime("At", "At", "", nil, FieldOptions{}), []string{`type="time"`, `value="14:30"`, `class="time"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testsupport.AssertContains(t, tc.got, tc.want...)
		})
	}
}

func TestDivInputEncrypted(t *testing.T) {
	decrypter := &testsupport.StubDecrypter{Values: map[string]string{"c1pher": "secret"}}
	form := newTestForm(t, WithDecrypter(decrypter))

	got := form.DivInputEncrypted("SSN", "SSN", "c1pher", attrs.Set{"readonly": "readonly"}, FieldOptions{})
	testsupport.AssertContains(t, got,
		`type="password"`,
		`name="Encrypt[SSN]"`,
		`value="secret"`,
		`autocomplete="off"`,
		`onfocus="changeEncrypted(this, 'text');"`,
		`onclick="toggleEncrypted(this, 's_sn');">Reveal</button>`,
		"function toggleEncrypted",
	)
	if form.PostArray() != postname.Default {
		t.Fatalf("post array leaked: %q", form.PostArray())
	}

	again := form.DivInputPassword("Pin", "Pin", "", nil, FieldOptions{})
	testsupport.AssertContains(t, again, `autocomplete="new-password"`, `class="password"`)
	testsupport.AssertNotContains(t, again, "<script>", "Reveal")
}

func TestDivInputEncrypted_DecryptFailure(t *testing.T) {
	var logs bytes.Buffer
	decrypter := &testsupport.StubDecrypter{Err: errors.New("bad key")}
	form := newTestForm(t,
		WithDecrypter(decrypter),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	got := form.DivInputEncrypted("SSN", "SSN", "zzz", nil, FieldOptions{})
	testsupport.AssertContains(t, got, `value=""`)
	if !strings.Contains(logs.String(), "bad key") {
		t.Fatalf("expected decrypt failure to be logged, got %q", logs.String())
	}
}

func TestDivInputFile(t *testing.T) {
	form := newTestForm(t, WithFileLinker(testsupport.StubFileLinker{}))
	got := form.DivInputFile(FileSpec{
		Label:              "Resume",
		Name:               "Resume",
		FileID:             42,
		Attributes:         attrs.Set{"class": "required", "readonly": "readonly"},
		Previous:           FileArchive,
		ArchiveDescription: "old",
	})
	testsupport.AssertContains(t, got,
		`<div class="file_upload_wrapper read_only">`,
		`<input type="file" id="file_1" name="Resume"`,
		`accept=".pdf,.jpg,.png"`,
		`disabled="disabled"`,
		`onchange="formSelectFile('1')"`,
		`placeholder="Drag 1 file here"`,
		`/test/files/42`,
		`name="ArchiveFile[Resume]" value="42"`,
		`name="ArchiveDesc[Resume]" value="old"`,
	)
	testsupport.AssertNotContains(t, got, `class="required"`)

	multi := form.DivInputFile(FileSpec{Name: "Docs", FileID: -1, Attributes: attrs.Set{"multiple": "multiple"}})
	testsupport.AssertContains(t, multi, `name="Docs[]"`, `placeholder="Drag files here"`, `id="file_4"`)
	testsupport.AssertNotContains(t, multi, "PriorFile", "View File")
}

func TestSelect(t *testing.T) {
	form := newTestForm(t)
	opts := []options.Option{{Value: "A", Label: "Alpha"}, {Value: "B", Label: "Beta"}, {Value: "C", Label: "C&D"}}

	single := form.Select(SelectSpec{Name: "Pick", Value: "B", Options: opts})
	testsupport.AssertContains(t, single,
		`<select id="pick" name="FieldValues[Pick]">`,
		`<option value="A">Alpha</option>`,
		`<option value="B" selected="selected">Beta</option>`,
		`<option value="C">C&amp;D</option>`,
	)

	multi := form.DivSelect("Pick", SelectSpec{
		Name: "Tags", Value: "A,C", Options: opts,
		Attributes: attrs.Set{"multiple": "multiple"},
	}, FieldOptions{})
	testsupport.AssertContains(t, multi,
		`name="Multiple[Tags][]"`,
		`<option value="A" selected="selected">`,
		`<option value="C" selected="selected">`,
		`type="hidden"`,
	)
	if strings.Index(multi, `type="hidden"`) > strings.Index(multi, "<select") {
		t.Fatalf("clearing hidden field must precede the select:\n%s", multi)
	}
}

func TestSelectRows(t *testing.T) {
	form := newTestForm(t)
	rows := options.Rows{{"id": "1", "name": "One"}, {"id": "2", "name": "Two"}}
	got := form.SelectRows(SelectSpec{Name: "N", Value: "2"}, rows, "id", "name")
	testsupport.AssertContains(t, got, `<option value="1">One</option>`, `<option value="2" selected="selected">Two</option>`)
}

func TestCheckbox_ClearsOncePerName(t *testing.T) {
	form := newTestForm(t)
	first := form.Checkbox(CheckSpec{Label: "Red", Name: "Colors", Value: "R", Checked: true})
	second := form.Checkbox(CheckSpec{Label: "Blue", Name: "Colors", Value: "B"})

	testsupport.AssertContains(t, first,
		`type="hidden"`,
		`name="Multiple[Colors][]" value=""`,
		`<input type="checkbox" id="colors_r" name="Multiple[Colors][]" value="R" checked="checked"/>`,
		`<label for="colors_r" style="min-width:7ch;">Red</label>`,
	)
	testsupport.AssertNotContains(t, second, `type="hidden"`, "checked=")

	group := form.DivCheckbox("Colors", []string{first, second}, nil, "")
	testsupport.AssertContains(t, group, `<div class="checkbox_div">`, "<fieldset><legend", "<label>Colors:</label>")
}

func TestRadioGroup(t *testing.T) {
	form := newTestForm(t)
	yes := form.Radio(CheckSpec{Label: "Yes", ID: "opt_yes", Name: "Opt", Value: "Y", Checked: true})
	no := form.Radio(CheckSpec{Label: "No", ID: "opt_no", Name: "Opt", Value: "N"})
	group := form.DivRadio("Opt", []string{yes, no}, attrs.Set{"class": "required"}, "Pick one")
	testsupport.AssertContains(t, group,
		`<div class="required radio_div">`,
		`<label class="label_required">Opt:`,
		`id="opt_yes" name="FieldValues[Opt]" value="Y" checked="checked"`,
		`tooltip-wrap`,
	)
}

func TestTextElements(t *testing.T) {
	form := newTestForm(t)

	area := form.DivTextArea("What", "Why", "<b>When</b>", nil, FieldOptions{Placeholder: "Say"})
	testsupport.AssertContains(t, area,
		`<label for="why">What:</label>`,
		`<textarea id="why" placeholder="Say" name="FieldValues[Why]">&lt;b&gt;When&lt;/b&gt;</textarea>`,
	)

	if got := form.TextDisplay("note", "Note", "", nil); got != "" {
		t.Fatalf("empty text display should render nothing, got %q", got)
	}
	testsupport.AssertContains(t, form.TextDisplay("note", "Note", "hi", nil),
		`<div id="note" name="Text"><label style="font-weight:bold">Note:</label>hi</div>`)

	testsupport.AssertContains(t, form.Header(2, "Title", nil), `<h2 id="h2">Title</h2>`)
	testsupport.AssertContains(t, form.Header(9, "Big", nil), "<h6")

	got := form.UL([]string{"a", "b"}, attrs.Set{"class": "x", "prefix": "-"})
	if got != `<ul class="x"><li><span class="x">-</span>a</li><li><span class="x">-</span>b</li></ul>` {
		t.Fatalf("unexpected list %q", got)
	}
}

func TestComposites_InvalidSizesRenderNothing(t *testing.T) {
	var logs bytes.Buffer
	form := newTestForm(t, WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	one := []FieldValue{{Name: "A"}}
	five := []FieldValue{{}, {}, {}, {}, {}}

	cases := map[string]string{
		"name":     form.DivName(one, nil),
		"city":     form.DivCityStateZip(one, nil),
		"phone":    form.DivPhone("Phone", one, nil, ""),
		"verify":   form.DivVerify(one, nil, "", Actor{}),
		"obsolete": form.DivObsolete(five, nil, "", Actor{}),
		"address":  form.DivAddress("Hospital", five, nil, PlaceHospital),
		"school":   form.DivAddress("School", five, nil, PlaceSchool),
	}
	for name, got := range cases {
		if got != "" {
			t.Errorf("%s: expected empty output, got %q", name, got)
		}
	}
	if !strings.Contains(logs.String(), "invalid field values") {
		t.Fatalf("expected debug log, got %q", logs.String())
	}
}

func TestDivName(t *testing.T) {
	form := newTestForm(t)
	got := form.DivName([]FieldValue{
		{Name: "FirstName", Value: "Ada"},
		{Name: "MiddleName"},
		{Name: "LastName", Value: "Lovelace"},
	}, attrs.Set{"class": "required"})
	testsupport.AssertContains(t, got,
		`<div class="user_name">`,
		`<label for="first_name_1" class="label_required">First, Middle, Last Name:</label>`,
		`id="first_name_1" name="FieldValues[FirstName]" value="Ada" aria-label="First Name" class="required"`,
		`placeholder="Middle Name" id="middle_name_1" name="FieldValues[MiddleName]" value="" aria-label="Middle Name"/>`,
		`id="last_name_1"`,
	)
}

func TestDivCityStateZip_DefaultState(t *testing.T) {
	form := newTestForm(t,
		WithOptionList("state", []options.Option{{Value: "CA", Label: "California"}, {Value: "TX", Label: "Texas"}}),
		WithDefaultState("TX"),
	)
	got := form.DivCityStateZip([]FieldValue{
		{Name: "City", Value: "Austin"},
		{Name: "State", Value: "-1"},
		{Name: "Zip", Value: "78701"},
	}, nil)
	testsupport.AssertContains(t, got,
		`<div class="user_city_state_zip">`,
		`<label>City, State, Zip Code:</label>`,
		`id="city_1"`,
		`<select id="state_1" name="FieldValues[State]" aria-label="State">`,
		`<option value="-1">-- State --</option>`,
		`<option value="TX" selected="selected">Texas</option>`,
		`id="zip_code_1"`,
	)
}

func TestDivAddress_StreetWithLocationRequired(t *testing.T) {
	form := newTestForm(t,
		WithOptionList("state", []options.Option{{Value: "CA", Label: "California"}, {Value: "TX", Label: "Texas"}}),
		WithDefaultState("TX"),
	)
	got := form.DivAddress("Home", []FieldValue{
		{Name: "Address1", Value: "1 Main St"},
		{Name: "Address2"},
		{Name: "City", Value: "Austin"},
		{Name: "State"},
		{Name: "Zip", Value: "78701"},
	}, attrs.Set{"location": "required"}, "")
	testsupport.AssertContains(t, got,
		`<div class="user_address">`,
		`<label for="address1_1">Address:</label>`,
		`placeholder="Address 1" id="address1_1" name="FieldValues[Address1]" value="1 Main St" aria-label="Address 1"`,
		`id="address2_1"`,
		`<label class="label_required">City, State, Zip Code:</label>`,
		`id="city_1"`,
		`<select id="state_1" name="FieldValues[State]" aria-label="State" class="required">`,
		`<option value="TX" selected="selected">Texas</option>`,
		`id="zip_code_1"`,
	)
	testsupport.AssertNotContains(t, got, "location=", "places_")
	if strings.Count(got, `class="required"`) != 3 {
		t.Fatalf("expected only city, state and zip required:\n%s", got)
	}
}

func TestDivAddress_SchoolLayout(t *testing.T) {
	form := newTestForm(t)
	got := form.DivAddress("School", []FieldValue{
		{Name: "SchoolName", Value: "Lincoln"},
		{Name: "City"},
		{Name: "State", Value: "CA"},
		{Name: "Zip"},
	}, nil, PlaceSchool)
	testsupport.AssertContains(t, got,
		`<label for="school_name">School:</label>`,
		`name="FieldValues[SchoolName]" value="Lincoln"`,
		`<div class="user_address">`+"\n\n</div>",
		`class="places_1"`,
	)
	testsupport.AssertNotContains(t, got, "address1_", "address2_")
}

func TestDivAddress_EstablishmentSixFields(t *testing.T) {
	form := newTestForm(t)
	fields := []FieldValue{{Name: "Name"}, {Name: "Street1"}, {Name: "Street2"}, {Name: "City"}, {Name: "State"}, {Name: "Zip"}}
	got := form.DivAddress("Clinic", fields, nil, PlaceEstablishment)
	testsupport.AssertContains(t, got,
		`>Clinic:</label>`,
		`name="FieldValues[Street1]"`,
		`name="FieldValues[Street2]"`,
		`name="FieldValues[Zip]"`,
	)
	if got := form.DivAddress("Clinic", fields[:5], nil, PlaceEstablishment); got != "" {
		t.Fatalf("expected five establishment fields to render nothing, got %q", got)
	}
}

func TestDivTextAreaNote(t *testing.T) {
	form := newTestForm(t)
	got := form.DivTextAreaNote("Notes", "Notes", "a<b", attrs.Set{"class": "wide", "readonly": "readonly"}, "")
	testsupport.AssertContains(t, got,
		`<div class="wide"`,
		`<label for="notes" style="float:left;width: 30px;">Notes:</label>`,
		`<textarea id="notes" name="FieldValues[Notes]" class="wide" onblur="autoUpdate('generic_form_1');">a&lt;b</textarea>`,
	)

	got = form.DivTextAreaNote("", "Memo", "", nil, "case_form")
	testsupport.AssertContains(t, got, `onblur="autoUpdate('case_form');"`, `style="float:left;width: 30px;"></label>`)
}

func TestDivPhone(t *testing.T) {
	form := newTestForm(t, WithOptionList("phone", []options.Option{{Value: "Cell", Label: "Cell"}}))
	got := form.DivPhone("Primary Phone", []FieldValue{
		{Name: "PhoneDesc", Value: "Cell"},
		{Name: "PhoneNo", Value: "555-555-0000"},
		{Name: "PhoneExt"},
	}, nil, "")
	testsupport.AssertContains(t, got,
		`<div class="user_phone">`,
		`<label for="phone_no_1">Primary Phone:</label>`,
		`<select id="phone_desc_1"`,
		`placeholder="555-555-1212" id="phone_no_1"`,
		`class="phone_number" maxlength="12"`,
		`placeholder="Ext." id="phone_ext_1"`,
	)
}

func TestDivVerify(t *testing.T) {
	fields := []FieldValue{
		{Name: "VerifiedAt"},
		{Name: "VerifiedBy"},
		{Name: "DocID", Value: "9"},
		{Name: "VerifiedName"},
	}
	actor := Actor{UserAccountID: "77", Privileged: true, CanAct: true}

	form := newTestForm(t, WithFileLinker(testsupport.StubFileLinker{}))
	pending := form.DivVerify(fields, nil, `<button>Verify</button>`, actor)
	testsupport.AssertContains(t, pending,
		"<h3>Verify Information</h3>",
		"INSTRUCTIONS",
		"Document 1</button>",
		"<button>Verify</button>",
		`name="Verify[VerificationMsg]"`,
		`name="Verify[VerifiedAt]" value="2024-03-05 14:30:00"`,
		`name="Verify[VerifiedBy]" value="77"`,
	)
	if form.PostArray() != postname.Default {
		t.Fatalf("post array leaked: %q", form.PostArray())
	}

	viewer := form.DivVerify(fields, nil, `<button>Verify</button>`, Actor{})
	testsupport.AssertContains(t, viewer, "This document has not been verified.")
	testsupport.AssertNotContains(t, viewer, "<button>Verify</button>")

	fields[0].Value = "2024-01-02 15:04:05"
	fields[3].Value = "Grace"
	done := form.DivVerify(fields, nil, "", actor)
	testsupport.AssertContains(t, done,
		`value="01/02/2024 03:04 PM By Grace"`,
		`name="Verify[VerifiedAt]" value="NULL"`,
		`tooltip-wrap`,
	)
}

func TestDivObsolete(t *testing.T) {
	actor := Actor{UserAccountID: "5", Privileged: true, CanAct: true}
	form := newTestForm(t)
	button := `<button type="button">Obsolete</button>`

	current := form.DivObsolete([]FieldValue{
		{Name: "IsObsolete", Value: "N"}, {Name: "ObsoleteAt"}, {Name: "ObsoleteBy"}, {Name: "ObsoleteName"},
	}, nil, button, actor)
	testsupport.AssertContains(t, current,
		"Information is not obsolete.",
		`name="Obsolete[IsObsolete]" value="Y"`,
		`name="Obsolete[ObsoleteAt]" value="2024-03-05"`,
	)

	old := form.DivObsolete([]FieldValue{
		{Name: "IsObsolete", Value: "Y"}, {Name: "ObsoleteAt", Value: "2024-01-02"}, {Name: "ObsoleteBy", Value: "1"}, {Name: "ObsoleteName", Value: "Ann"},
	}, nil, button, actor)
	testsupport.AssertContains(t, old,
		"Information is obsolete: 01/02/2024 12:00 AM By Ann.",
		">Restore</button>",
		`value="N"`,
	)

	if got := form.DivObsolete([]FieldValue{{Value: "N"}, {}, {}, {}}, nil, button, Actor{}); got != "" {
		t.Fatalf("unprivileged actor should see nothing, got %q", got)
	}
}

func TestButtons(t *testing.T) {
	form := newTestForm(t, WithDebugAjax(true))
	testsupport.AssertContains(t, form.AjaxButton("Save", "Save", "f1", nil, ""),
		`<button type="button" name="Save" value="Save" onclick="formSubmit(this, 'f1', 'PARENT');">Save</button>`,
		`<button type="submit" name="PostButton" value="Save">Submit Save</button>`,
	)
	testsupport.AssertContains(t, form.NavButton("Next", "f1", nil, "main"), `<div class="navigation">`, `name="AjaxSave"`, `'main'`)
	testsupport.AssertContains(t, form.SubmitNew("Add", "f1", "/new", nil), `formSubmitNew(this, 'f1', '/new');`)
	testsupport.AssertContains(t, form.SubmitDelete("Del", "f1", "/del", nil), `name="AjaxDelete"`, `formSubmitDelete(this, 'f1', '/del');`)
	testsupport.AssertContains(t, form.FormClose("", nil), `onclick="formClose();" class="close">Close</button>`)
	wide := form.FormClose("Done", attrs.Set{"class": "wide"})
	testsupport.AssertContains(t, wide, `class="wide close">Done</button>`)
	if n := strings.Count(wide, "class="); n != 1 {
		t.Fatalf("expected caller class merged into one attribute, got %q", wide)
	}
	testsupport.AssertContains(t, form.DivLink("Docs", "Open", "/docs", nil), `<label style="padding-top: 0px;">Docs:</label>`, `<a href="/docs">Open</a>`)
	testsupport.AssertContains(t, form.DivOnClick("", "Run", "go()", nil), `<a onclick="go()">Run</a>`)
	testsupport.AssertContains(t, form.PageButton("Edit", "Edit Row", "open()", ""), `id="AjaxButtonEditRowEdit1"`)

	quiet := newTestForm(t)
	testsupport.AssertNotContains(t, quiet.AjaxButton("Save", "Save", "f1", nil, ""), "PostButton")
}

func TestSpanMore(t *testing.T) {
	form := newTestForm(t)
	if got := form.SpanMore("short", 20); got != "short" {
		t.Fatalf("short content should pass through, got %q", got)
	}
	content := strings.Repeat("word ", 20)
	got := form.SpanMore(content, 30)
	testsupport.AssertContains(t, got, `id="less_1"`, `id="more_1"`, "(More...)", "(Less)")
	if !strings.HasPrefix(got, "word word word word word") {
		t.Fatalf("unexpected visible content %q", got)
	}

	accented := form.SpanMore(strings.Repeat("é", 20), 5)
	if !utf8.ValidString(accented) {
		t.Fatalf("cut split a rune: %q", accented)
	}
	if !strings.HasPrefix(accented, "éé\n<span") {
		t.Fatalf("expected two whole runes before the toggle, got %q", accented)
	}
}

func TestMessages(t *testing.T) {
	if got := ControllerMessages("Saved", ""); got != `<p class="success">Saved</p>` {
		t.Fatalf("unexpected success message %q", got)
	}
	if got := ControllerMessages("", "Failed"); got != `<p class="error">Failed</p>` {
		t.Fatalf("unexpected error message %q", got)
	}
	form := newTestForm(t)
	testsupport.AssertContains(t, form.DivMessage("Status", "Active", ""), "<label>Status:</label>", `padding-top:7px;">Active</p>`)
	testsupport.AssertContains(t, form.InlineMessage("By", "Ann"), "By:</label>\nAnn<br />")
}

func TestPage(t *testing.T) {
	form := newTestForm(t, WithIncludeAttributes(attrs.Set{"readonly": "readonly"}))
	got := form.Page("edit_form", "Edit", "<p>body</p>", nil)
	testsupport.AssertContains(t, got, `<form id="edit_form" name="edit_form" method="post">`, "<h2>Edit</h2>", "<p>body</p>\n</form>")
	testsupport.AssertNotContains(t, got, "readonly")
}
