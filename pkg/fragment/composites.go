package fragment

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/postname"
)

// FieldValue pairs a field name with its current value. Composites take an
// ordered slice of them.
type FieldValue struct {
	Name  string
	Value string
}

// Actor is the user a verify or obsolete block is rendered for.
type Actor struct {
	UserAccountID string
	// Privileged users see the verify instructions and may mark records
	// obsolete.
	Privileged bool
	// CanAct is false when the user has no permission on the record.
	CanAct bool
}

const (
	displayLayout   = "01/02/2006 03:04 PM"
	submittedLayout = "2006-01-02 15:04:05"
	statePrompt     = "-- State --"
)

// DivName renders first and last name inputs, with a middle name between
// them when three fields are given. The middle name is never required.
func (f *Form) DivName(fields []FieldValue, set attrs.Set) string {
	if len(fields) != 2 && len(fields) != 3 {
		return f.logInvalid("DivName", len(fields), "2 or 3")
	}
	n := strconv.Itoa(f.ids.Next())
	_, flags := f.normalize(set)

	firstID := "first_name_" + n
	inputs := []string{f.compositeInput(firstID, fields[0], set, "First Name")}
	label := "First, Last Name:"
	if len(fields) == 3 {
		label = "First, Middle, Last Name:"
		inputs = append(inputs, f.compositeInput("middle_name_"+n, fields[1], set.RemoveClass("required"), "Middle Name"))
	}
	inputs = append(inputs, f.compositeInput("last_name_"+n, fields[len(fields)-1], set, "Last Name"))

	return `<div class="user_name">` + "\n" +
		`<label for="` + firstID + `"` + flags.LabelAttributes(f.requiredLabelClass()) + `>` + label + "</label>\n" +
		strings.Join(inputs, "\n") + "\n</div>"
}

// DivCityStateZip renders city, state and, for three fields, zip code. An
// empty or "-1" state falls back to the builder's default state.
func (f *Form) DivCityStateZip(fields []FieldValue, set attrs.Set) string {
	if len(fields) != 2 && len(fields) != 3 {
		return f.logInvalid("DivCityStateZip", len(fields), "2 or 3")
	}
	n := strconv.Itoa(f.ids.Next())
	_, flags := f.normalize(set)

	base := set.Without(attrs.KeyID)
	parts := []string{
		f.compositeInput("city_"+n, fields[0], base.AddMinWidth(len(fields[0].Value)), "City"),
		f.stateSelect("state_"+n, fields[1], base),
	}
	prompt := "City, State"
	if len(fields) == 3 {
		prompt += ", Zip Code"
		parts = append(parts, f.compositeInput("zip_code_"+n, fields[2], base, "Zip Code"))
	}

	return `<div class="user_city_state_zip">` + "\n" +
		`<label` + flags.LabelAttributes(f.requiredLabelClass()) + `>` + prompt + ":</label>\n" +
		strings.Join(parts, "\n") + "\n</div>"
}

func (f *Form) stateSelect(id string, state FieldValue, set attrs.Set) string {
	if state.Value == "" || state.Value == "-1" {
		state.Value = f.b.cfg.defaultState
	}
	return f.selectControl(SelectSpec{
		Name:       state.Name,
		Value:      state.Value,
		Options:    append([]options.Option{{Value: "-1", Label: statePrompt}}, f.b.OptionList("state")...),
		Attributes: set.With("aria-label", "State"),
		ExactID:    id,
	}).html
}

// Address place types select the DivAddress field layout.
const (
	PlaceAddress       = "address"
	PlaceEstablishment = "establishment"
	PlaceHospital      = "hospital"
	PlaceSchool        = "school"
)

// addressLayout holds field positions; -1 marks an unused part.
type addressLayout struct {
	name, address1, address2, city, state, zip int
}

func addressLayoutFor(placeType string, count int) (addressLayout, string, bool) {
	switch placeType {
	case PlaceHospital, PlaceEstablishment:
		switch count {
		case 4:
			return addressLayout{-1, 0, -1, 1, 2, 3}, "", true
		case 6:
			return addressLayout{0, 1, 2, 3, 4, 5}, "", true
		}
		return addressLayout{}, "4 or 6", false
	case PlaceSchool:
		if count == 4 {
			return addressLayout{0, -1, -1, 1, 2, 3}, "", true
		}
		return addressLayout{}, "4", false
	default:
		switch count {
		case 4:
			return addressLayout{-1, 0, -1, 1, 2, 3}, "", true
		case 5:
			return addressLayout{-1, 0, 1, 2, 3, 4}, "", true
		}
		return addressLayout{}, "4 or 5", false
	}
}

// DivAddress renders a street address with city, state and zip code. The
// place type picks the fields:
//
//	address (default)        address 1, [address 2], city, state, zip
//	establishment, hospital  [name], address 1, [address 2], city, state, zip
//	school                   name, city, state, zip
//
// Establishments take 4 or 6 fields; the 6 field form adds both optional
// parts. A "location" attribute containing "required" marks only city, state
// and zip required. A non-empty place type tags the inputs with a
// places_<n> class for address lookup scripts.
func (f *Form) DivAddress(label string, fields []FieldValue, set attrs.Set, placeType string) string {
	layout, want, ok := addressLayoutFor(placeType, len(fields))
	if !ok {
		return f.logInvalid("DivAddress", len(fields), want)
	}
	n := strconv.Itoa(f.ids.Next())

	set = set.Clone()
	location := set
	if strings.Contains(set.Take("location"), "required") {
		location = set.AddClass("required")
	}
	if placeType != "" {
		set = set.AddClass("places_" + n)
		location = location.AddClass("places_" + n)
	}

	var name, street []string
	if layout.name >= 0 {
		field := fields[layout.name]
		name = append(name, f.DivInputText(label, field.Name, field.Value, set, FieldOptions{}))
	}
	if layout.address1 >= 0 {
		field := fields[layout.address1]
		street = append(street, f.DivInputText("Address", field.Name, field.Value,
			set.With(attrs.KeyID, "address1_"+n).With("aria-label", "Address 1"),
			FieldOptions{Placeholder: "Address 1"}))
	}
	if layout.address2 >= 0 {
		field := fields[layout.address2]
		street = append(street, f.DivInputText("", field.Name, field.Value,
			set.RemoveClass("required").With(attrs.KeyID, "address2_"+n).With("aria-label", "Address 2"),
			FieldOptions{Placeholder: "Address 2"}))
	}

	base := location.Without(attrs.KeyID)
	_, flags := f.normalize(base)
	city := fields[layout.city]
	parts := []string{
		f.compositeInput("city_"+n, city, base.AddMinWidth(len(city.Value)), "City"),
		f.stateSelect("state_"+n, fields[layout.state], base),
		f.compositeInput("zip_code_"+n, fields[layout.zip], base, "Zip Code"),
	}

	return "<div>\n" + strings.Join(name, "\n") + "\n</div>\n" +
		`<div class="user_address">` + "\n" + strings.Join(street, "\n") + "\n</div>\n" +
		`<div class="user_city_state_zip">` + "\n" +
		`<label` + flags.LabelAttributes(f.requiredLabelClass()) + `>City, State, Zip Code:</label>` + "\n" +
		strings.Join(parts, "\n") + "\n</div>"
}

// DivPhone renders a phone description select fed by the "phone" option
// list, the number and an extension.
func (f *Form) DivPhone(label string, fields []FieldValue, set attrs.Set, tooltip string) string {
	if len(fields) != 3 {
		return f.logInvalid("DivPhone", len(fields), "3")
	}
	n := strconv.Itoa(f.ids.Next())
	_, flags := f.normalize(set)
	if tooltip != "" {
		tooltip = "\n" + f.Tooltip(tooltip, TooltipOptions{Flags: flags})
	}

	numberID := "phone_no_" + n
	number := f.input(InputSpec{
		Type:        "text",
		Name:        fields[1].Name,
		Value:       fields[1].Value,
		Attributes:  set.AddClass("phone_number").With("maxlength", "12"),
		Placeholder: "555-555-1212",
		ExactID:     numberID,
	}).html
	desc := f.selectControl(SelectSpec{
		Name:       fields[0].Name,
		Value:      fields[0].Value,
		Options:    f.b.OptionList("phone"),
		Attributes: set.With("aria-label", "Phone Description"),
		ExactID:    "phone_desc_" + n,
	}).html
	ext := f.input(InputSpec{
		Type:        "text",
		Name:        fields[2].Name,
		Value:       fields[2].Value,
		Attributes:  attrs.Set{"aria-label": "Phone extension"},
		Placeholder: "Ext.",
		ExactID:     "phone_ext_" + n,
	}).html

	return `<div class="user_phone">` + "\n" +
		`<label for="` + numberID + `"` + flags.LabelAttributes(f.requiredLabelClass()) + `>` + label + ":</label>\n" +
		desc + "\n" + number + "\n" + ext + tooltip + "\n</div>"
}

func (f *Form) compositeInput(id string, field FieldValue, set attrs.Set, placeholder string) string {
	return f.input(InputSpec{
		Type:        "text",
		Name:        field.Name,
		Value:       field.Value,
		Attributes:  set.With("aria-label", placeholder),
		Placeholder: placeholder,
		ExactID:     id,
	}).html
}

// DivVerify renders the verification block for a record. fields are, in
// order: verified date, verifying user id, one or more document file ids and
// the verifying user's name. Hidden fields post under the Verify prefix.
func (f *Form) DivVerify(fields []FieldValue, set attrs.Set, ajaxButton string, actor Actor) string {
	if len(fields) < 4 {
		return f.logInvalid("DivVerify", len(fields), "at least 4")
	}
	date, user, userName := fields[0], fields[1], fields[len(fields)-1]
	docs := fields[2 : len(fields)-1]
	set = set.With("readonly", "readonly").With("disabled", "disabled")

	return f.WithPostArray(postname.Verify, func() string {
		var b strings.Builder
		b.WriteString("<h3>Verify Information</h3>\n")

		if isZeroTime(date.Value) {
			if actor.Privileged {
				b.WriteString("<p><b>INSTRUCTIONS:</b> Save this information. After entering all items, upload the verification documents.  This item can then be verified.</p>\n")
			} else {
				b.WriteString("<p>This document has not been verified.</p>\n")
			}
			b.WriteString(f.viewDocuments(docs))
			if actor.CanAct && actor.Privileged {
				now := f.b.cfg.clock()
				b.WriteString("<div>\n")
				b.WriteString(ajaxButton + "\n")
				b.WriteString(f.DivInput("date", "Verification Date", "VerificationMsg", now.Format(DateLayout), set, FieldOptions{}) + "\n")
				b.WriteString(f.Hidden(date.Name, now.Format(submittedLayout), true) + "\n")
				b.WriteString(f.Hidden(user.Name, actor.UserAccountID, true) + "\n")
				b.WriteString("</div>\n")
				b.WriteString(`<div style="clear:both;"></div>`)
			}
			return strings.TrimRight(b.String(), "\n")
		}

		f.AddTooltip("VerifiedMsg", "Verification is performed by the system administrator.")
		b.WriteString(f.viewDocuments(docs))
		b.WriteString(f.DivInputText("Verified", "VerifiedMsg", byLine(date.Value, userName.Value, ""), set, FieldOptions{}) + "\n")
		b.WriteString(f.Hidden(date.Name, "NULL", true) + "\n")
		b.WriteString(f.Hidden(user.Name, "", true))
		return b.String()
	})
}

func (f *Form) viewDocuments(docs []FieldValue) string {
	if f.b.cfg.files == nil {
		return ""
	}
	var buttons strings.Builder
	count := 0
	for _, doc := range docs {
		id, err := strconv.Atoi(strings.TrimSpace(doc.Value))
		if err != nil || id < 0 {
			continue
		}
		count++
		buttons.WriteString(`<button type="button" style="margin-right: 10px;" onclick="window.open('` +
			f.b.cfg.files.DisplayURL(id) + `', '_blank');">Document ` + strconv.Itoa(count) + `</button>`)
	}
	if count == 0 {
		return ""
	}
	return "<label>View Documents:</label>" + buttons.String() + "\n"
}

// DivObsolete renders the obsolete marker for a record. fields are, in
// order: obsolete flag ("Y" or "N"), date, user id and user name. Only
// privileged actors get the toggle button, whose text turns to Restore on an
// obsolete record.
func (f *Form) DivObsolete(fields []FieldValue, set attrs.Set, ajaxButton string, actor Actor) string {
	if len(fields) != 4 {
		return f.logInvalid("DivObsolete", len(fields), "4")
	}
	flag, date, user, userName := fields[0], fields[1], fields[2], fields[3]
	f.AddTooltip("ObsoleteMsg", "Obsolete records contain information that is no longer valid or necessary.")

	return f.WithPostArray(postname.Obsolete, func() string {
		allowed := actor.Privileged && actor.CanAct
		button := func(next string) string {
			now := f.b.cfg.clock()
			return ajaxButton + "\n" +
				f.Hidden(flag.Name, next, true) + "\n" +
				f.Hidden(date.Name, now.Format(DateLayout), true) + "\n" +
				f.Hidden(user.Name, actor.UserAccountID, true)
		}

		if flag.Value != "Y" {
			if !allowed {
				return ""
			}
			return "<div>\n<p>Information is not obsolete.</p>\n" + button("Y") +
				"\n</div>\n" + `<div style="clear:both;"></div>`
		}

		message := "Information is obsolete."
		if date.Value != "" && userName.Value != "" {
			message = "Information is obsolete: " + byLine(date.Value, userName.Value, ".")
		}
		controls := ""
		if allowed {
			ajaxButton = strings.Replace(ajaxButton, "Obsolete</button>", "Restore</button>", 1)
			controls = "\n" + button("N")
		}
		return `<div style="width:600px;">` + "\n" + message + controls + "\n</div>\n" + `<div style="clear:both;"></div>`
	})
}

// byLine formats "01/02/2006 03:04 PM By name". Unparseable dates are shown
// as given.
func byLine(when, name, end string) string {
	out := when
	if parsed, ok := parseTime(when); ok {
		out = parsed.Format(displayLayout)
	}
	if name != "" {
		out += " By " + name + end
	}
	return out
}
