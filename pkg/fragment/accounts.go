package fragment

import (
	"strconv"
	"strings"
	"time"
)

// legacyDeactivationCutoff separates deactivations recorded by the first
// account system (V1) from the current one (V2).
var legacyDeactivationCutoff = time.Date(2024, time.April, 25, 0, 0, 1, 0, time.UTC)

// ActivatedInfo renders who activated and deactivated an account. A
// deactivation before the V2 cutover may have no user; later ones show only
// when a user is recorded.
func (f *Form) ActivatedInfo(activatedBy, activatedAt, deactivatedBy, deactivatedAt, method string) string {
	var lines []string
	if activatedBy != "" {
		lines = append(lines, "Activated by "+f.escape(activatedBy)+" on "+displayTime(activatedAt)+"<br />")
	}

	version := "V2"
	if at, ok := parseTime(deactivatedAt); ok && at.Before(legacyDeactivationCutoff) {
		version = "V1"
	}
	switch {
	case deactivatedBy != "":
		lines = append(lines, "Deactivated "+version+":"+f.escape(method)+" by "+f.escape(deactivatedBy)+" on "+displayTime(deactivatedAt))
	case version == "V1":
		lines = append(lines, "Deactivated "+version+":"+f.escape(method)+" on "+displayTime(deactivatedAt))
	}

	return `<div class="activated_info">` + "\n" + strings.Join(lines, "\n") + "\n</div>"
}

func displayTime(value string) string {
	if parsed, ok := parseTime(value); ok {
		return parsed.Format(displayLayout)
	}
	return value
}

// Phone is one phone entry on an account contact card.
type Phone struct {
	Description string
	Number      string
	Ext         string
}

func (p Phone) line() string {
	return strings.TrimSpace(p.Description + ": " + p.Number + " " + p.Ext)
}

// AccountContact is the contact card of the account a user account select
// currently points at.
type AccountContact struct {
	Title       string
	PrimaryRole int
	// SecondaryRole is -1 when the account has none.
	SecondaryRole   int
	PrimaryPhone    Phone
	AdditionalPhone Phone
	Email           string
}

// DivSelectUserAccount renders a labelled user account select. A non-nil
// contact adds a hidden contact card, with roles named through the builder's
// RoleLookup.
func (f *Form) DivSelectUserAccount(label string, spec SelectSpec, contact *AccountContact, opts FieldOptions) string {
	out := f.DivSelect(label, spec, opts)
	if out == "" || contact == nil {
		return out
	}

	lines := []string{
		"Title: " + f.escape(contact.Title),
		"Primary Role: " + f.escape(f.roleName(contact.PrimaryRole)),
	}
	if contact.SecondaryRole > -1 {
		lines = append(lines, "Secondary Role: "+f.escape(f.roleName(contact.SecondaryRole)))
	}
	lines = append(lines, f.escape(contact.PrimaryPhone.line()))
	if contact.AdditionalPhone.Description != "" {
		lines = append(lines, f.escape(contact.AdditionalPhone.line()))
	}
	lines = append(lines, f.escape(contact.Email))

	return out + "\n" + `<div class="user_account_contact" style="display:none;">` + "\n" +
		strings.Join(lines, "\n<br />") + "\n</div>"
}

func (f *Form) roleName(id int) string {
	if f.b.cfg.roles == nil {
		return strconv.Itoa(id)
	}
	return f.b.cfg.roles.RoleName(id)
}
