package formdef

import (
	"testing"

	"github.com/goliatone/go-formhtml/pkg/options"
)

func TestRegistry_Resolve(t *testing.T) {
	fileID := 3
	reg := NewRegistry()
	cases := []struct {
		name  string
		field Field
		want  string
	}{
		{name: "explicit kind wins", field: Field{Kind: " Radio ", Options: options.FromValues("a")}, want: KindRadio},
		{name: "options select", field: Field{Name: "State", Options: options.FromValues("CA")}, want: KindSelect},
		{name: "option list select", field: Field{Name: "State", OptionList: "state"}, want: KindSelect},
		{name: "query select", field: Field{Name: "State", Query: &Query{SQL: "SELECT 1"}}, want: KindSelect},
		{name: "hidden beats options", field: Field{Format: "hidden", Options: options.FromValues("x")}, want: KindHidden},
		{name: "file id", field: Field{Name: "Upload", FileID: &fileID}, want: KindFile},
		{name: "rows attribute", field: Field{Name: "Notes", Attributes: map[string]string{"rows": "4"}}, want: KindTextArea},
		{name: "date-time format", field: Field{Name: "At", Format: "date-time"}, want: KindDateTime},
		{name: "date suffix", field: Field{Name: "StartDate"}, want: KindDate},
		{name: "email suffix", field: Field{Name: "WorkEmail"}, want: KindEmail},
		{name: "phone format", field: Field{Name: "Contact", Format: "phone"}, want: KindTel},
		{name: "integer", field: Field{Name: "Count", Format: "int64"}, want: KindNumber},
		{name: "fallback", field: Field{Name: "Title"}, want: KindText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Resolve(tc.field); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRegistry_CustomMatcherPriority(t *testing.T) {
	reg := NewRegistry()
	reg.Register("slider", 90, func(field Field) bool { return field.Format == "range" })
	reg.Register("ignored", 90, func(field Field) bool { return field.Format == "range" })
	reg.Register("", 200, func(Field) bool { return true })

	if got := reg.Resolve(Field{Format: "range", Options: options.FromValues("1")}); got != "slider" {
		t.Fatalf("expected earliest registration at equal priority, got %q", got)
	}
	var nilReg *Registry
	if got := nilReg.Resolve(Field{Name: "StartDate"}); got != KindText {
		t.Fatalf("nil registry should fall back to text, got %q", got)
	}
}
