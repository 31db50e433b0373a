package openapi

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/options"
)

func TestImporter_ContactsDocument(t *testing.T) {
	defs, err := NewImporter().Import(context.Background(), SourceFromFile("testdata/contacts.yaml"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	if diff := cmp.Diff([]string{"createContact", "patch_contacts_id"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	create := defs[0]
	if create.Title != "New contact" || create.Source != "testdata/contacts.yaml" {
		t.Fatalf("unexpected definition header: %+v", create)
	}

	address := "address"
	want := []formdef.Field{
		{Name: "firstName", Label: "First Name", Placeholder: "Ada", Attributes: map[string]string{"class": "required", "maxlength": "40"}},
		{Name: "email", Label: "Email", Format: "email", Tooltip: "Work address"},
		{Kind: formdef.KindRadio, Name: "active", Label: "Active", Options: []options.Option{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}},
		{Kind: formdef.KindHeader, Label: "Address", Level: 3},
		{Name: "city", Label: "Town", PostArray: &address},
		{Name: "age", Label: "Age", Format: "number", Attributes: map[string]string{"min": "0", "max": "130"}},
		{Name: "state", Label: "State", Value: "TX", Options: options.FromValues("CA", "TX")},
		{Kind: formdef.KindCheckbox, Name: "tags", Label: "Tags", Options: options.FromValues("red", "blue")},
		{Name: "token", Label: "Token", Format: "hidden"},
		{Kind: formdef.KindSubmit, Label: "Create"},
	}
	if diff := cmp.Diff(want, create.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	patch := defs[1]
	if patch.Fields[0].Format != "textarea" || patch.Fields[1].Label != "Save" {
		t.Fatalf("unexpected patch fields: %+v", patch.Fields)
	}
}

func TestImporter_ResolvedKinds(t *testing.T) {
	data, err := os.ReadFile("testdata/contacts.yaml")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	defs, err := NewImporter(WithMethods("post")).Parse(context.Background(), data, "contacts.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected only the POST operation, got %d", len(defs))
	}

	reg := formdef.NewRegistry()
	got := map[string]string{}
	for _, field := range defs[0].Fields {
		if field.Name != "" {
			got[field.Name] = reg.Resolve(field)
		}
	}
	want := map[string]string{
		"firstName": formdef.KindText,
		"email":     formdef.KindEmail,
		"active":    formdef.KindRadio,
		"city":      formdef.KindText,
		"age":       formdef.KindNumber,
		"state":     formdef.KindSelect,
		"tags":      formdef.KindCheckbox,
		"token":     formdef.KindHidden,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestImporter_FSSourceAndErrors(t *testing.T) {
	ctx := context.Background()
	noForms := `{"openapi": "3.0.0", "info": {"title": "x", "version": "1"}, "paths": {}}`
	fsys := fstest.MapFS{"api/empty.json": {Data: []byte(noForms)}}

	_, err := NewImporter(WithFileSystem(fsys)).Import(ctx, SourceFromFS("api/empty.json"))
	if !errors.Is(err, ErrNoForms) {
		t.Fatalf("expected ErrNoForms, got %v", err)
	}
	defs, err := NewImporter(WithFileSystem(fsys), WithPartialDocuments(true)).Import(ctx, SourceFromFS("api/empty.json"))
	if err != nil || len(defs) != 0 {
		t.Fatalf("partial import: defs=%v err=%v", defs, err)
	}

	if _, err := NewImporter().Import(ctx, SourceFromFS("api/empty.json")); err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("expected missing filesystem error, got %v", err)
	}
	if _, err := NewImporter().Parse(ctx, []byte("  "), "blank"); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := NewImporter().Parse(ctx, []byte("{not json"), "bad"); err == nil {
		t.Fatalf("expected load error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := NewImporter().Parse(cancelled, []byte(noForms), "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"firstName":  "First Name",
		"zip_code":   "Zip Code",
		"createUser": "Create User",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Fatalf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
