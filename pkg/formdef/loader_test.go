package formdef

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formhtml/pkg/options"
)

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.json": {Data: []byte(`{
  "id": "contact",
  "title": "Contact",
  "fields": [
    {"label": "Name", "name": "Name"},
    {"label": "State", "name": "State", "options": [{"value": "CA", "label": "California"}]}
  ]
}`)},
		"forms/more.yaml": {Data: []byte(`
forms:
  - id: intake
    fields:
      - {kind: header, label: Intake}
      - {label: Notes, name: Notes, format: textarea}
  - id: audit
    profile: locked
    fields:
      - {kind: obsolete, values: [{name: Obsolete}, {name: Date}, {name: UserID}, {name: User}]}
`)},
		"forms/readme.txt": {Data: []byte("not a form")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"audit", "contact", "intake"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	contact, err := store.Lookup("contact")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	want := Definition{
		ID:    "contact",
		Title: "Contact",
		Fields: []Field{
			{Label: "Name", Name: "Name"},
			{Label: "State", Name: "State", Options: []options.Option{{Value: "CA", Label: "California"}}},
		},
		Source: "forms/contact.json",
	}
	if diff := cmp.Diff(want, contact); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	audit, _ := store.Lookup("audit")
	if audit.Profile != "locked" || len(audit.Fields[0].Values) != 4 {
		t.Fatalf("unexpected audit definition: %+v", audit)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate",
			fsys: fstest.MapFS{
				"a.json": {Data: []byte(`{"id": "x", "fields": []}`)},
				"b.yaml": {Data: []byte("id: x\nfields: []\n")},
			},
			want: `duplicate form "x"`,
		},
		{
			name: "missing id",
			fsys: fstest.MapFS{"a.json": {Data: []byte(`{"fields": []}`)}},
			want: "without an id",
		},
		{
			name: "missing name",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("id: x\nfields:\n  - {label: Nameless}\n")}},
			want: "field 0 has no name",
		},
		{
			name: "empty",
			fsys: fstest.MapFS{"a.json": {Data: []byte("  ")}},
			want: "is empty",
		},
		{
			name: "garbage",
			fsys: fstest.MapFS{"a.yaml": {Data: []byte("- just\n- a list\n")}},
			want: "invalid JSON or YAML",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFS(tc.fsys)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestStore_LookupMissing(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if _, err := store.Lookup("nope"); !errors.Is(err, ErrDefinitionNotFound) {
		t.Fatalf("expected ErrDefinitionNotFound, got %v", err)
	}
	store.Add(Definition{ID: "nope"})
	if _, err := store.Lookup("nope"); err != nil {
		t.Fatalf("added definition not found: %v", err)
	}
}
