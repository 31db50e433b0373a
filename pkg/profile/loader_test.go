package profile

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formhtml/pkg/options"
)

const yamlDoc = `
profiles:
  readonly:
    uniqueIds: true
    includeAttributes:
      readonly: readonly
    requiredLabelClass: is-required
  bare:
    postArray: ""
optionLists:
  state:
    - value: CA
      label: California
    - value: TX
      label: Texas
`

const jsonDoc = `{"profiles": {"encrypted": {"postArray": "Encrypt", "rawValues": true}}}`

func TestLoadFS_ParsesYAMLAndJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles/base.yaml":  {Data: []byte(yamlDoc)},
		"profiles/extra.json": {Data: []byte(jsonDoc)},
		"profiles/README.md":  {Data: []byte("ignored")},
	}
	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"bare", "encrypted", "readonly"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	readonly, err := store.Lookup("readonly")
	if err != nil {
		t.Fatalf("lookup readonly: %v", err)
	}
	if readonly.UniqueIDs == nil || !*readonly.UniqueIDs || readonly.IncludeAttributes["readonly"] != "readonly" {
		t.Fatalf("unexpected readonly profile %+v", readonly)
	}
	if readonly.PostArray != nil {
		t.Fatalf("expected unset post array, got %q", *readonly.PostArray)
	}
	if readonly.Source != "profiles/base.yaml" {
		t.Fatalf("unexpected source %q", readonly.Source)
	}

	bare, _ := store.Lookup("bare")
	if bare.PostArray == nil || *bare.PostArray != "" {
		t.Fatalf("expected explicit empty post array")
	}

	encrypted, _ := store.Lookup("encrypted")
	if encrypted.PostArray == nil || *encrypted.PostArray != "Encrypt" || encrypted.RawValues == nil || !*encrypted.RawValues {
		t.Fatalf("unexpected encrypted profile %+v", encrypted)
	}

	want := []options.Option{{Value: "CA", Label: "California"}, {Value: "TX", Label: "Texas"}}
	if diff := cmp.Diff(want, store.OptionLists()["state"]); diff != "" {
		t.Fatalf("option list mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"a.yaml": {Data: []byte("  ")}},
		"invalid":    {"a.yaml": {Data: []byte("profiles: [")}},
		"duplicate": {
			"a.yaml": {Data: []byte("profiles:\n  x: {}\n")},
			"b.yaml": {Data: []byte("profiles:\n  x: {}\n")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLookup_Missing(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if _, err := store.Lookup("nope"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
