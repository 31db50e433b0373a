package openapi

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLint(t *testing.T) {
	raw, err := os.ReadFile("testdata/lint.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := Lint(context.Background(), raw, "lint.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	want := []Violation{
		{File: "lint.yaml", Location: "components > schemas > Person > properties.nick", Message: `unsupported hint "widget" (supported: hidden, kind, label, optionList, order, placeholder)`},
		{File: "lint.yaml", Location: "components > schemas > Person > properties.secret", Message: "x-formhtml must be an object, found string"},
		{File: "lint.yaml", Location: "operation > createPerson > requestBody > application/json > properties.kind", Message: `hint "kind" names unknown kind "slider"`},
		{File: "lint.yaml", Location: "operation > createPerson > requestBody > application/json > properties.name", Message: `hint "order" must be a number, found string`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_CleanDocument(t *testing.T) {
	raw, err := os.ReadFile("testdata/contacts.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := Lint(context.Background(), raw, "contacts.yaml")
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestLint_InvalidDocument(t *testing.T) {
	if _, err := Lint(context.Background(), []byte("{"), "bad.json"); err == nil {
		t.Fatalf("expected load error")
	}
}
