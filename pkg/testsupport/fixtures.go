package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ReferenceTime is the fixed instant FixedClock returns by default.
var ReferenceTime = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at. A zero at uses
// ReferenceTime.
func FixedClock(at time.Time) func() time.Time {
	if at.IsZero() {
		at = ReferenceTime
	}
	return func() time.Time { return at }
}

// FixedSuffix returns a random-suffix source that always yields suffix.
func FixedSuffix(suffix string) func() string {
	return func() string { return suffix }
}

// StubDecrypter maps ciphertexts to plaintexts. Unknown values fail with Err,
// or with a generic error when Err is nil.
type StubDecrypter struct {
	Values map[string]string
	Err    error
	Calls  []string
}

// Decrypt implements the builder's Decrypter contract.
func (s *StubDecrypter) Decrypt(_ context.Context, value string) (string, error) {
	s.Calls = append(s.Calls, value)
	if plain, ok := s.Values[value]; ok {
		return plain, nil
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "", errors.New("testsupport: unknown ciphertext")
}

// StubFileLinker produces predictable file URLs.
type StubFileLinker struct {
	BaseURL string
}

// DisplayURL implements the builder's FileLinker contract.
func (s StubFileLinker) DisplayURL(fileID int) string {
	return fmt.Sprintf("%s/files/%d", s.base(), fileID)
}

// DownloadLink implements the builder's FileLinker contract.
func (s StubFileLinker) DownloadLink(fileID int, text string) string {
	return fmt.Sprintf(`<a href="%s/files/%d?download=1">%s</a>`, s.base(), fileID, text)
}

func (s StubFileLinker) base() string {
	if s.BaseURL == "" {
		return "/test"
	}
	return strings.TrimRight(s.BaseURL, "/")
}

// StubRoleLookup names roles from a fixed table.
type StubRoleLookup map[int]string

// RoleName implements the builder's RoleLookup contract.
func (s StubRoleLookup) RoleName(id int) string {
	if name, ok := s[id]; ok {
		return name
	}
	return fmt.Sprintf("role %d", id)
}

// AssertContains fails the test for every fragment missing from got.
func AssertContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// AssertNotContains fails the test for every fragment present in got.
func AssertNotContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(got, fragment) {
			t.Errorf("output unexpectedly contains %q\n--- output ---\n%s", fragment, got)
		}
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
