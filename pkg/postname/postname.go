// Package postname wraps field names in the post-array prefixes the receiving
// controllers use to group submitted values.
package postname

import (
	"errors"
	"strings"
)

// Well-known post-array prefixes.
const (
	Default  = "FieldValues"
	Multiple = "Multiple"
	Encrypt  = "Encrypt"
	Verify   = "Verify"
	Obsolete = "Obsolete"
)

// ErrMalformed reports a post name that cannot be split into prefix and
// segments.
var ErrMalformed = errors.New("postname: malformed post name")

// Resolve wraps fieldName in postArray. Array-style names are flattened into
// bracket segments under the prefix, with Default substituted by Multiple, so
// that Tags[] becomes Multiple[Tags][] and Field[0] becomes
// Multiple[Field][0]. An empty postArray leaves the name untouched.
func Resolve(fieldName, postArray string) string {
	if postArray == "" {
		return fieldName
	}
	if !strings.Contains(fieldName, "[") {
		return postArray + "[" + fieldName + "]"
	}

	prefix := postArray
	if prefix == Default {
		prefix = Multiple
	}
	base, list := strings.CutSuffix(fieldName, "[]")

	var b strings.Builder
	b.WriteString(prefix)
	for _, segment := range Segments(base) {
		b.WriteString("[")
		b.WriteString(segment)
		b.WriteString("]")
	}
	if list {
		b.WriteString("[]")
	}
	return b.String()
}

// Segments splits a bracketed field name into its parts: Row[2][Amount]
// yields Row, 2, Amount and Tags[] yields Tags and "".
func Segments(fieldName string) []string {
	head, rest, found := strings.Cut(fieldName, "[")
	out := []string{head}
	if !found {
		return out
	}
	for _, part := range strings.Split(rest, "[") {
		out = append(out, strings.TrimSuffix(part, "]"))
	}
	return out
}

// Parse splits a post name produced by Resolve back into its prefix and the
// field's segments.
func Parse(postName string) (string, []string, error) {
	open := strings.IndexByte(postName, '[')
	if open <= 0 || !strings.HasSuffix(postName, "]") {
		return "", nil, ErrMalformed
	}
	prefix := postName[:open]
	rest := postName[open:]

	var segments []string
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, ErrMalformed
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, ErrMalformed
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return prefix, segments, nil
}
