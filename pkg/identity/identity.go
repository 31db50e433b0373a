// Package identity derives DOM identifiers for rendered form controls.
package identity

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-formhtml/pkg/attrs"
)

var nameCleaner = strings.NewReplacer("'", "", ".", "", "]", "", "[", "_")

// FromName transliterates a logical field name into a snake_case element id.
// An underscore is inserted before each run of uppercase letters or digits
// that does not start the name or follow an underscore.
func FromName(name string) string {
	runes := []rune(nameCleaner.Replace(name))
	var b strings.Builder
	b.Grow(len(runes) + 4)
	for i, r := range runes {
		if i > 0 && startsRun(runes, i) && runes[i-1] != '_' {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// An uppercase run may begin at index 1 even when index 0 is uppercase since
// the leading character never opens a run.
func startsRun(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	switch {
	case isUpper(r):
		return !isUpper(prev) || i == 1
	case isDigit(r):
		return !isDigit(prev)
	default:
		return false
	}
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Resolver resolves element ids and, when Unique is set, appends a counter
// suffix so repeated renders of a field on one page never collide. The
// counter lives as long as the resolver and is never reset.
type Resolver struct {
	Unique bool
	seq    int
}

// NewResolver constructs a resolver.
func NewResolver(unique bool) *Resolver {
	return &Resolver{Unique: unique}
}

// Resolve returns the element id for fieldName together with a copy of set
// that no longer carries an explicit id.
func (r *Resolver) Resolve(fieldName string, set attrs.Set) (string, attrs.Set) {
	out := set.Clone()
	id := out.Take(attrs.KeyID)
	if id == "" {
		id = FromName(fieldName)
	}
	if r != nil && r.Unique {
		id = id + "_" + strconv.Itoa(r.Next())
	}
	return id, out
}

// Next advances the counter and returns the new value.
func (r *Resolver) Next() int {
	r.seq++
	return r.seq
}

// Current reports the last value handed out by Next.
func (r *Resolver) Current() int {
	return r.seq
}
