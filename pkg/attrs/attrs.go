package attrs

import (
	"fmt"
	"slices"
	"strings"
)

// Recognised keys carrying merge or extraction semantics.
const (
	KeyClass    = "class"
	KeyStyle    = "style"
	KeyOnChange = "onchange"
	KeyID       = "id"
	KeyPrefix   = "prefix"
	KeySuffix   = "suffix"
)

// Set is a typed attribute bag keyed by attribute name.
type Set map[string]string

// Clone returns a copy of the set. A nil set clones to an empty, writable set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// Has reports whether key is present, regardless of its value.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Get returns the value for key, or "" when absent.
func (s Set) Get(key string) string {
	return s[key]
}

// Take removes key from the set and returns its value.
func (s Set) Take(key string) string {
	value := s[key]
	delete(s, key)
	return value
}

// With returns a copy of the set with key set to value.
func (s Set) With(key, value string) Set {
	out := s.Clone()
	out[key] = value
	return out
}

// Without returns a copy of the set with the listed keys removed.
func (s Set) Without(keys ...string) Set {
	out := s.Clone()
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// AddClass appends class to the class attribute, space separated.
func (s Set) AddClass(class string) Set {
	return s.appendValue(KeyClass, class, " ")
}

// AddStyle appends a declaration to the style attribute.
func (s Set) AddStyle(style string) Set {
	return s.appendValue(KeyStyle, style, ";")
}

// AddOnChange appends a handler to onchange.
func (s Set) AddOnChange(handler string) Set {
	return s.appendValue(KeyOnChange, handler, ";")
}

// RemoveClass drops class from the class attribute. The attribute is removed
// entirely when nothing remains.
func (s Set) RemoveClass(class string) Set {
	out := s.Clone()
	current, ok := out[KeyClass]
	if !ok || class == "" {
		return out
	}
	if current == class {
		delete(out, KeyClass)
		return out
	}
	fields := strings.Fields(current)
	kept := fields[:0]
	for _, field := range fields {
		if field != class {
			kept = append(kept, field)
		}
	}
	if len(kept) == 0 {
		delete(out, KeyClass)
		return out
	}
	out[KeyClass] = strings.Join(kept, " ")
	return out
}

// AddMinWidth widens the element to fit a value of the given length.
func (s Set) AddMinWidth(length int) Set {
	if length <= 0 {
		return s.Clone()
	}
	return s.AddStyle(fmt.Sprintf("min-width:%dch", length))
}

// CleanDiv strips element-only keys so the set can decorate a wrapping div.
func (s Set) CleanDiv() Set {
	return s.Without(KeyID, KeyOnChange, "onkeyup", "onkeydown", "onpaste", KeyPrefix, KeySuffix)
}

// Keys returns the attribute names in lexicographic order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (s Set) appendValue(key, value, sep string) Set {
	out := s.Clone()
	value = strings.TrimSpace(value)
	if value == "" {
		return out
	}
	current := strings.TrimSpace(out[key])
	switch {
	case current == "":
		out[key] = value
	case sep == ";":
		out[key] = strings.TrimSuffix(current, ";") + ";" + value
	default:
		out[key] = current + sep + value
	}
	return out
}
