package openapi

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formhtml/pkg/formdef"
)

// Violation is a malformed rendering hint.
type Violation struct {
	File     string `json:"file"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.File, v.Location, v.Message)
}

var hintKinds = map[string]string{
	"kind":        "string",
	"label":       "string",
	"optionList":  "string",
	"placeholder": "string",
	"order":       "number",
	"hidden":      "boolean",
}

// HintKeys lists the keys accepted under ExtensionKey.
func HintKeys() []string {
	keys := make([]string, 0, len(hintKinds))
	for key := range hintKinds {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Lint checks every ExtensionKey object reachable from request bodies and
// component schemas. Violations come back sorted by location.
func Lint(ctx context.Context, raw []byte, location string) ([]Violation, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", location, err)
	}

	l := &linter{file: location, seen: make(map[*openapi3.Schema]bool)}
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if operation == nil || operation.RequestBody == nil || operation.RequestBody.Value == nil {
					continue
				}
				id := operation.OperationID
				if id == "" {
					id = operationID(method, path)
				}
				for mediaType, mt := range operation.RequestBody.Value.Content {
					if mt != nil && mt.Schema != nil {
						l.schema([]string{"operation", id, "requestBody", mediaType}, mt.Schema.Value)
					}
				}
			}
		}
	}
	if doc.Components != nil {
		for name, ref := range doc.Components.Schemas {
			if ref != nil {
				l.schema([]string{"components", "schemas", name}, ref.Value)
			}
		}
	}

	slices.SortFunc(l.out, func(a, b Violation) int {
		if c := strings.Compare(a.Location, b.Location); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return l.out, nil
}

type linter struct {
	file string
	seen map[*openapi3.Schema]bool
	out  []Violation
}

func (l *linter) schema(path []string, s *openapi3.Schema) {
	if s == nil || l.seen[s] {
		return
	}
	l.seen[s] = true

	if raw, ok := s.Extensions[ExtensionKey]; ok {
		l.hints(path, raw)
	}
	for name, ref := range s.Properties {
		if ref != nil {
			l.schema(appendPath(path, "properties."+name), ref.Value)
		}
	}
	if s.Items != nil {
		l.schema(appendPath(path, "items"), s.Items.Value)
	}
}

func (l *linter) hints(path []string, raw any) {
	hints, ok := raw.(map[string]any)
	if !ok {
		l.report(path, "%s must be an object, found %T", ExtensionKey, raw)
		return
	}
	for key, value := range hints {
		want, known := hintKinds[key]
		if !known {
			l.report(path, "unsupported hint %q (supported: %s)", key, strings.Join(HintKeys(), ", "))
			continue
		}
		if got := jsonKind(value); got != want {
			l.report(path, "hint %q must be a %s, found %s", key, want, got)
			continue
		}
		if key == "kind" && !slices.Contains(formdef.Kinds(), strings.ToLower(value.(string))) {
			l.report(path, "hint \"kind\" names unknown kind %q", value)
		}
	}
}

func (l *linter) report(path []string, format string, args ...any) {
	l.out = append(l.out, Violation{
		File:     l.file,
		Location: strings.Join(path, " > "),
		Message:  fmt.Sprintf(format, args...),
	})
}

func jsonKind(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
