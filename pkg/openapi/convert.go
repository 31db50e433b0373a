package openapi

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/options"
)

// ExtensionKey is the schema extension carrying rendering hints: kind,
// label, order, optionList, placeholder and hidden.
const ExtensionKey = "x-formhtml"

// Strings longer than this render as text areas.
const textAreaThreshold = 255

type property struct {
	name   string
	schema *openapi3.Schema
	hints  map[string]any
	order  int
}

func (i *Importer) fields(operation string, object *openapi3.Schema, postArray *string) []formdef.Field {
	props := make([]property, 0, len(object.Properties))
	for name, ref := range object.Properties {
		if ref == nil || ref.Value == nil {
			i.logger.Debug("openapi: unresolved property", "operation", operation, "property", name)
			continue
		}
		hints := extension(ref.Value)
		order, ok := intHint(hints, "order")
		if !ok {
			order = 1 << 20
		}
		props = append(props, property{name: name, schema: ref.Value, hints: hints, order: order})
	}
	slices.SortFunc(props, func(a, b property) int {
		if a.order != b.order {
			return a.order - b.order
		}
		return strings.Compare(a.name, b.name)
	})

	var out []formdef.Field
	for _, prop := range props {
		if isType(prop.schema, openapi3.TypeObject) {
			if postArray != nil {
				i.logger.Debug("openapi: skipping nested object", "operation", operation, "property", prop.name)
				continue
			}
			nested := prop.name
			out = append(out, formdef.Field{Kind: formdef.KindHeader, Label: label(prop), Level: 3})
			out = append(out, i.fields(operation, prop.schema, &nested)...)
			continue
		}
		field := convert(prop, slices.Contains(object.Required, prop.name))
		field.PostArray = postArray
		out = append(out, field)
	}
	return out
}

func convert(prop property, required bool) formdef.Field {
	s := prop.schema
	field := formdef.Field{
		Name:        prop.name,
		Label:       label(prop),
		Format:      s.Format,
		Tooltip:     s.Description,
		Kind:        stringHint(prop.hints, "kind"),
		OptionList:  stringHint(prop.hints, "optionList"),
		Placeholder: stringHint(prop.hints, "placeholder"),
	}
	if s.Default != nil {
		field.Value = fmt.Sprint(s.Default)
	}
	if field.Placeholder == "" {
		if example, ok := s.Example.(string); ok {
			field.Placeholder = example
		}
	}

	set := map[string]string{}
	if required {
		set["class"] = "required"
	}
	if s.ReadOnly {
		set["readonly"] = "readonly"
	}
	if s.MaxLength != nil {
		set["maxlength"] = strconv.FormatUint(*s.MaxLength, 10)
	}
	if s.Pattern != "" {
		set["pattern"] = s.Pattern
	}
	if s.Min != nil {
		set["min"] = strconv.FormatFloat(*s.Min, 'f', -1, 64)
	}
	if s.Max != nil {
		set["max"] = strconv.FormatFloat(*s.Max, 'f', -1, 64)
	}

	switch {
	case boolHint(prop.hints, "hidden"):
		field.Format = "hidden"
	case len(s.Enum) > 0:
		field.Options = enumOptions(s.Enum)
	case isType(s, openapi3.TypeBoolean):
		if field.Kind == "" {
			field.Kind = formdef.KindRadio
		}
		field.Options = []options.Option{{Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}
	case isType(s, openapi3.TypeArray) && s.Items != nil && s.Items.Value != nil && len(s.Items.Value.Enum) > 0:
		if field.Kind == "" {
			field.Kind = formdef.KindCheckbox
		}
		field.Options = enumOptions(s.Items.Value.Enum)
	case isType(s, openapi3.TypeInteger), isType(s, openapi3.TypeNumber):
		if field.Format == "" || field.Format == "float" || field.Format == "double" {
			field.Format = "number"
		}
	case isType(s, openapi3.TypeString) && s.MaxLength != nil && *s.MaxLength > textAreaThreshold && field.Format == "":
		field.Format = "textarea"
	}
	if len(set) > 0 {
		field.Attributes = set
	}
	return field
}

func enumOptions(values []any) []options.Option {
	out := make([]options.Option, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		out = append(out, options.Option{Value: text, Label: text})
	}
	return out
}

func label(prop property) string {
	if text := stringHint(prop.hints, "label"); text != "" {
		return text
	}
	if prop.schema.Title != "" {
		return prop.schema.Title
	}
	return humanize(prop.name)
}

var titleCaser = cases.Title(language.English)

// humanize turns "firstName" or "first_name" into "First Name".
func humanize(name string) string {
	return titleCaser.String(strings.ReplaceAll(identity.FromName(name), "_", " "))
}

func isType(s *openapi3.Schema, want string) bool {
	return s != nil && s.Type != nil && s.Type.Is(want)
}

func extension(s *openapi3.Schema) map[string]any {
	raw, ok := s.Extensions[ExtensionKey]
	if !ok {
		return nil
	}
	hints, _ := raw.(map[string]any)
	return hints
}

func stringHint(hints map[string]any, key string) string {
	value, _ := hints[key].(string)
	return strings.TrimSpace(value)
}

func boolHint(hints map[string]any, key string) bool {
	value, _ := hints[key].(bool)
	return value
}

func intHint(hints map[string]any, key string) (int, bool) {
	switch value := hints[key].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	case int64:
		return int(value), true
	default:
		return 0, false
	}
}
