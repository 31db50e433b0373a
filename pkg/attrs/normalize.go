package attrs

import "strings"

// DefaultRequiredLabelClass decorates labels of required elements.
const DefaultRequiredLabelClass = "label_required"

const (
	requiredMarker = "required"
	matchMarker    = "MatchCondition"
	hiddenMarker   = "display:none;"
)

// Flags carries the out-of-band decorations discovered while normalising an
// element's attributes. Callers use them to decorate the associated label and
// tooltip.
type Flags struct {
	Required     bool
	Hidden       bool
	TooltipClass string
}

// Merge combines two flag sets. The receiver's tooltip class wins when both
// carry one.
func (f Flags) Merge(other Flags) Flags {
	out := Flags{
		Required:     f.Required || other.Required,
		Hidden:       f.Hidden || other.Hidden,
		TooltipClass: f.TooltipClass,
	}
	if out.TooltipClass == "" {
		out.TooltipClass = other.TooltipClass
	}
	return out
}

// LabelAttributes renders the label decorations. An empty requiredClass falls
// back to DefaultRequiredLabelClass.
func (f Flags) LabelAttributes(requiredClass string) string {
	if requiredClass == "" {
		requiredClass = DefaultRequiredLabelClass
	}
	var b strings.Builder
	if f.Required {
		b.WriteString(` class="` + requiredClass + `"`)
	}
	if f.Hidden {
		b.WriteString(` style="` + hiddenMarker + `"`)
	}
	return b.String()
}

// TooltipAttributes renders the tooltip decorations.
func (f Flags) TooltipAttributes() string {
	var b strings.Builder
	if f.TooltipClass != "" {
		b.WriteString(` class="` + f.TooltipClass + `"`)
	}
	if f.Hidden {
		b.WriteString(` style="` + hiddenMarker + `"`)
	}
	return b.String()
}

// Normalize merges include into caller and serialises the result as a
// sequence of ` key="value"` pairs in lexicographic key order. class, style
// and onchange from include are appended to the caller's values; any other
// include key overwrites only when non-empty. prefix and suffix are never
// serialised. Values are written verbatim.
func Normalize(caller, include Set) (string, Flags) {
	merged := caller.Clone()
	for _, key := range include.Keys() {
		value := include[key]
		switch strings.ToLower(key) {
		case KeyClass:
			merged = merged.AddClass(value)
		case KeyStyle:
			merged = merged.AddStyle(value)
		case KeyOnChange:
			merged = merged.AddOnChange(value)
		default:
			if value != "" {
				merged[key] = value
			}
		}
	}

	var (
		b     strings.Builder
		flags Flags
	)
	for _, key := range merged.Keys() {
		if key == KeyPrefix || key == KeySuffix {
			continue
		}
		value := merged[key]
		if value == "" {
			continue
		}
		switch key {
		case KeyClass:
			if strings.Contains(value, requiredMarker) {
				flags.Required = true
			}
			if strings.Contains(value, matchMarker) {
				flags.TooltipClass = value
			}
		case KeyStyle:
			if strings.Contains(value, hiddenMarker) {
				flags.Hidden = true
			}
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(value)
		b.WriteString(`"`)
	}
	return b.String(), flags
}
