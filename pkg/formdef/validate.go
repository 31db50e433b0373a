package formdef

import (
	"fmt"
	"strings"
)

// Issue is a single problem found by Validate.
type Issue struct {
	Form    string `json:"form"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s: %s", i.Form, i.Message)
	}
	return fmt.Sprintf("%s > %s: %s", i.Form, i.Field, i.Message)
}

// ValidationResult collects the issues of one or more definitions.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

type validateConfig struct {
	registry    *Registry
	optionLists map[string]bool
	kinds       map[string]bool
}

// ValidateOption customises Validate.
type ValidateOption func(*validateConfig)

// WithValidationRegistry resolves implicit kinds through reg.
func WithValidationRegistry(reg *Registry) ValidateOption {
	return func(cfg *validateConfig) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithKnownOptionLists enables checking optionList references against names.
func WithKnownOptionLists(names ...string) ValidateOption {
	return func(cfg *validateConfig) {
		if cfg.optionLists == nil {
			cfg.optionLists = make(map[string]bool)
		}
		for _, name := range names {
			cfg.optionLists[name] = true
		}
	}
}

// WithCustomKinds accepts kinds registered through WithKind at render time.
func WithCustomKinds(kinds ...string) ValidateOption {
	return func(cfg *validateConfig) {
		for _, kind := range kinds {
			cfg.kinds[strings.ToLower(strings.TrimSpace(kind))] = true
		}
	}
}

// memberCounts lists the accepted number of values per composite kind. A
// negative entry is a minimum.
var memberCounts = map[string][]int{
	KindName:         {2, 3},
	KindCityStateZip: {2, 3},
	KindAddress:      {4, 5, 6},
	KindPhone:        {3},
	KindVerify:       {-4},
	KindObsolete:     {4},
}

// Validate reports problems Render would hit or silently skip.
func Validate(defs []Definition, opts ...ValidateOption) ValidationResult {
	cfg := validateConfig{registry: NewRegistry(), kinds: make(map[string]bool)}
	for _, kind := range Kinds() {
		cfg.kinds[kind] = true
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var issues []Issue
	for _, def := range defs {
		issues = append(issues, cfg.definition(def)...)
	}
	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

func (cfg *validateConfig) definition(def Definition) []Issue {
	var issues []Issue
	report := func(field, format string, args ...any) {
		issues = append(issues, Issue{Form: def.ID, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(def.Fields) == 0 {
		report("", "form has no fields")
	}
	seen := make(map[string]int)
	for i, field := range def.Fields {
		loc := fieldLocation(i, field)
		kind := cfg.registry.Resolve(field)
		if !cfg.kinds[kind] {
			report(loc, "unknown kind %q", kind)
			continue
		}

		if field.Name != "" {
			key := field.Name
			if field.PostArray != nil {
				key = *field.PostArray + "." + key
			}
			if prev, dup := seen[key]; dup {
				report(loc, "name %q already used by field %d", field.Name, prev)
			} else {
				seen[key] = i
			}
		}

		if counts, ok := memberCounts[kind]; ok && !acceptsCount(counts, len(field.Values)) {
			report(loc, "%s expects %s values, found %d", kind, describeCounts(counts), len(field.Values))
		}

		switch kind {
		case KindSelect, KindCheckbox, KindRadio:
			if len(field.Options) == 0 && field.OptionList == "" && field.Query == nil {
				report(loc, "%s has no options, optionList or query", kind)
			}
		case KindHeader:
			if field.Level < 0 || field.Level > 6 {
				report(loc, "header level %d outside 1-6", field.Level)
			}
		case KindVerify, KindObsolete:
			if field.Button == nil {
				report(loc, "%s without a button cannot be submitted", kind)
			}
		}

		if field.OptionList != "" && cfg.optionLists != nil && !cfg.optionLists[field.OptionList] {
			report(loc, "option list %q is not defined", field.OptionList)
		}
		if q := field.Query; q != nil {
			if strings.TrimSpace(q.SQL) == "" {
				report(loc, "query has no sql")
			}
			if q.ValueField == "" {
				report(loc, "query has no valueField")
			}
		}
	}
	return issues
}

func fieldLocation(i int, field Field) string {
	if field.Name != "" {
		return field.Name
	}
	return fmt.Sprintf("#%d", i)
}

func acceptsCount(counts []int, n int) bool {
	for _, c := range counts {
		if c < 0 && n >= -c {
			return true
		}
		if c == n {
			return true
		}
	}
	return false
}

func describeCounts(counts []int) string {
	if len(counts) == 1 && counts[0] < 0 {
		return fmt.Sprintf("at least %d", -counts[0])
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, " or ")
}
