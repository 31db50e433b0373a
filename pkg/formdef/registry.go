package formdef

import (
	"sort"
	"strings"
	"sync"
)

// Matcher decides whether a kind applies to a field without an explicit
// kind.
type Matcher func(field Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry resolves field kinds. Higher priority wins; ties fall back to
// registration order. Fields nothing matches resolve to text.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher. The latest registration of a name wins during
// resolution only through its priority; duplicate names are not merged.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the kind for field. An explicit kind is returned as is.
func (r *Registry) Resolve(field Field) string {
	if explicit := strings.ToLower(strings.TrimSpace(field.Kind)); explicit != "" {
		return explicit
	}
	if r == nil {
		return KindText
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return KindText
}

func (r *Registry) registerBuiltins() {
	r.Register(KindHidden, 100, func(field Field) bool {
		return format(field) == "hidden"
	})
	r.Register(KindSelect, 80, func(field Field) bool {
		return len(field.Options) > 0 || field.OptionList != "" || field.Query != nil
	})
	r.Register(KindFile, 75, func(field Field) bool {
		return field.FileID != nil || format(field) == "binary"
	})
	r.Register(KindTextArea, 70, func(field Field) bool {
		return format(field) == "textarea" || field.Attributes["rows"] != ""
	})
	r.Register(KindDateTime, 65, func(field Field) bool {
		return format(field) == "date-time"
	})
	r.Register(KindDate, 60, func(field Field) bool {
		return format(field) == "date" || strings.HasSuffix(field.Name, "Date")
	})
	r.Register(KindTime, 60, func(field Field) bool {
		return format(field) == "time"
	})
	r.Register(KindEmail, 60, func(field Field) bool {
		return format(field) == "email" || strings.HasSuffix(field.Name, "Email")
	})
	r.Register(KindTel, 60, func(field Field) bool {
		return format(field) == "phone" || strings.HasSuffix(field.Name, "Phone")
	})
	r.Register(KindPassword, 60, func(field Field) bool {
		return format(field) == "password"
	})
	r.Register(KindNumber, 50, func(field Field) bool {
		f := format(field)
		return f == "integer" || f == "number" || f == "int32" || f == "int64"
	})
}

func format(field Field) string {
	return strings.ToLower(strings.TrimSpace(field.Format))
}
