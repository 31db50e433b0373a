package formdef

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/options"
)

// ErrUnknownKind is returned when a field resolves to a kind nothing can
// render.
var ErrUnknownKind = fragment.ErrUnknownKind

// KindFunc renders a custom kind.
type KindFunc func(form *fragment.Form, field Field) string

type renderConfig struct {
	registry *Registry
	querier  options.Querier
	actor    fragment.Actor
	values   map[string]string
	kinds    map[string]KindFunc
}

// RenderOption customises Render.
type RenderOption func(*renderConfig)

// WithRegistry replaces the kind resolver.
func WithRegistry(reg *Registry) RenderOption {
	return func(cfg *renderConfig) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithQuerier supplies the database used by fields with a query.
func WithQuerier(q options.Querier) RenderOption {
	return func(cfg *renderConfig) {
		cfg.querier = q
	}
}

// WithActor sets the user verify and obsolete fields render for.
func WithActor(actor fragment.Actor) RenderOption {
	return func(cfg *renderConfig) {
		cfg.actor = actor
	}
}

// WithValues prefills fields by name. Values win over the definition's
// defaults.
func WithValues(values map[string]string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.values = values
	}
}

// WithKind registers a renderer for a custom kind. Built-in kinds cannot be
// replaced.
func WithKind(kind string, fn KindFunc) RenderOption {
	return func(cfg *renderConfig) {
		if fn == nil {
			return
		}
		if cfg.kinds == nil {
			cfg.kinds = make(map[string]KindFunc)
		}
		cfg.kinds[strings.ToLower(strings.TrimSpace(kind))] = fn
	}
}

// Render renders every field of def into form, one field per line.
func Render(ctx context.Context, form *fragment.Form, def Definition, opts ...RenderOption) (string, error) {
	if form == nil {
		return "", fmt.Errorf("formdef: render %s: form is nil", def.ID)
	}
	cfg := renderConfig{registry: NewRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	parts := make([]string, 0, len(def.Fields))
	for i, field := range def.Fields {
		if value, ok := cfg.values[field.Name]; ok && field.Name != "" {
			field.Value = value
		}
		out, err := cfg.field(ctx, form, def, field)
		if err != nil {
			return "", fmt.Errorf("formdef: render %s field %d: %w", def.ID, i, err)
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// RenderPage renders def wrapped in its form element.
func RenderPage(ctx context.Context, form *fragment.Form, def Definition, opts ...RenderOption) (string, error) {
	body, err := Render(ctx, form, def, opts...)
	if err != nil {
		return "", err
	}
	return form.Page(def.ID, def.Title, body, nil), nil
}

func (cfg *renderConfig) field(ctx context.Context, form *fragment.Form, def Definition, field Field) (string, error) {
	if field.PostArray == nil {
		return cfg.dispatch(ctx, form, def, field)
	}
	var err error
	out := form.WithPostArray(*field.PostArray, func() string {
		var html string
		html, err = cfg.dispatch(ctx, form, def, field)
		return html
	})
	return out, err
}

func (cfg *renderConfig) dispatch(ctx context.Context, form *fragment.Form, def Definition, field Field) (string, error) {
	kind := cfg.registry.Resolve(field)
	set := attrs.Set(field.Attributes).Clone()
	fo := fragment.FieldOptions{Tooltip: field.Tooltip, DataList: field.DataList, Placeholder: field.Placeholder}

	switch kind {
	case KindText:
		return form.DivInputText(field.Label, field.Name, field.Value, set, fo), nil
	case KindEmail:
		return form.DivInputEmail(field.Label, field.Name, field.Value, set, fo), nil
	case KindSearch:
		return form.DivInputSearch(field.Label, field.Name, field.Value, set, fo), nil
	case KindNumber:
		return form.DivInputNumber(field.Label, field.Name, field.Value, set, fo), nil
	case KindRate:
		return form.DivInputRate(field.Label, field.Name, field.Value, set, fo), nil
	case KindTel:
		return form.DivInputTel(field.Label, field.Name, field.Value, set, fo), nil
	case KindTime:
		return form.DivInputTime(field.Label, field.Name, field.Value, set, fo), nil
	case KindDate:
		return form.DivInputDate(field.Label, field.Name, field.Value, set, fragment.DateOptions{
			FieldOptions: fo,
			StartBlank:   field.StartBlank,
			PriorOnly:    field.PriorOnly,
		}), nil
	case KindDateTime:
		return form.DivInputDateTime(field.Label, field.Name, field.Value, set, fo), nil
	case KindPassword:
		return form.DivInputPassword(field.Label, field.Name, field.Value, set, fo), nil
	case KindEncrypted:
		return form.DivInputEncrypted(field.Label, field.Name, field.Value, set, fo), nil
	case KindHidden:
		return form.Hidden(field.Name, field.Value, true), nil
	case KindFile:
		fileID := -1
		if field.FileID != nil {
			fileID = *field.FileID
		}
		return form.DivInputFile(fragment.FileSpec{
			Label:      field.Label,
			Name:       field.Name,
			FileID:     fileID,
			Attributes: set,
			Tooltip:    field.Tooltip,
		}), nil
	case KindSelect:
		opts, err := cfg.options(ctx, form, field)
		if err != nil {
			return "", err
		}
		return form.DivSelect(field.Label, fragment.SelectSpec{
			Name:       field.Name,
			Value:      field.Value,
			Options:    opts,
			Attributes: set,
		}, fo), nil
	case KindCheckbox, KindRadio:
		opts, err := cfg.options(ctx, form, field)
		if err != nil {
			return "", err
		}
		return cfg.group(form, kind, field, opts, set), nil
	case KindTextArea:
		return form.DivTextArea(field.Label, field.Name, field.Value, set, fo), nil
	case KindDisplay:
		return form.DivTextDisplay(field.Label, field.Name, field.Value, set, fo), nil
	case KindHeader:
		level := field.Level
		if level == 0 {
			level = 2
		}
		return form.Header(level, field.Label, set), nil
	case KindMessage:
		return form.DivMessage(field.Label, field.Value, field.Tooltip), nil
	case KindName:
		return form.DivName(field.fragmentValues(), set), nil
	case KindPhone:
		return form.DivPhone(field.Label, field.fragmentValues(), set, field.Tooltip), nil
	case KindCityStateZip:
		return form.DivCityStateZip(field.fragmentValues(), set), nil
	case KindAddress:
		return form.DivAddress(field.Label, field.fragmentValues(), set, format(field)), nil
	case KindNote:
		return form.DivTextAreaNote(field.Label, field.Name, field.Value, set, def.ID), nil
	case KindVerify:
		return form.DivVerify(field.fragmentValues(), set, cfg.button(form, def, field), cfg.actor), nil
	case KindObsolete:
		return form.DivObsolete(field.fragmentValues(), set, cfg.button(form, def, field), cfg.actor), nil
	case KindSubmit:
		container := ""
		if field.Button != nil {
			container = field.Button.Container
		}
		return form.NavButton(field.Label, def.ID, set, container), nil
	}

	if fn, ok := cfg.kinds[kind]; ok {
		return fn(form, field), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// options resolves a field's choices: inline options first, then the named
// list, then the query.
func (cfg *renderConfig) options(ctx context.Context, form *fragment.Form, field Field) ([]options.Option, error) {
	out := slices.Clone(field.Options)
	if field.OptionList != "" {
		out = append(out, form.Builder().OptionList(field.OptionList)...)
	}
	if field.Query != nil {
		if cfg.querier == nil {
			return nil, fmt.Errorf("field %s: query set but no querier configured", field.Name)
		}
		rows, err := options.Query(ctx, cfg.querier, field.Query.SQL, field.Query.Args...)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out = append(out, rows.Options(field.Query.ValueField, field.Query.LabelField)...)
	}
	return out, nil
}

func (cfg *renderConfig) group(form *fragment.Form, kind string, field Field, opts []options.Option, set attrs.Set) string {
	selected := map[string]bool{}
	for _, value := range strings.Split(field.Value, ",") {
		if value = strings.TrimSpace(value); value != "" {
			selected[value] = true
		}
	}
	items := make([]string, 0, len(opts))
	for _, opt := range opts {
		spec := fragment.CheckSpec{
			Label:   opt.Label,
			Name:    field.Name,
			Value:   opt.Value,
			Checked: selected[opt.Value],
		}
		if kind == KindCheckbox {
			items = append(items, form.Checkbox(spec))
		} else {
			items = append(items, form.Radio(spec))
		}
	}
	if kind == KindCheckbox {
		return form.DivCheckbox(field.Label, items, set, field.Tooltip)
	}
	return form.DivRadio(field.Label, items, set, field.Tooltip)
}

func (cfg *renderConfig) button(form *fragment.Form, def Definition, field Field) string {
	if field.Button == nil {
		return ""
	}
	return form.AjaxButton(field.Button.Name, field.Button.Text, def.ID, nil, field.Button.Container)
}
