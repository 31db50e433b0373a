package prompt

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/postname"
)

type fillConfig struct {
	registry  *formdef.Registry
	lists     map[string][]options.Option
	querier   options.Querier
	postArray string
	confirm   bool
}

// FillOption customises Fill.
type FillOption func(*fillConfig)

// WithRegistry replaces the kind resolver.
func WithRegistry(reg *formdef.Registry) FillOption {
	return func(cfg *fillConfig) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithOptionLists supplies the named lists fields refer to by optionList.
func WithOptionLists(lists map[string][]options.Option) FillOption {
	return func(cfg *fillConfig) {
		cfg.lists = lists
	}
}

// WithQuerier supplies the database used by fields with a query.
func WithQuerier(q options.Querier) FillOption {
	return func(cfg *fillConfig) {
		cfg.querier = q
	}
}

// WithPostArray sets the prefix answers are posted under. Defaults to
// postname.Default.
func WithPostArray(prefix string) FillOption {
	return func(cfg *fillConfig) {
		cfg.postArray = prefix
	}
}

// WithConfirm asks for a final confirmation; declining returns ErrAborted.
func WithConfirm(enabled bool) FillOption {
	return func(cfg *fillConfig) {
		cfg.confirm = enabled
	}
}

// Fill walks def and asks driver for every editable field. Answers are keyed
// by post name, so postname.Decode groups them the way a browser submission
// of the rendered form would be grouped. Hidden fields keep their values;
// buttons, files and the verify/obsolete widgets are skipped.
func Fill(ctx context.Context, driver Driver, def formdef.Definition, opts ...FillOption) (url.Values, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is nil")
	}
	cfg := fillConfig{registry: formdef.NewRegistry(), postArray: postname.Default}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if def.Title != "" {
		if err := driver.Info(ctx, def.Title); err != nil {
			return nil, err
		}
	}
	out := url.Values{}
	for _, field := range def.Fields {
		if err := cfg.field(ctx, driver, field, out); err != nil {
			return nil, fmt.Errorf("prompt: %s field %q: %w", def.ID, field.Name, err)
		}
	}
	if cfg.confirm {
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}
	return out, nil
}

func (cfg *fillConfig) field(ctx context.Context, driver Driver, field formdef.Field, out url.Values) error {
	prefix := cfg.postArray
	if field.PostArray != nil {
		prefix = *field.PostArray
	}
	name := func(n string) string { return postname.Resolve(n, prefix) }
	message := field.Label
	if message == "" {
		message = field.Name
	}
	input := InputConfig{Message: message, Default: field.Value, Help: field.Tooltip}

	kind := cfg.registry.Resolve(field)
	switch kind {
	case formdef.KindHeader:
		return driver.Info(ctx, field.Label)
	case formdef.KindMessage, formdef.KindDisplay:
		if field.Value == "" {
			return nil
		}
		return driver.Info(ctx, message+": "+field.Value)
	case formdef.KindHidden:
		out.Set(name(field.Name), field.Value)
		return nil
	case formdef.KindSubmit, formdef.KindFile, formdef.KindVerify, formdef.KindObsolete:
		return nil
	case formdef.KindPassword, formdef.KindEncrypted:
		input.Default = ""
		input.Validator = required(field, nil)
		answer, err := driver.Password(ctx, input)
		if err != nil {
			return err
		}
		out.Set(postname.Resolve(field.Name, postname.Encrypt), answer)
		return nil
	case formdef.KindTextArea, formdef.KindNote:
		input.Validator = required(field, nil)
		answer, err := driver.TextArea(ctx, input)
		if err != nil {
			return err
		}
		out.Set(name(field.Name), answer)
		return nil
	case formdef.KindSelect, formdef.KindRadio:
		opts, err := cfg.options(ctx, field)
		if err != nil {
			return err
		}
		labels, values := split(opts)
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: slices.Index(values, field.Value),
			Help:         field.Tooltip,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			return fmt.Errorf("selection %d out of range", idx)
		}
		out.Set(name(field.Name), values[idx])
		return nil
	case formdef.KindCheckbox:
		opts, err := cfg.options(ctx, field)
		if err != nil {
			return err
		}
		labels, values := split(opts)
		var defaults []int
		for _, v := range strings.Split(field.Value, ",") {
			if i := slices.Index(values, strings.TrimSpace(v)); i >= 0 {
				defaults = append(defaults, i)
			}
		}
		picked, err := driver.MultiSelect(ctx, SelectConfig{Message: message, Options: labels, Defaults: defaults, Help: field.Tooltip})
		if err != nil {
			return err
		}
		key := name(field.Name + "[]")
		out[key] = []string{""}
		for _, i := range picked {
			if i >= 0 && i < len(values) {
				out.Add(key, values[i])
			}
		}
		return nil
	case formdef.KindName, formdef.KindPhone, formdef.KindCityStateZip, formdef.KindAddress:
		for _, member := range field.Values {
			answer, err := driver.Input(ctx, InputConfig{Message: memberLabel(member.Name), Default: member.Value})
			if err != nil {
				return err
			}
			out.Set(name(member.Name), answer)
		}
		return nil
	}

	input.Validator = required(field, validatorFor(kind))
	answer, err := driver.Input(ctx, input)
	if err != nil {
		return err
	}
	out.Set(name(field.Name), answer)
	return nil
}

func (cfg *fillConfig) options(ctx context.Context, field formdef.Field) ([]options.Option, error) {
	out := slices.Clone(field.Options)
	if field.OptionList != "" {
		out = append(out, cfg.lists[field.OptionList]...)
	}
	if field.Query != nil {
		rows, err := options.Query(ctx, cfg.querier, field.Query.SQL, field.Query.Args...)
		if err != nil {
			return nil, err
		}
		out = append(out, rows.Options(field.Query.ValueField, field.Query.LabelField)...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no options")
	}
	return out, nil
}

func split(opts []options.Option) ([]string, []string) {
	labels := make([]string, len(opts))
	values := make([]string, len(opts))
	for i, opt := range opts {
		labels[i], values[i] = opt.Label, opt.Value
		if labels[i] == "" {
			labels[i] = opt.Value
		}
	}
	return labels, values
}

func memberLabel(name string) string {
	return strings.ReplaceAll(identity.FromName(name), "_", " ")
}

func required(field formdef.Field, next func(string) error) func(string) error {
	isRequired := slices.Contains(strings.Fields(field.Attributes["class"]), "required")
	if !isRequired && next == nil {
		return nil
	}
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" {
			if isRequired {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
		if next != nil {
			return next(answer)
		}
		return nil
	}
}

func validatorFor(kind string) func(string) error {
	switch kind {
	case formdef.KindNumber, formdef.KindRate:
		return func(answer string) error {
			if _, err := strconv.ParseFloat(answer, 64); err != nil {
				return fmt.Errorf("%q is not a number", answer)
			}
			return nil
		}
	case formdef.KindEmail:
		return func(answer string) error {
			if _, err := mail.ParseAddress(answer); err != nil {
				return fmt.Errorf("%q is not an email address", answer)
			}
			return nil
		}
	case formdef.KindDate:
		return layoutValidator(fragment.DateLayout, "YYYY-MM-DD")
	case formdef.KindTime:
		return layoutValidator(fragment.TimeLayout, "HH:MM")
	case formdef.KindDateTime:
		return layoutValidator(fragment.DateTimeLayout, "YYYY-MM-DDTHH:MM")
	default:
		return nil
	}
}

func layoutValidator(layout, hint string) func(string) error {
	return func(answer string) error {
		if _, err := time.Parse(layout, answer); err != nil {
			return fmt.Errorf("%q does not match %s", answer, hint)
		}
		return nil
	}
}
