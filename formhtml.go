// Package formhtml builds HTML form fragments: labelled inputs, selects,
// check groups, composite address and verification widgets, tooltips and
// ajax buttons, with deterministic ids and post-array field names.
//
// Most callers start a Builder once and a Form per page:
//
//	b, _ := formhtml.New(formhtml.WithPostArray("Record"))
//	f := b.NewForm(ctx)
//	html := f.DivInputText("Name", "Name", "Ada", nil, fragment.FieldOptions{})
//
// Whole forms can also be described declaratively and rendered with
// RenderDefinition.
package formhtml

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/openapi"
)

// Builder aliases fragment.Builder.
type Builder = fragment.Builder

// Form aliases fragment.Form.
type Form = fragment.Form

// Option aliases fragment.Option.
type Option = fragment.Option

// Definition aliases formdef.Definition.
type Definition = formdef.Definition

// New constructs a Builder.
func New(opts ...Option) (*Builder, error) {
	return fragment.New(opts...)
}

// NewForm constructs a Builder and starts a Form on it.
func NewForm(ctx context.Context, opts ...Option) (*Form, error) {
	b, err := fragment.New(opts...)
	if err != nil {
		return nil, err
	}
	return b.NewForm(ctx), nil
}

// WithPostArray forwards to fragment.WithPostArray.
func WithPostArray(prefix string) Option {
	return fragment.WithPostArray(prefix)
}

// WithThemeSelector resolves tokens and template overrides from a go-theme
// selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return fragment.WithTheme(selector, name, variant)
}

// LoadDefinitions reads every definition file in fsys.
func LoadDefinitions(fsys fs.FS) (*formdef.Store, error) {
	return formdef.LoadFS(fsys)
}

// RenderDefinition renders def as a complete form element on a fresh Form.
func RenderDefinition(ctx context.Context, def Definition, builderOpts []Option, renderOpts ...formdef.RenderOption) (string, error) {
	form, err := NewForm(ctx, builderOpts...)
	if err != nil {
		return "", err
	}
	return formdef.RenderPage(ctx, form, def, renderOpts...)
}

// ImportOpenAPI converts the OpenAPI document at path into definitions.
func ImportOpenAPI(ctx context.Context, path string, opts ...openapi.Option) ([]Definition, error) {
	return openapi.NewImporter(opts...).Import(ctx, openapi.SourceFromFile(path))
}
