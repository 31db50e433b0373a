package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formhtml/pkg/formdef"
)

// ErrNoForms is returned when a document has no operation with a request
// body among the selected methods.
var ErrNoForms = errors.New("openapi: no form operations found")

var defaultMethods = []string{"POST", "PUT", "PATCH"}

// Importer converts OpenAPI documents into form definitions.
type Importer struct {
	fsys     fs.FS
	validate bool
	partial  bool
	methods  []string
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithFileSystem sets the filesystem SourceFromFS sources read from.
func WithFileSystem(fsys fs.FS) Option {
	return func(i *Importer) {
		i.fsys = fsys
	}
}

// WithValidation validates the document before converting it.
func WithValidation(enabled bool) Option {
	return func(i *Importer) {
		i.validate = enabled
	}
}

// WithPartialDocuments accepts documents that produce no forms.
func WithPartialDocuments(enabled bool) Option {
	return func(i *Importer) {
		i.partial = enabled
	}
}

// WithMethods limits the HTTP methods whose operations become forms.
func WithMethods(methods ...string) Option {
	return func(i *Importer) {
		i.methods = i.methods[:0]
		for _, method := range methods {
			if method = strings.ToUpper(strings.TrimSpace(method)); method != "" {
				i.methods = append(i.methods, method)
			}
		}
	}
}

// WithLogger sets the logger skipped operations and properties are reported
// to.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewImporter constructs an Importer.
func NewImporter(opts ...Option) *Importer {
	i := &Importer{
		methods: slices.Clone(defaultMethods),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	if len(i.methods) == 0 {
		i.methods = slices.Clone(defaultMethods)
	}
	return i
}

// Import reads src and converts it.
func (i *Importer) Import(ctx context.Context, src Source) ([]formdef.Definition, error) {
	raw, err := read(ctx, i.fsys, src)
	if err != nil {
		return nil, err
	}
	return i.Parse(ctx, raw, src.Location())
}

// Parse converts a raw JSON or YAML document. Definitions are returned in
// id order.
func (i *Importer) Parse(ctx context.Context, raw []byte, location string) ([]formdef.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("openapi: document %s is empty", location)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", location, err)
	}
	if i.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", location, err)
		}
	}

	var defs []formdef.Definition
	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if !slices.Contains(i.methods, method) || operation == nil {
					continue
				}
				def, ok := i.definition(method, path, operation)
				if !ok {
					continue
				}
				def.Source = location
				defs = append(defs, def)
			}
		}
	}
	if len(defs) == 0 && !i.partial {
		return nil, fmt.Errorf("%w in %s", ErrNoForms, location)
	}
	slices.SortFunc(defs, func(a, b formdef.Definition) int {
		return strings.Compare(a.ID, b.ID)
	})
	return defs, nil
}

func (i *Importer) definition(method, path string, operation *openapi3.Operation) (formdef.Definition, bool) {
	id := operation.OperationID
	if id == "" {
		id = operationID(method, path)
	}
	body := requestSchema(operation.RequestBody)
	if body == nil || !isType(body, openapi3.TypeObject) {
		i.logger.Debug("openapi: skipping operation without an object body", "operation", id)
		return formdef.Definition{}, false
	}

	title := operation.Summary
	if title == "" {
		title = humanize(id)
	}
	def := formdef.Definition{ID: id, Title: title}
	def.Fields = i.fields(id, body, nil)
	if len(def.Fields) == 0 {
		i.logger.Debug("openapi: skipping operation without fields", "operation", id)
		return formdef.Definition{}, false
	}
	def.Fields = append(def.Fields, formdef.Field{Kind: formdef.KindSubmit, Label: submitLabel(method)})
	return def, true
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func operationID(method, path string) string {
	replacer := strings.NewReplacer("/", "_", "{", "", "}", "", "-", "_")
	return strings.ToLower(method) + replacer.Replace(strings.TrimRight(path, "/"))
}

func submitLabel(method string) string {
	if method == "POST" {
		return "Create"
	}
	return "Save"
}
