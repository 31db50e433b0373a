package fragment

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"

	"github.com/goliatone/go-formhtml/pkg/attrs"
	"github.com/goliatone/go-formhtml/pkg/identity"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/postname"
	"github.com/goliatone/go-formhtml/pkg/profile"
)

// Theme token keys the builder reads.
const (
	TokenRequiredLabelClass = "formhtml.label.required"
	TokenTooltipClass       = "formhtml.tooltip.class"
	TokenMSPClass           = "formhtml.msp.class"
	TokenButtonClass        = "formhtml.button.class"
)

// ThemeTemplatePrefix prefixes manifest template keys that override a kind,
// e.g. "formhtml.input".
const ThemeTemplatePrefix = "formhtml."

// Decrypter reveals stored encrypted values before they are rendered.
type Decrypter interface {
	Decrypt(ctx context.Context, value string) (string, error)
}

// FileLinker produces links for stored files.
type FileLinker interface {
	DisplayURL(fileID int) string
	DownloadLink(fileID int, text string) string
}

// RoleLookup names permission roles for account contact cards.
type RoleLookup interface {
	RoleName(id int) string
}

// Option configures a Builder.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	include      attrs.Set
	postArray    string
	uniqueIDs    bool
	rawValues    bool
	debugAjax    bool
	mspField     bool
	tokens       map[string]string
	overrides    map[Kind]string
	templatesFS  fs.FS
	templateDir  string
	assembler    *Assembler
	decrypter    Decrypter
	files        FileLinker
	roles        RoleLookup
	clock        func() time.Time
	randomSuffix func() string
	optionLists  map[string][]options.Option
	defaultState string

	themeSelector theme.ThemeSelector
	themeName     string
	themeVariant  string
}

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithIncludeAttributes applies set to every element the builder produces.
func WithIncludeAttributes(set attrs.Set) Option {
	return func(cfg *config) {
		for key, value := range set {
			cfg.include[key] = value
		}
	}
}

// WithPostArray changes the default post-array prefix. An empty prefix posts
// bare field names.
func WithPostArray(prefix string) Option {
	return func(cfg *config) {
		cfg.postArray = strings.TrimSpace(prefix)
	}
}

// WithUniqueIDs appends a per-form counter to every element id.
func WithUniqueIDs(enabled bool) Option {
	return func(cfg *config) {
		cfg.uniqueIDs = enabled
	}
}

// WithRawValues disables escaping of field values.
func WithRawValues() Option {
	return func(cfg *config) {
		cfg.rawValues = true
	}
}

// WithDebugAjax adds a plain submit button next to every ajax button.
func WithDebugAjax(enabled bool) Option {
	return func(cfg *config) {
		cfg.debugAjax = enabled
	}
}

// WithMSPField marks wrapped fields with the MSP label class.
func WithMSPField(enabled bool) Option {
	return func(cfg *config) {
		cfg.mspField = enabled
	}
}

// WithRequiredLabelClass overrides the class put on labels of required
// elements.
func WithRequiredLabelClass(class string) Option {
	return WithToken(TokenRequiredLabelClass, class)
}

// WithToken sets a single class token.
func WithToken(key, value string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(value) != "" {
			cfg.tokens[key] = value
		}
	}
}

// WithTemplateOverride renders kind with tpl, which is either a template name
// resolvable by the engine or inline template content.
func WithTemplateOverride(kind Kind, tpl string) Option {
	return func(cfg *config) {
		cfg.overrides[kind] = tpl
	}
}

// WithTemplatesFS layers fsys over the embedded templates.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(cfg *config) {
		cfg.templatesFS = fsys
	}
}

// WithTemplateDir loads override templates from a directory on disk.
func WithTemplateDir(dir string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(dir)
	}
}

// WithAssembler replaces the default pongo2 assembler.
func WithAssembler(assembler *Assembler) Option {
	return func(cfg *config) {
		cfg.assembler = assembler
	}
}

// WithDecrypter configures the service encrypted inputs decrypt through.
func WithDecrypter(decrypter Decrypter) Option {
	return func(cfg *config) {
		cfg.decrypter = decrypter
	}
}

// WithFileLinker configures the service file inputs link through.
func WithFileLinker(files FileLinker) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithRoleLookup configures how DivSelectUserAccount names roles. Without
// one, role ids are shown as numbers.
func WithRoleLookup(roles RoleLookup) Option {
	return func(cfg *config) {
		cfg.roles = roles
	}
}

// WithClock overrides time.Now for date defaults.
func WithClock(clock func() time.Time) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithRandomSuffix overrides the tooltip id suffix source.
func WithRandomSuffix(fn func() string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.randomSuffix = fn
		}
	}
}

// WithOptionList registers a named option list such as "state" or "phone".
func WithOptionList(name string, list []options.Option) Option {
	return func(cfg *config) {
		cfg.optionLists[name] = append([]options.Option(nil), list...)
	}
}

// WithDefaultState preselects a state in city/state/zip composites.
func WithDefaultState(state string) Option {
	return func(cfg *config) {
		cfg.defaultState = strings.TrimSpace(state)
	}
}

// WithTheme resolves class tokens and template overrides from a go-theme
// selection when the builder is created.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.themeSelector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithProfile applies a loaded builder profile.
func WithProfile(p profile.Profile) Option {
	return func(cfg *config) {
		if p.PostArray != nil {
			cfg.postArray = strings.TrimSpace(*p.PostArray)
		}
		setBool(&cfg.uniqueIDs, p.UniqueIDs)
		setBool(&cfg.rawValues, p.RawValues)
		setBool(&cfg.debugAjax, p.DebugAjax)
		setBool(&cfg.mspField, p.MSPField)
		for key, value := range p.IncludeAttributes {
			cfg.include[key] = value
		}
		if p.DefaultState != "" {
			cfg.defaultState = p.DefaultState
		}
		if p.RequiredLabelClass != "" {
			cfg.tokens[TokenRequiredLabelClass] = p.RequiredLabelClass
		}
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

// WithOptionLists registers every list held by a profile store.
func WithOptionLists(lists map[string][]options.Option) Option {
	return func(cfg *config) {
		for name, list := range lists {
			cfg.optionLists[name] = append([]options.Option(nil), list...)
		}
	}
}

// Builder holds immutable rendering configuration. It is safe to share; every
// render starts its own Form.
type Builder struct {
	cfg       config
	assembler *Assembler
}

// New constructs a Builder.
func New(opts ...Option) (*Builder, error) {
	cfg := config{
		logger:       slog.Default(),
		include:      attrs.Set{},
		postArray:    postname.Default,
		tokens:       map[string]string{},
		overrides:    map[Kind]string{},
		clock:        time.Now,
		randomSuffix: defaultRandomSuffix,
		optionLists:  map[string][]options.Option{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.themeSelector != nil {
		if err := applyTheme(&cfg); err != nil {
			return nil, err
		}
	}

	assembler := cfg.assembler
	if assembler == nil {
		var err error
		assembler, err = NewDefaultAssembler(cfg.templatesFS, cfg.templateDir)
		if err != nil {
			return nil, err
		}
	}
	if len(cfg.overrides) > 0 {
		assembler = assembler.WithOverrides(cfg.overrides)
	}

	return &Builder{cfg: cfg, assembler: assembler}, nil
}

// NewForm starts the per-render state for one page or request.
func (b *Builder) NewForm(ctx context.Context) *Form {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Form{
		ctx:       ctx,
		b:         b,
		ids:       identity.NewResolver(b.cfg.uniqueIDs),
		postArray: b.cfg.postArray,
		tooltips:  make(map[string]string),
		scripts:   make(map[string]bool),
		cleared:   make(map[string]bool),
	}
}

// Token returns a class token or fallback when the token is unset.
func (b *Builder) Token(key, fallback string) string {
	if value := b.cfg.tokens[key]; value != "" {
		return value
	}
	return fallback
}

// OptionList returns a named option list.
func (b *Builder) OptionList(name string) []options.Option {
	return append([]options.Option(nil), b.cfg.optionLists[name]...)
}

// Assembler exposes the fragment assembler.
func (b *Builder) Assembler() *Assembler {
	return b.assembler
}

// Logger exposes the builder's logger.
func (b *Builder) Logger() *slog.Logger {
	return b.cfg.logger
}

func applyTheme(cfg *config) error {
	selection, err := cfg.themeSelector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil {
		return fmt.Errorf("fragment: select theme %q: %w", cfg.themeName, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := make(map[string]string, len(manifest.Tokens))
	templates := make(map[string]string, len(manifest.Templates))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	for key, value := range manifest.Templates {
		templates[key] = value
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Templates {
			templates[key] = value
		}
	}

	// Explicit options win over theme values.
	for key, value := range tokens {
		if _, set := cfg.tokens[key]; !set {
			cfg.tokens[key] = value
		}
	}
	for key, value := range templates {
		name, ok := strings.CutPrefix(key, ThemeTemplatePrefix)
		if !ok || value == "" {
			continue
		}
		kind := Kind(name)
		if _, set := cfg.overrides[kind]; !set {
			cfg.overrides[kind] = value
		}
	}
	return nil
}

func defaultRandomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
