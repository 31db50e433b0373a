// Package preview serves form definitions as HTML pages and echoes decoded
// submissions, for checking definitions in a browser.
package preview

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/lookup"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/postname"
	"github.com/goliatone/go-formhtml/pkg/profile"
	"github.com/goliatone/go-formhtml/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Server renders definitions from a formdef.Store.
type Server struct {
	store    *formdef.Store
	profiles *profile.Store
	base     []fragment.Option
	querier  options.Querier
	actor    fragment.Actor
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	pages    *gotemplate.Engine
	router   chi.Router

	mu       sync.Mutex
	builders map[string]*fragment.Builder
}

// Option configures a Server.
type Option func(*Server)

// WithProfiles resolves each definition's profile from store.
func WithProfiles(store *profile.Store) Option {
	return func(s *Server) {
		s.profiles = store
	}
}

// WithBuilderOptions sets the options every fragment.Builder starts from.
func WithBuilderOptions(opts ...fragment.Option) Option {
	return func(s *Server) {
		s.base = append(s.base, opts...)
	}
}

// WithQuerier supplies the database query-backed fields read from.
func WithQuerier(q options.Querier) Option {
	return func(s *Server) {
		s.querier = q
	}
}

// WithActor sets the user verify and obsolete widgets render for.
func WithActor(actor fragment.Actor) Option {
	return func(s *Server) {
		s.actor = actor
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a Server. Metrics go to a private registry exposed at
// /metrics.
func New(store *formdef.Store, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("preview: store is nil")
	}
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}
	pages, err := gotemplate.New(gotemplate.WithFS(sub))
	if err != nil {
		return nil, fmt.Errorf("preview: template engine: %w", err)
	}

	s := &Server{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: prometheus.NewRegistry(),
		pages:    pages,
		builders: make(map[string]*fragment.Builder),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.metrics = newMetrics(s.registry)
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/forms", s.handleList)
	r.Get("/forms/{id}", s.handleForm)
	r.Post("/forms/{id}", s.handleSubmit)
	r.Handle("/options/{list}", lookup.NewHandler(s.optionList,
		lookup.WithListName(func(r *http.Request) string { return chi.URLParam(r, "list") }),
	))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("preview: request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

type formSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) summaries() []formSummary {
	ids := s.store.IDs()
	out := make([]formSummary, 0, len(ids))
	for _, id := range ids {
		def, err := s.store.Lookup(id)
		if err != nil {
			continue
		}
		title := def.Title
		if title == "" {
			title = def.ID
		}
		out = append(out, formSummary{ID: def.ID, Title: title})
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	summaries := s.summaries()
	forms := make([]map[string]any, len(summaries))
	for i, summary := range summaries {
		forms[i] = map[string]any{"id": summary.ID, "title": summary.Title}
	}
	page, err := s.pages.RenderTemplate("index", map[string]any{"forms": forms})
	if err != nil {
		s.logger.Error("preview: render index", "error", err)
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", "could not render index")
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.summaries())
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	builder, err := s.builder(def.Profile)
	if err != nil {
		s.logger.Error("preview: builder", "form", def.ID, "profile", def.Profile, "error", err)
		writeError(w, http.StatusInternalServerError, "PROFILE_FAILED", err.Error())
		return
	}

	values := make(map[string]string)
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			values[key] = vals[len(vals)-1]
		}
	}
	form := builder.NewForm(r.Context())
	body, err := formdef.RenderPage(r.Context(), form, def,
		formdef.WithQuerier(s.querier),
		formdef.WithActor(s.actor),
		formdef.WithValues(values),
	)
	if err != nil {
		s.metrics.renderErrors.WithLabelValues(def.ID).Inc()
		s.logger.Error("preview: render form", "form", def.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}

	title := def.Title
	if title == "" {
		title = def.ID
	}
	page, err := s.pages.RenderTemplate("layout", map[string]any{"title": title, "body": body})
	if err != nil {
		s.metrics.renderErrors.WithLabelValues(def.ID).Inc()
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", err.Error())
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	def, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", err.Error())
		return
	}
	s.metrics.submissions.WithLabelValues(def.ID).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"form":   def.ID,
		"values": postname.Decode(r.PostForm),
	})
}

// optionList serves the lists of the builder for the profile query
// parameter.
func (s *Server) optionList(r *http.Request, name string) ([]options.Option, bool) {
	builder, err := s.builder(r.URL.Query().Get("profile"))
	if err != nil {
		s.logger.Warn("preview: option list", "list", name, "error", err)
		return nil, false
	}
	list := builder.OptionList(name)
	return list, list != nil
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (formdef.Definition, bool) {
	def, err := s.store.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return formdef.Definition{}, false
	}
	return def, true
}

// builder returns the cached builder for a profile. The empty profile uses
// the base options alone.
func (s *Server) builder(name string) (*fragment.Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.builders[name]; ok {
		return b, nil
	}

	opts := append([]fragment.Option{fragment.WithLogger(s.logger)}, s.base...)
	if s.profiles != nil {
		opts = append(opts, fragment.WithOptionLists(s.profiles.OptionLists()))
	}
	if name != "" {
		if s.profiles == nil {
			return nil, fmt.Errorf("preview: profile %q requested but no profiles loaded", name)
		}
		p, err := s.profiles.Lookup(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fragment.WithProfile(p))
	}
	b, err := fragment.New(opts...)
	if err != nil {
		return nil, err
	}
	s.builders[name] = b
	return b, nil
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}
