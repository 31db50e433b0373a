package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formhtml/pkg/formdef"
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/options"
	"github.com/goliatone/go-formhtml/pkg/profile"
)

type rootOptions struct {
	formsDir    string
	profilesDir string
	dbPath      string
	logLevel    string
}

type env struct {
	forms    *formdef.Store
	profiles *profile.Store
	db       *sql.DB
	logger   *slog.Logger
}

func (o *rootOptions) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(o.logLevel))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// load reads the definition and profile directories and opens the database.
// Callers must close the returned env.
func (o *rootOptions) load() (*env, error) {
	e := &env{logger: o.logger()}

	forms, err := formdef.LoadFS(os.DirFS(o.formsDir))
	if err != nil {
		return nil, fmt.Errorf("load forms from %s: %w", o.formsDir, err)
	}
	e.forms = forms

	if o.profilesDir != "" {
		e.profiles, err = profile.LoadFS(os.DirFS(o.profilesDir))
	} else {
		e.profiles, err = profile.LoadFS(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	if o.dbPath != "" {
		db, err := sql.Open("sqlite", o.dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", o.dbPath, err)
		}
		e.db = db
	}
	return e, nil
}

func (e *env) Close() error {
	if e == nil || e.db == nil {
		return nil
	}
	return e.db.Close()
}

// querier is nil when no database was configured.
func (e *env) querier() options.Querier {
	if e.db == nil {
		return nil
	}
	return e.db
}

// builder returns a builder configured for the named profile.
func (e *env) builder(name string) (*fragment.Builder, error) {
	opts := []fragment.Option{
		fragment.WithLogger(e.logger),
		fragment.WithOptionLists(e.profiles.OptionLists()),
	}
	if name != "" {
		p, err := e.profiles.Lookup(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fragment.WithProfile(p))
	}
	return fragment.New(opts...)
}
