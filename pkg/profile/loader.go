package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formhtml/pkg/options"
)

// ErrProfileNotFound is returned by Store.Lookup for unknown names.
var ErrProfileNotFound = errors.New("profile: not found")

// Profile is a named builder configuration. PostArray and the switches are
// pointers so that an explicit empty or false value can be told apart from an
// unset one; unset fields leave the builder's setting alone.
type Profile struct {
	Name               string            `json:"-" yaml:"-"`
	Source             string            `json:"-" yaml:"-"`
	PostArray          *string           `json:"postArray,omitempty" yaml:"postArray,omitempty"`
	UniqueIDs          *bool             `json:"uniqueIds,omitempty" yaml:"uniqueIds,omitempty"`
	IncludeAttributes  map[string]string `json:"includeAttributes,omitempty" yaml:"includeAttributes,omitempty"`
	DebugAjax          *bool             `json:"debugAjax,omitempty" yaml:"debugAjax,omitempty"`
	RawValues          *bool             `json:"rawValues,omitempty" yaml:"rawValues,omitempty"`
	MSPField           *bool             `json:"mspField,omitempty" yaml:"mspField,omitempty"`
	DefaultState       string            `json:"defaultState,omitempty" yaml:"defaultState,omitempty"`
	RequiredLabelClass string            `json:"requiredLabelClass,omitempty" yaml:"requiredLabelClass,omitempty"`
}

// Store holds every profile and option list found by LoadFS.
type Store struct {
	profiles map[string]Profile
	lists    map[string][]options.Option
}

type documentFile struct {
	Profiles    map[string]Profile          `json:"profiles" yaml:"profiles"`
	OptionLists map[string][]options.Option `json:"optionLists" yaml:"optionLists"`
}

// LoadFS walks fsys and parses JSON/YAML profile documents. A nil fsys yields
// an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse loads a single document.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Lookup returns the named profile.
func (s *Store) Lookup(name string) (Profile, error) {
	if s != nil {
		if p, ok := s.profiles[strings.TrimSpace(name)]; ok {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Names lists profile names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OptionLists returns a copy of every option list.
func (s *Store) OptionLists() map[string][]options.Option {
	out := make(map[string][]options.Option)
	if s == nil {
		return out
	}
	for name, list := range s.lists {
		out[name] = append([]options.Option(nil), list...)
	}
	return out
}

func newStore() *Store {
	return &Store{
		profiles: make(map[string]Profile),
		lists:    make(map[string][]options.Option),
	}
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawName, p := range doc.Profiles {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("profile: file %s defines a profile with an empty name", source)
		}
		if existing, dup := s.profiles[name]; dup {
			return fmt.Errorf("profile: duplicate profile %q (files %s and %s)", name, existing.Source, source)
		}
		p.Name = name
		p.Source = source
		s.profiles[name] = p
	}
	for rawName, list := range doc.OptionLists {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("profile: file %s defines an option list with an empty name", source)
		}
		if _, dup := s.lists[name]; dup {
			return fmt.Errorf("profile: duplicate option list %q (file %s)", name, source)
		}
		s.lists[name] = append([]options.Option(nil), list...)
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("profile: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("profile: parse %s: invalid JSON or YAML", source)
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
