package formdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDefinitionNotFound is returned by Store.Lookup for unknown ids.
var ErrDefinitionNotFound = errors.New("formdef: definition not found")

// Store holds the definitions found by LoadFS.
type Store struct {
	defs map[string]Definition
}

type documentFile struct {
	Forms []Definition `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses JSON/YAML definition files. A file holds
// either a single definition or a "forms" list. A nil fsys yields an empty
// store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{defs: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if existing, dup := store.defs[def.ID]; dup {
				return fmt.Errorf("formdef: duplicate form %q (files %s and %s)", def.ID, existing.Source, path)
			}
			store.defs[def.ID] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes one document. JSON is tried first, then YAML.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: file %s is empty", source)
	}
	defs, err := decode(data, source)
	if err != nil {
		return nil, err
	}
	for i := range defs {
		defs[i].ID = strings.TrimSpace(defs[i].ID)
		defs[i].Source = source
		if defs[i].ID == "" {
			return nil, fmt.Errorf("formdef: file %s defines a form without an id", source)
		}
		for j, field := range defs[i].Fields {
			if field.Name == "" && needsName(field.Kind) {
				return nil, fmt.Errorf("formdef: form %q field %d has no name", defs[i].ID, j)
			}
		}
	}
	return defs, nil
}

func decode(data []byte, source string) ([]Definition, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return fromDocument(doc, func(v any) error { return json.Unmarshal(data, v) }, source)
	}
	doc = nil
	if err := yaml.Unmarshal(data, &doc); err == nil && doc != nil {
		return fromDocument(doc, func(v any) error { return yaml.Unmarshal(data, v) }, source)
	}
	return nil, fmt.Errorf("formdef: parse %s: invalid JSON or YAML", source)
}

func fromDocument(raw map[string]any, unmarshal func(any) error, source string) ([]Definition, error) {
	if _, ok := raw["forms"]; ok {
		var doc documentFile
		if err := unmarshal(&doc); err != nil {
			return nil, fmt.Errorf("formdef: parse %s: %w", source, err)
		}
		return doc.Forms, nil
	}
	var def Definition
	if err := unmarshal(&def); err != nil {
		return nil, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	return []Definition{def}, nil
}

// Lookup returns the definition with id.
func (s *Store) Lookup(id string) (Definition, error) {
	if s != nil {
		if def, ok := s.defs[strings.TrimSpace(id)]; ok {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %q", ErrDefinitionNotFound, id)
}

// IDs lists definition ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.defs))
	for id := range s.defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Add registers def, replacing any definition with the same id.
func (s *Store) Add(def Definition) {
	if s.defs == nil {
		s.defs = make(map[string]Definition)
	}
	s.defs[def.ID] = def
}

func needsName(kind string) bool {
	switch strings.ToLower(kind) {
	case KindHeader, KindMessage, KindName, KindPhone, KindCityStateZip, KindAddress, KindVerify, KindObsolete, KindSubmit:
		return false
	default:
		return true
	}
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
