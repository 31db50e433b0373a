package openapi

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source identifies where an OpenAPI document lives.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source naming a file inside the importer's fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

func read(ctx context.Context, fsys fs.FS, src Source) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindFS:
		if fsys == nil {
			return nil, fmt.Errorf("openapi: filesystem is not configured")
		}
		data, err := fs.ReadFile(fsys, src.Location())
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", src.Location(), err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("openapi: unsupported source kind %q", src.Kind())
	}
}
