package curriculum

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

//go:embed curriculum.schema.json defaults/*.yaml
var bundledFS embed.FS

// Source yields curriculum entries for the catalog.
type Source interface {
	Name() string
	Entries(ctx context.Context) ([]Entry, error)
}

// Load reads every source in order and builds the catalog. An entry from a
// later source replaces an earlier entry with the same key.
func Load(ctx context.Context, sources ...Source) (*Catalog, error) {
	merged := make(map[Key]Entry)
	var order []Key

	for _, src := range sources {
		entries, err := src.Entries(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading curriculum from %s: %w", src.Name(), err)
		}
		for _, e := range entries {
			e.Key = NewKey(e.Key.Board, e.Key.ClassLevel, e.Key.Subject)
			if _, exists := merged[e.Key]; exists {
				slog.Info("curriculum overridden", "key", e.Key.String(), "source", src.Name())
			} else {
				order = append(order, e.Key)
			}
			merged[e.Key] = e
		}
		slog.Debug("curriculum source read", "source", src.Name(), "entries", len(entries))
	}

	entries := make([]Entry, 0, len(order))
	for _, k := range order {
		entries = append(entries, merged[k])
	}
	catalog, err := NewCatalog(entries...)
	if err != nil {
		return nil, err
	}

	slog.Info("curriculum loaded", "entries", catalog.Len(), "sources", len(sources))
	return catalog, nil
}

// Bundled returns the source of curriculum documents compiled into the binary.
func Bundled() Source {
	return fsSource{name: "bundled", fsys: bundledFS, root: "defaults"}
}

// Dir returns a source that walks rootDir for curriculum documents.
// Files that are not curriculum documents are skipped; invalid ones are errors.
func Dir(rootDir string) Source {
	return fsSource{name: rootDir, fsys: os.DirFS(rootDir), root: "."}
}

type fsSource struct {
	name string
	fsys fs.FS
	root string
}

func (s fsSource) Name() string { return s.name }

func (s fsSource) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := fs.WalkDir(s.fsys, s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !isDocumentPath(path) {
			return nil
		}

		data, err := fs.ReadFile(s.fsys, path)
		if err != nil {
			return err
		}
		if !IsDocument(data) {
			slog.Debug("skipping non-curriculum file", "path", path)
			return nil
		}

		entry, err := ParseDocument(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func isDocumentPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
