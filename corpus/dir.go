package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirSource reads a directory laid out as <root>/<category>/<one file per document>.
type DirSource struct {
	Root string
}

// NewDirSource creates a DirSource rooted at root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

// Categories implements Source. Every non-hidden subdirectory of Root is a category.
func (s *DirSource) Categories(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("corpus: %s: %w", s.Root, ErrMissingDocumentsDirectory)
		}
		return nil, fmt.Errorf("corpus: read %s: %w", s.Root, err)
	}
	var cats []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			cats = append(cats, e.Name())
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// Documents implements Source.
func (s *DirSource) Documents(ctx context.Context, category string) ([]Document, error) {
	if category == "" || strings.ContainsAny(category, `/\`) || category == "." || category == ".." {
		return nil, fmt.Errorf("corpus: %q: %w", category, ErrUnknownCategory)
	}
	docs, err := ReadDir(ctx, filepath.Join(s.Root, category))
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Category = category
	}
	return docs, nil
}

// ReadDir loads every regular, non-hidden file directly inside dir as one
// document, in file name order.
func ReadDir(ctx context.Context, dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("corpus: %s: %w", dir, ErrMissingDocumentsDirectory)
		}
		return nil, fmt.Errorf("corpus: read %s: %w", dir, err)
	}

	// os.ReadDir already sorts by file name.
	var docs []Document
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("corpus: read %s: %w", path, err)
		}
		text, err := Decode(e.Name(), data)
		if err != nil {
			slog.Warn("Cannot decode document", "path", path, "error", err)
			continue
		}
		docs = append(docs, Document{ID: path, Text: text})
	}
	slog.Debug("Documents loaded", "dir", dir, "count", len(docs))
	return docs, nil
}
