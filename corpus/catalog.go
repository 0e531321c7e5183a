package corpus

import (
	"context"
	"fmt"
	"sort"
)

// Loader returns the ordered documents of one category.
type Loader func(ctx context.Context) ([]Document, error)

// DirLoader loads every file in dir as a document.
func DirLoader(dir string) Loader {
	return func(ctx context.Context) ([]Document, error) {
		return ReadDir(ctx, dir)
	}
}

// Catalog is a Source whose categories each resolve to their own Loader,
// so directory-backed and dataset-backed categories can be mixed.
type Catalog struct {
	loaders map[string]Loader
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{loaders: make(map[string]Loader)}
}

// Add registers the loader for category, replacing any previous one.
func (c *Catalog) Add(category string, l Loader) {
	c.loaders[category] = l
}

// Categories implements Source.
func (c *Catalog) Categories(context.Context) ([]string, error) {
	cats := make([]string, 0, len(c.loaders))
	for name := range c.loaders {
		cats = append(cats, name)
	}
	sort.Strings(cats)
	return cats, nil
}

// Documents implements Source.
func (c *Catalog) Documents(ctx context.Context, category string) ([]Document, error) {
	l, ok := c.loaders[category]
	if !ok {
		return nil, fmt.Errorf("corpus: %q: %w", category, ErrUnknownCategory)
	}
	docs, err := l(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Category = category
	}
	return docs, nil
}
