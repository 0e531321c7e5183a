// Package corpus supplies the documents a category is scored against.
//
// A Source knows a set of category names and yields the ordered documents of
// each. Partition turns a Source into the two document sets the scorer needs:
// the requested category and the pooled documents of every other category.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownCategory is returned for a category the source does not know.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrMissingDocumentsDirectory is returned when a category's directory does not exist.
	ErrMissingDocumentsDirectory = errors.New("documents directory not found")
)

// Document is a single text blob with the category it was loaded for.
type Document struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// Source yields documents per category.
type Source interface {
	// Categories returns the known category names in sorted order.
	Categories(ctx context.Context) ([]string, error)
	// Documents returns the ordered documents of category.
	Documents(ctx context.Context, category string) ([]Document, error)
}

// Texts returns the text of each document, in order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

// Partition returns the documents of category and, separately, the documents of
// every other category pooled in sorted category order.
func Partition(ctx context.Context, src Source, category string) (in, out []Document, err error) {
	cats, err := src.Categories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: list categories: %w", err)
	}
	sorted := append([]string(nil), cats...)
	sort.Strings(sorted)

	known := false
	for _, c := range sorted {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		return nil, nil, fmt.Errorf("corpus: %q (known: %v): %w", category, sorted, ErrUnknownCategory)
	}

	for _, c := range sorted {
		docs, err := src.Documents(ctx, c)
		if err != nil {
			return nil, nil, fmt.Errorf("corpus: load %q: %w", c, err)
		}
		if c == category {
			in = docs
		} else {
			out = append(out, docs...)
		}
	}
	return in, out, nil
}

// MemorySource serves documents held in memory.
type MemorySource struct {
	docs map[string][]Document
}

// NewMemorySource builds a source from category → texts. Document IDs are
// "<category>/<index>".
func NewMemorySource(texts map[string][]string) *MemorySource {
	docs := make(map[string][]Document, len(texts))
	for cat, ts := range texts {
		ds := make([]Document, len(ts))
		for i, t := range ts {
			ds[i] = Document{ID: fmt.Sprintf("%s/%d", cat, i), Text: t, Category: cat}
		}
		docs[cat] = ds
	}
	return &MemorySource{docs: docs}
}

// Categories implements Source.
func (m *MemorySource) Categories(context.Context) ([]string, error) {
	cats := make([]string, 0, len(m.docs))
	for c := range m.docs {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats, nil
}

// Documents implements Source.
func (m *MemorySource) Documents(_ context.Context, category string) ([]Document, error) {
	docs, ok := m.docs[category]
	if !ok {
		return nil, fmt.Errorf("corpus: %q: %w", category, ErrUnknownCategory)
	}
	return docs, nil
}
