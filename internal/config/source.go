package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/happyhackingspace/lexis/corpus"
	"github.com/happyhackingspace/lexis/internal/dataset"
	"github.com/happyhackingspace/lexis/internal/storage"
)

// ErrNoDataset is returned when a newsgroup category is loaded from a Source
// built without a dataset fetcher.
var ErrNoDataset = errors.New("no dataset fetcher configured")

// NewFetcher returns a dataset fetcher for the configured URL, data directory,
// and removals, importing into store.
func (c *Config) NewFetcher(store *storage.Store) *dataset.Fetcher {
	f := dataset.NewFetcher(c.Paths.DataDir, store, c.Dataset.Remove)
	f.URL = c.Dataset.URL
	return f
}

// NeedsDataset reports whether any configured category reads from the dataset.
func (c *Config) NeedsDataset() bool {
	if c.Paths.DocumentsDir != "" {
		return false
	}
	for _, cat := range c.Categories {
		if len(cat.Newsgroups) > 0 {
			return true
		}
	}
	return false
}

// Source builds the document source: a directory tree when
// paths.documents_dir is set, otherwise a catalog over the configured
// categories. When f is nil, newsgroup categories are still listed but
// loading them fails with ErrNoDataset.
func (c *Config) Source(f *dataset.Fetcher) corpus.Source {
	if c.Paths.DocumentsDir != "" {
		return corpus.NewDirSource(c.Paths.DocumentsDir)
	}
	catalog := corpus.NewCatalog()
	for name, cat := range c.Categories {
		if cat.Dir != "" {
			catalog.Add(name, corpus.DirLoader(cat.Dir))
			continue
		}
		if f == nil {
			catalog.Add(name, missingDataset(name))
			continue
		}
		catalog.Add(name, f.Loader(c.Dataset.Subset, cat.Newsgroups))
	}
	return catalog
}

func missingDataset(category string) corpus.Loader {
	return func(context.Context) ([]corpus.Document, error) {
		return nil, fmt.Errorf("config: category %q reads newsgroups: %w", category, ErrNoDataset)
	}
}
