package config

import "github.com/happyhackingspace/lexis/internal/dataset"

const (
	defaultDataDir       = "~/.local/share/lexis"
	defaultDatasetSubset = "train"
	defaultTopK          = 5
	defaultMinDF         = 1
	defaultServerAddr    = "127.0.0.1:8080"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

// DefaultCategories returns the category to newsgroup mapping used when the
// configuration file defines no categories.
func DefaultCategories() map[string]Category {
	return map[string]Category{
		"space":   {Newsgroups: []string{"sci.space"}},
		"sports":  {Newsgroups: []string{"rec.sport.baseball", "rec.sport.hockey"}},
		"animals": {Newsgroups: []string{"sci.med"}},
	}
}

// Default returns a Config populated with repository defaults. Categories is
// left empty so that a configured table replaces the defaults instead of
// merging with them; normalize fills it in.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Dataset: Dataset{
			URL:    dataset.DefaultURL,
			Subset: defaultDatasetSubset,
			Remove: []string{dataset.RemoveHeaders, dataset.RemoveFooters, dataset.RemoveQuotes},
		},
		Score: Score{
			TopK:  defaultTopK,
			MinDF: defaultMinDF,
		},
		Server: Server{
			Addr: defaultServerAddr,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
