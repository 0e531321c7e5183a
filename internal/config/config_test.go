package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/happyhackingspace/lexis/corpus"
	"github.com/happyhackingspace/lexis/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != filepath.Join(home, ".config", "lexis", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.DataDir != filepath.Join(home, ".local", "share", "lexis") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Score.TopK != 5 || cfg.Score.MinDF != 1 {
		t.Fatalf("unexpected score defaults %+v", cfg.Score)
	}
	if !reflect.DeepEqual(cfg.Categories, config.DefaultCategories()) {
		t.Fatalf("unexpected categories %+v", cfg.Categories)
	}
	if !cfg.NeedsDataset() {
		t.Fatal("default categories should need the dataset")
	}
	if cfg.StorePath() != filepath.Join(cfg.Paths.DataDir, "newsgroups.db") {
		t.Fatalf("unexpected store path %q", cfg.StorePath())
	}
}

func TestLoadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "lexis.toml")
	data := `
[paths]
data_dir = "~/lexis-data"

[dataset]
subset = "ALL"
remove = ["headers"]

[categories.space]
newsgroups = ["sci.space"]

[categories.notes]
dir = "~/notes"

[score]
top_k = 10

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q, exists = %v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(home, "lexis-data") {
		t.Errorf("data dir = %q", cfg.Paths.DataDir)
	}
	if cfg.Dataset.Subset != "all" {
		t.Errorf("subset = %q, want all", cfg.Dataset.Subset)
	}
	if len(cfg.Categories) != 2 {
		t.Errorf("configured categories should replace the defaults, got %v", cfg.Categories)
	}
	if cfg.Categories["notes"].Dir != filepath.Join(home, "notes") {
		t.Errorf("notes dir = %q", cfg.Categories["notes"].Dir)
	}
	if cfg.Score.TopK != 10 || cfg.Score.MinDF != 1 {
		t.Errorf("score = %+v", cfg.Score)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"top_k too large", "[score]\ntop_k = 5000", "score.top_k"},
		{"min_df zero", "[score]\nmin_df = 0", "score.min_df"},
		{"bad subset", "[dataset]\nsubset = \"dev\"", "dataset.subset"},
		{"bad removal", "[dataset]\nremove = [\"signatures\"]", "dataset.remove"},
		{"bad url", "[dataset]\nurl = \"not a url\"", "dataset.url"},
		{"bad log level", "[logging]\nlevel = \"loud\"", "logging.level"},
		{"both sources", "[categories.space]\nnewsgroups = [\"sci.space\"]\ndir = \"/tmp\"", "exactly one"},
		{"no source", "[categories.space]\nnewsgroups = []", "exactly one"},
		{"syntax", "[score\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSourceFromDocumentsDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "space"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "space", "a.txt"), []byte("rocket"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse([]byte("[paths]\ndocuments_dir = \"" + filepath.ToSlash(root) + "\""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NeedsDataset() {
		t.Error("documents_dir should not need the dataset")
	}
	cats, err := cfg.Source(nil).Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cats, []string{"space"}) {
		t.Errorf("Categories = %v", cats)
	}
}

func TestSourceFromCategoryDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("rocket fuel"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse([]byte("[categories.space]\ndir = \"" + filepath.ToSlash(dir) + "\""))
	if err != nil {
		t.Fatal(err)
	}
	docs, err := cfg.Source(nil).Documents(context.Background(), "space")
	if err != nil {
		t.Fatal(err)
	}
	if got := corpus.Texts(docs); len(got) != 1 || got[0] != "rocket fuel" {
		t.Errorf("texts = %q", got)
	}
}

func TestSourceWithoutFetcher(t *testing.T) {
	cfg, err := config.Parse([]byte("[categories.space]\nnewsgroups = [\"sci.space\"]"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.NeedsDataset() {
		t.Fatal("newsgroup category should need the dataset")
	}
	src := cfg.Source(nil)
	cats, err := src.Categories(context.Background())
	if err != nil || !reflect.DeepEqual(cats, []string{"space"}) {
		t.Errorf("Categories = %v, %v", cats, err)
	}
	if _, err := src.Documents(context.Background(), "space"); !errors.Is(err, config.ErrNoDataset) {
		t.Errorf("Documents error = %v, want ErrNoDataset", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
