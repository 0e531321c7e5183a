// Package dataset fetches the 20 Newsgroups corpus and imports it into the
// local document store.
package dataset

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"golang.org/x/text/encoding/charmap"

	"github.com/happyhackingspace/lexis/corpus"
	"github.com/happyhackingspace/lexis/internal/storage"
)

// DefaultURL is the "bydate" release of the 20 Newsgroups corpus.
const DefaultURL = "http://qwone.com/~jason/20Newsgroups/20news-bydate.tar.gz"

const (
	archiveName = "20news-bydate.tar.gz"
	lockName    = "lexis.lock"
	batchSize   = 500
)

// Fetcher downloads the dataset archive into Dir and imports it into Store.
type Fetcher struct {
	URL    string
	Dir    string
	Remove []string
	Store  *storage.Store
	Client *http.Client

	mu       sync.Mutex
	imported bool
}

// NewFetcher creates a Fetcher with the default URL and HTTP client.
func NewFetcher(dir string, store *storage.Store, remove []string) *Fetcher {
	return &Fetcher{
		URL:    DefaultURL,
		Dir:    dir,
		Remove: remove,
		Store:  store,
		Client: &http.Client{Timeout: 10 * time.Minute},
	}
}

// ArchivePath returns where the downloaded archive is kept.
func (f *Fetcher) ArchivePath() string {
	return filepath.Join(f.Dir, archiveName)
}

// EnsureImported imports the dataset unless a previous import ran to
// completion. Documents left by an interrupted import are discarded first.
// A file lock in Dir keeps concurrent processes from importing twice.
func (f *Fetcher) EnsureImported(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.imported {
		return nil
	}

	unlock, err := f.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	done, err := f.Store.Imported(ctx)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if !done {
		if err := f.Store.Reset(ctx); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		if err := f.fetchAndImport(ctx, false); err != nil {
			return err
		}
	}
	f.imported = true
	return nil
}

// Refresh downloads the archive again and replaces the stored documents.
func (f *Fetcher) Refresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := f.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := f.Store.Reset(ctx); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := f.fetchAndImport(ctx, true); err != nil {
		return err
	}
	f.imported = true
	return nil
}

func (f *Fetcher) lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create data dir: %w", err)
	}
	lock := flock.New(filepath.Join(f.Dir, lockName))
	ok, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("dataset: acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("dataset: another process holds the dataset lock")
	}
	return func() { _ = lock.Unlock() }, nil
}

func (f *Fetcher) fetchAndImport(ctx context.Context, force bool) error {
	archive := f.ArchivePath()
	if _, err := os.Stat(archive); force || err != nil {
		if err := f.download(ctx, archive); err != nil {
			return err
		}
	}

	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("dataset: open archive: %w", err)
	}
	defer func() { _ = file.Close() }()

	count, err := Import(ctx, f.Store, file, f.Remove)
	if err != nil {
		f.discard(archive)
		return err
	}
	if err := f.Store.MarkImported(ctx, count); err != nil {
		f.discard(archive)
		return fmt.Errorf("dataset: %w", err)
	}
	slog.Info("Dataset imported", "documents", count, "db", f.Store.Path())
	return nil
}

// discard drops a failed import so the next run starts over with a fresh
// download instead of serving a partial corpus.
func (f *Fetcher) discard(archive string) {
	if err := f.Store.Reset(context.Background()); err != nil {
		slog.Warn("Failed to reset document store", "error", err)
	}
	if err := os.Remove(archive); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to remove dataset archive", "path", archive, "error", err)
	}
}

func (f *Fetcher) download(ctx context.Context, dest string) error {
	slog.Info("Downloading dataset", "url", f.URL, "dest", dest)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return fmt.Errorf("dataset: build request: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("dataset: download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset: download: HTTP %d", resp.StatusCode)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", tmp, err)
	}
	written, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("dataset: download: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("dataset: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("dataset: rename archive: %w", err)
	}
	slog.Info("Dataset downloaded", "size", humanize.Bytes(uint64(written)))
	return nil
}

// Import reads a 20news-bydate style tar.gz stream and stores every post,
// decoded as Latin-1 and cleaned with the given removals. Entries are named
// <prefix>-<subset>/<group>/<name>.
func Import(ctx context.Context, store *storage.Store, r io.Reader, remove []string) (int, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("dataset: gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	decoder := charmap.ISO8859_1.NewDecoder()
	tr := tar.NewReader(gr)
	batch := make([]storage.Record, 0, batchSize)
	count := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := store.Insert(ctx, batch); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		count += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("dataset: read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		subset, group, name, ok := splitEntry(hdr.Name)
		if !ok {
			continue
		}
		raw, err := io.ReadAll(tr)
		if err != nil {
			return count, fmt.Errorf("dataset: read %s: %w", hdr.Name, err)
		}
		text, err := decoder.Bytes(raw)
		if err != nil {
			return count, fmt.Errorf("dataset: decode %s: %w", hdr.Name, err)
		}
		batch = append(batch, storage.Record{
			Subset: subset,
			Group:  group,
			Name:   name,
			Text:   Clean(string(text), remove),
		})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// splitEntry parses "20news-bydate-train/sci.space/60151".
func splitEntry(name string) (subset, group, file string, ok bool) {
	parts := strings.Split(path.Clean(name), "/")
	if len(parts) != 3 {
		return "", "", "", false
	}
	root := parts[0]
	switch {
	case strings.HasSuffix(root, "-train"):
		subset = "train"
	case strings.HasSuffix(root, "-test"):
		subset = "test"
	default:
		return "", "", "", false
	}
	return subset, parts[1], parts[2], true
}

// Loader returns a corpus.Loader for the posts of groups in subset, importing
// the dataset first if needed.
func (f *Fetcher) Loader(subset string, groups []string) corpus.Loader {
	return func(ctx context.Context) ([]corpus.Document, error) {
		if err := f.EnsureImported(ctx); err != nil {
			return nil, err
		}
		records, err := f.Store.Documents(ctx, subset, groups)
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		docs := make([]corpus.Document, len(records))
		for i, r := range records {
			docs[i] = corpus.Document{
				ID:   r.Subset + "/" + r.Group + "/" + r.Name,
				Text: r.Text,
			}
		}
		return docs, nil
	}
}
