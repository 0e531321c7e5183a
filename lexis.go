// Package lexis scores how characteristic a word is of a document category.
//
// A category's documents are compared with the pooled documents of every other
// category. Each vocabulary word gets its raw frequency inside the category,
// the mutual information between its per-document counts and the category
// label, and the chi-squared association with that label.
//
//	src := corpus.NewDirSource("documents")
//	a := lexis.New(src)
//	res, _ := a.Score(ctx, "space", "rocket", 5)
//	fmt.Println(res.InputWord.MutualInformation)
//	fmt.Println(res.TopWords.ChiSquared[0].Word)
package lexis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/happyhackingspace/lexis/corpus"
	"github.com/happyhackingspace/lexis/internal/stats"
	"github.com/happyhackingspace/lexis/internal/vectorizer"
)

var (
	ErrUnknownCategory           = corpus.ErrUnknownCategory
	ErrMissingDocumentsDirectory = corpus.ErrMissingDocumentsDirectory
	ErrEmptyCorpus               = vectorizer.ErrEmptyCorpus
	ErrInvalidCounts             = stats.ErrInvalidCounts
)

// DefaultTopK is the length of each ranked list when topK is not positive.
const DefaultTopK = stats.DefaultTopK

// Analyzer runs the scoring pipeline over a document source.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	src       corpus.Source
	observer  Observer
	stopWords map[string]bool
	minDF     int
	topK      int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithObserver sets the observer notified at each pipeline stage.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) { a.observer = o }
}

// WithStopWords replaces the English stop word list. A nil set disables filtering.
func WithStopWords(words map[string]bool) Option {
	return func(a *Analyzer) { a.stopWords = words }
}

// WithMinDF drops words found in fewer than n documents of the combined corpus.
func WithMinDF(n int) Option {
	return func(a *Analyzer) { a.minDF = n }
}

// WithDefaultTopK sets the list length used when Score is called with topK <= 0.
func WithDefaultTopK(k int) Option {
	return func(a *Analyzer) { a.topK = k }
}

// New creates an Analyzer reading documents from src.
func New(src corpus.Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		src:       src,
		stopWords: vectorizer.EnglishStopWords(),
		minDF:     1,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Categories returns the categories known to the source.
func (a *Analyzer) Categories(ctx context.Context) ([]string, error) {
	cats, err := a.src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("lexis: %w", err)
	}
	return cats, nil
}

// Score computes the statistics of word for category and the top topK words
// by each statistic.
func (a *Analyzer) Score(ctx context.Context, category, word string, topK int) (*Result, error) {
	if topK <= 0 {
		topK = a.topK
	}
	run := &run{id: uuid.NewString(), category: category, observer: a.observer, start: time.Now()}

	in, out, err := corpus.Partition(ctx, a.src, category)
	if err != nil {
		return nil, fmt.Errorf("lexis: %w", err)
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("lexis: no documents in category %q: %w", category, ErrEmptyCorpus)
	}
	run.notify(Event{
		Stage:      StageLoaded,
		Documents:  len(in) + len(out),
		InCategory: len(in),
		Message:    fmt.Sprintf("Fetched %d documents (%d in %q, %d in other categories).", len(in)+len(out), len(in), category, len(out)),
	})

	inTexts := corpus.Texts(in)
	texts := append(append(make([]string, 0, len(in)+len(out)), inTexts...), corpus.Texts(out)...)
	labels := make([]int, len(texts))
	for i := range in {
		labels[i] = 1
	}

	cv := vectorizer.NewCountVectorizer(a.stopWords, a.minDF)
	matrix, err := cv.FitTransform(texts)
	if err != nil {
		return nil, fmt.Errorf("lexis: %w", err)
	}
	run.notify(Event{
		Stage:      StageVectorized,
		Documents:  matrix.NumRows(),
		InCategory: len(in),
		Features:   matrix.Cols,
		Message:    fmt.Sprintf("Vectorized to %d documents and %d features.", matrix.NumRows(), matrix.Cols),
	})

	// Frequencies come from the category's rows only, which lead the matrix.
	freq := stats.Frequency(matrix.Slice(0, len(in)))
	mi, err := stats.MutualInformation(matrix, labels)
	if err != nil {
		return nil, fmt.Errorf("lexis: mutual information: %w", err)
	}
	chi2, err := stats.ChiSquared(matrix, labels)
	if err != nil {
		return nil, fmt.Errorf("lexis: chi-squared: %w", err)
	}
	table, err := stats.NewTable(cv.Terms(), freq, mi, chi2)
	if err != nil {
		return nil, fmt.Errorf("lexis: %w", err)
	}
	run.notify(Event{
		Stage:    StageScored,
		Features: table.Len(),
		Message:  fmt.Sprintf("Calculated frequency, mutual information and chi-squared for %d words.", table.Len()),
	})

	res := &Result{
		Category: category,
		TopWords: TopWords{
			Frequency:         table.Rank(stats.ByFrequency, topK),
			MutualInformation: table.Rank(stats.ByMutualInformation, topK),
			ChiSquared:        table.Rank(stats.ByChiSquared, topK),
		},
		InputWord: table.Lookup(word),
	}
	run.notify(Event{
		Stage:   StageRanked,
		Message: fmt.Sprintf("Ranked top %d words; %q has frequency %d.", topK, res.InputWord.Word, res.InputWord.Frequency),
	})
	return res, nil
}

// Analyze is Score that never fails: errors are reported in Result.Error with
// every numeric field left at zero.
func (a *Analyzer) Analyze(ctx context.Context, category, word string, topK int) Result {
	res, err := a.Score(ctx, category, word, topK)
	if err != nil {
		return ErrorResult(category, word, err)
	}
	return *res
}
