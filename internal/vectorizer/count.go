package vectorizer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/happyhackingspace/lexis/internal/textutil"
)

// ErrEmptyCorpus is returned when there is nothing to build a vocabulary from.
var ErrEmptyCorpus = errors.New("empty corpus")

// CountVectorizer converts text to token count vectors.
type CountVectorizer struct {
	Vocabulary map[string]int
	StopWords  map[string]bool
	MinDF      int

	terms []string
}

// NewCountVectorizer creates a CountVectorizer. A nil stopWords set disables filtering.
func NewCountVectorizer(stopWords map[string]bool, minDF int) *CountVectorizer {
	if minDF < 1 {
		minDF = 1
	}
	return &CountVectorizer{
		StopWords: stopWords,
		MinDF:     minDF,
	}
}

// NewEnglishCountVectorizer creates a CountVectorizer with English stop words and min_df=1.
func NewEnglishCountVectorizer() *CountVectorizer {
	return NewCountVectorizer(EnglishStopWords(), 1)
}

// analyze extracts the folded, filtered word tokens of text.
func (cv *CountVectorizer) analyze(text string) []string {
	return textutil.Words(text, cv.StopWords)
}

// Fit builds the vocabulary from the union of tokens across corpus.
func (cv *CountVectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("vectorizer: no documents: %w", ErrEmptyCorpus)
	}

	// Count document frequency for each term
	dfCounts := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, f := range cv.analyze(doc) {
			if !seen[f] {
				dfCounts[f]++
				seen[f] = true
			}
		}
	}

	terms := make([]string, 0, len(dfCounts))
	for term, count := range dfCounts {
		if count >= cv.MinDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return fmt.Errorf("vectorizer: empty vocabulary, documents only contain stop words: %w", ErrEmptyCorpus)
	}
	// Sort terms for deterministic ordering
	sort.Strings(terms)

	cv.terms = terms
	cv.Vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		cv.Vocabulary[term] = i
	}
	return nil
}

// FitTransform fits the vocabulary and transforms the corpus.
func (cv *CountVectorizer) FitTransform(corpus []string) (Matrix, error) {
	if err := cv.Fit(corpus); err != nil {
		return Matrix{}, err
	}
	return cv.TransformAll(corpus), nil
}

// Transform converts a single document to a sparse vector over the fitted vocabulary.
// Tokens outside the vocabulary are ignored.
func (cv *CountVectorizer) Transform(text string) SparseVector {
	sv := NewSparseVector(len(cv.Vocabulary))

	counts := make(map[int]int)
	for _, f := range cv.analyze(text) {
		if idx, ok := cv.Vocabulary[f]; ok {
			counts[idx]++
		}
	}

	idxs := make([]int, 0, len(counts))
	for idx := range counts {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	sv.Indices = idxs
	sv.Values = make([]int, len(idxs))
	for i, idx := range idxs {
		sv.Values[i] = counts[idx]
	}
	return sv
}

// TransformAll re-vectorizes documents with the fitted vocabulary, leaving indices unchanged.
func (cv *CountVectorizer) TransformAll(corpus []string) Matrix {
	rows := make([]SparseVector, len(corpus))
	for i, doc := range corpus {
		rows[i] = cv.Transform(doc)
	}
	return NewMatrix(rows, len(cv.Vocabulary))
}

// Terms returns the vocabulary in index order.
func (cv *CountVectorizer) Terms() []string {
	return cv.terms
}
