package vectorizer

import (
	"errors"
	"reflect"
	"testing"
)

func TestSparseVector(t *testing.T) {
	sv := NewSparseVector(5)
	sv.Set(3, 4)
	sv.Set(1, 2)
	sv.Set(3, 5)

	if !reflect.DeepEqual(sv.Indices, []int{1, 3}) {
		t.Errorf("Indices = %v, want [1 3]", sv.Indices)
	}
	dense := sv.ToDense()
	if !reflect.DeepEqual(dense, []int{0, 2, 0, 5, 0}) {
		t.Errorf("ToDense unexpected: %v", dense)
	}
}

func TestStack(t *testing.T) {
	a := NewMatrix([]SparseVector{NewSparseVector(3)}, 3)
	b := NewMatrix([]SparseVector{NewSparseVector(3), NewSparseVector(3)}, 3)
	m := Stack(a, b)
	if m.NumRows() != 3 || m.Cols != 3 {
		t.Errorf("Stack = %d rows, %d cols; want 3, 3", m.NumRows(), m.Cols)
	}
	if s := m.Slice(1, 3); s.NumRows() != 2 || s.Cols != 3 {
		t.Errorf("Slice = %d rows, %d cols; want 2, 3", s.NumRows(), s.Cols)
	}
}

func TestCountVectorizerFitTransform(t *testing.T) {
	cv := NewEnglishCountVectorizer()
	corpus := []string{"space rockets launch", "rocket fuel space", "The rocket is on the pad"}
	m, err := cv.FitTransform(corpus)
	if err != nil {
		t.Fatal(err)
	}

	wantTerms := []string{"fuel", "launch", "pad", "rocket", "rockets", "space"}
	if !reflect.DeepEqual(cv.Terms(), wantTerms) {
		t.Errorf("Terms = %v, want %v", cv.Terms(), wantTerms)
	}
	for i, term := range wantTerms {
		if cv.Vocabulary[term] != i {
			t.Errorf("Vocabulary[%q] = %d, want %d", term, cv.Vocabulary[term], i)
		}
	}
	if m.NumRows() != 3 || m.Cols != 6 {
		t.Fatalf("matrix shape = %dx%d, want 3x6", m.NumRows(), m.Cols)
	}
	if got := m.Rows[1].ToDense(); !reflect.DeepEqual(got, []int{1, 0, 0, 1, 0, 1}) {
		t.Errorf("row 1 = %v", got)
	}
}

func TestCountVectorizerCounts(t *testing.T) {
	cv := NewEnglishCountVectorizer()
	m, err := cv.FitTransform([]string{"orbit orbit ORBIT moon"})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Rows[0].ToDense()[cv.Vocabulary["orbit"]]; got != 3 {
		t.Errorf("orbit count = %d, want 3", got)
	}
}

func TestCountVectorizerOrderIndependent(t *testing.T) {
	docs := []string{"baseball bat hit", "hockey puck ice", "space rockets launch"}
	reversed := []string{docs[2], docs[1], docs[0]}

	a := NewEnglishCountVectorizer()
	b := NewEnglishCountVectorizer()
	if err := a.Fit(docs); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(reversed); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Vocabulary, b.Vocabulary) {
		t.Errorf("vocabulary depends on document order: %v vs %v", a.Vocabulary, b.Vocabulary)
	}
}

func TestCountVectorizerFixedVocabulary(t *testing.T) {
	cv := NewEnglishCountVectorizer()
	if err := cv.Fit([]string{"space rockets", "baseball bat"}); err != nil {
		t.Fatal(err)
	}
	before := len(cv.Vocabulary)
	m := cv.TransformAll([]string{"space space unknownword"})
	if len(cv.Vocabulary) != before {
		t.Errorf("TransformAll changed vocabulary size: %d -> %d", before, len(cv.Vocabulary))
	}
	if m.Cols != before {
		t.Errorf("Cols = %d, want %d", m.Cols, before)
	}
	if got := m.Rows[0].ToDense()[cv.Vocabulary["space"]]; got != 2 {
		t.Errorf("space count = %d, want 2", got)
	}
	if len(m.Rows[0].Indices) != 1 {
		t.Errorf("unknown tokens should be ignored, indices = %v", m.Rows[0].Indices)
	}
}

func TestCountVectorizerMinDF(t *testing.T) {
	cv := NewCountVectorizer(nil, 2)
	if err := cv.Fit([]string{"hello world", "hello universe"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cv.Vocabulary["hello"]; !ok {
		t.Error("expected 'hello' in vocabulary (df=2)")
	}
	if _, ok := cv.Vocabulary["world"]; ok {
		t.Error("'world' should not be in vocabulary (df=1, min_df=2)")
	}
}

func TestCountVectorizerEmptyCorpus(t *testing.T) {
	cv := NewEnglishCountVectorizer()
	if _, err := cv.FitTransform(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("FitTransform(nil) error = %v, want ErrEmptyCorpus", err)
	}
	if err := cv.Fit([]string{"the of is", "a an"}); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Fit(stop words only) error = %v, want ErrEmptyCorpus", err)
	}
}

func TestEnglishStopWords(t *testing.T) {
	sw := EnglishStopWords()
	for _, w := range []string{"the", "is", "of", "yourselves"} {
		if !sw[w] {
			t.Errorf("expected %q to be a stop word", w)
		}
	}
	for _, w := range []string{"rocket", "space", "puck"} {
		if sw[w] {
			t.Errorf("%q should not be a stop word", w)
		}
	}
	if len(sw) != 318 {
		t.Errorf("stop word count = %d, want 318", len(sw))
	}
}
