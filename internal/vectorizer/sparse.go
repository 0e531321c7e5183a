// Package vectorizer turns document text into bag-of-words count matrices,
// matching sklearn's CountVectorizer behavior for the word analyzer.
package vectorizer

import "sort"

// SparseVector holds the non-zero term counts of one document.
// Indices are kept in ascending order.
type SparseVector struct {
	Indices []int
	Values  []int
	Dim     int
}

// NewSparseVector creates a sparse vector with given dimension.
func NewSparseVector(dim int) SparseVector {
	return SparseVector{Dim: dim}
}

// Set adds or updates a value at the given index.
func (sv *SparseVector) Set(idx, val int) {
	pos := sort.SearchInts(sv.Indices, idx)
	if pos < len(sv.Indices) && sv.Indices[pos] == idx {
		sv.Values[pos] = val
		return
	}
	sv.Indices = append(sv.Indices, 0)
	sv.Values = append(sv.Values, 0)
	copy(sv.Indices[pos+1:], sv.Indices[pos:])
	copy(sv.Values[pos+1:], sv.Values[pos:])
	sv.Indices[pos] = idx
	sv.Values[pos] = val
}

// ToDense converts to a dense int slice.
func (sv SparseVector) ToDense() []int {
	dense := make([]int, sv.Dim)
	for i, idx := range sv.Indices {
		if idx < sv.Dim {
			dense[idx] = sv.Values[i]
		}
	}
	return dense
}

// Matrix is a documents × vocabulary count table stored row-wise.
type Matrix struct {
	Rows []SparseVector
	Cols int
}

// NewMatrix wraps rows that share the vocabulary size cols.
func NewMatrix(rows []SparseVector, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols}
}

// NumRows returns the number of documents.
func (m Matrix) NumRows() int {
	return len(m.Rows)
}

// Slice returns the rows in [from, to) sharing the same columns.
func (m Matrix) Slice(from, to int) Matrix {
	return Matrix{Rows: m.Rows[from:to], Cols: m.Cols}
}

// Stack concatenates the rows of several matrices with the same column count.
func Stack(ms ...Matrix) Matrix {
	out := Matrix{}
	for i, m := range ms {
		if i == 0 {
			out.Cols = m.Cols
		}
		out.Rows = append(out.Rows, m.Rows...)
	}
	return out
}
