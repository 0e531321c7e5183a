// Package stats computes per-word statistics over a bag-of-words count matrix:
// raw frequency, mutual information and chi-squared association with a binary
// category label, plus ranking and lookup over the resulting table.
package stats

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/lexis/internal/vectorizer"
)

// ErrInvalidCounts is returned when a count matrix or label vector cannot be scored.
var ErrInvalidCounts = errors.New("invalid counts")

// Frequency sums each vocabulary column of m across all rows.
func Frequency(m vectorizer.Matrix) []int {
	freq := make([]int, m.Cols)
	for _, row := range m.Rows {
		for i, idx := range row.Indices {
			if idx < m.Cols {
				freq[idx] += row.Values[i]
			}
		}
	}
	return freq
}

// checkCounts validates the matrix and labels shared by the discriminative scorers.
func checkCounts(m vectorizer.Matrix, labels []int) error {
	if len(labels) != m.NumRows() {
		return fmt.Errorf("stats: %d labels for %d documents: %w", len(labels), m.NumRows(), ErrInvalidCounts)
	}
	for d, y := range labels {
		if y != 0 && y != 1 {
			return fmt.Errorf("stats: label %d of document %d is not binary: %w", y, d, ErrInvalidCounts)
		}
	}
	for d, row := range m.Rows {
		for i, v := range row.Values {
			if v < 0 {
				return fmt.Errorf("stats: negative count %d at document %d, column %d: %w", v, d, row.Indices[i], ErrInvalidCounts)
			}
		}
	}
	return nil
}

// classSizes returns the number of documents labelled 0 and 1.
func classSizes(labels []int) [2]int {
	var n [2]int
	for _, y := range labels {
		n[y]++
	}
	return n
}
