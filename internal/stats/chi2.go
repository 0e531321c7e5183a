package stats

import "github.com/happyhackingspace/lexis/internal/vectorizer"

// ChiSquared returns, per vocabulary column, the chi-squared statistic between the
// word's counts and the binary label, computed the way sklearn's chi2 does:
// observed is the summed count per class, expected is the class prior times the
// word's total count. Columns that never occur score 0.
func ChiSquared(m vectorizer.Matrix, labels []int) ([]float64, error) {
	if err := checkCounts(m, labels); err != nil {
		return nil, err
	}

	n := classSizes(labels)
	total := float64(len(labels))

	observed := [2][]float64{make([]float64, m.Cols), make([]float64, m.Cols)}
	for d, row := range m.Rows {
		y := labels[d]
		for i, idx := range row.Indices {
			if idx < m.Cols {
				observed[y][idx] += float64(row.Values[i])
			}
		}
	}

	chi2 := make([]float64, m.Cols)
	for col := 0; col < m.Cols; col++ {
		featureCount := observed[0][col] + observed[1][col]
		if featureCount == 0 {
			continue
		}
		var sum float64
		for y := 0; y < 2; y++ {
			expected := float64(n[y]) / total * featureCount
			if expected == 0 {
				continue
			}
			diff := observed[y][col] - expected
			sum += diff * diff / expected
		}
		chi2[col] = sum
	}
	return chi2, nil
}
