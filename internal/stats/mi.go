package stats

import (
	"math"
	"sort"

	"github.com/happyhackingspace/lexis/internal/vectorizer"
)

// MutualInformation returns, per vocabulary column, the mutual information in nats
// between the word's count in a document and the document's label.
//
// Counts are treated as discrete: every distinct count value (0, 1, 2, ...) is its
// own outcome, as with sklearn's mutual_info_classif(discrete_features=True).
// Columns that never occur score 0.
func MutualInformation(m vectorizer.Matrix, labels []int) ([]float64, error) {
	if err := checkCounts(m, labels); err != nil {
		return nil, err
	}

	n := classSizes(labels)
	total := float64(len(labels))

	// joint[col][count] holds how many documents of each class have that non-zero count.
	joint := make([]map[int]*[2]int, m.Cols)
	for d, row := range m.Rows {
		y := labels[d]
		for i, idx := range row.Indices {
			if idx >= m.Cols || row.Values[i] == 0 {
				continue
			}
			if joint[idx] == nil {
				joint[idx] = make(map[int]*[2]int)
			}
			cell := joint[idx][row.Values[i]]
			if cell == nil {
				cell = &[2]int{}
				joint[idx][row.Values[i]] = cell
			}
			cell[y]++
		}
	}

	mi := make([]float64, m.Cols)
	for col, buckets := range joint {
		if len(buckets) == 0 {
			continue
		}
		// Summation order is fixed so repeated runs give identical floats.
		values := make([]int, 0, len(buckets))
		for v := range buckets {
			values = append(values, v)
		}
		sort.Ints(values)

		zero := n
		var sum float64
		for _, v := range values {
			cell := buckets[v]
			zero[0] -= cell[0]
			zero[1] -= cell[1]
			sum += bucketMI(*cell, n, total)
		}
		sum += bucketMI(zero, n, total)
		mi[col] = math.Max(sum, 0)
	}
	return mi, nil
}

// bucketMI is the contribution of one count value x: sum over y of p(x,y) log(p(x,y) / p(x)p(y)).
func bucketMI(cell [2]int, n [2]int, total float64) float64 {
	nx := float64(cell[0] + cell[1])
	if nx == 0 {
		return 0
	}
	var s float64
	for y := 0; y < 2; y++ {
		nxy := float64(cell[y])
		if nxy == 0 || n[y] == 0 {
			continue
		}
		s += nxy / total * math.Log(nxy*total/(nx*float64(n[y])))
	}
	return s
}
