package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/happyhackingspace/lexis/internal/textutil"
)

// DefaultTopK is the number of ranked words returned when k is not positive.
const DefaultTopK = 5

// Statistic selects the column a Table is ranked by.
type Statistic string

const (
	ByFrequency         Statistic = "frequency"
	ByMutualInformation Statistic = "mutual_information"
	ByChiSquared        Statistic = "chi_squared"
)

// Statistics lists every Statistic in output order.
var Statistics = []Statistic{ByFrequency, ByMutualInformation, ByChiSquared}

// ParseStatistic accepts a statistic name or its short alias (freq, mi, chi2).
func ParseStatistic(s string) (Statistic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frequency", "freq":
		return ByFrequency, nil
	case "mutual_information", "mi":
		return ByMutualInformation, nil
	case "chi_squared", "chi2":
		return ByChiSquared, nil
	}
	return "", fmt.Errorf("stats: unknown statistic %q", s)
}

// WordStat is the statistic record of one vocabulary word.
type WordStat struct {
	Word              string  `json:"word"`
	Frequency         int     `json:"frequency"`
	MutualInformation float64 `json:"mutual_information"`
	ChiSquared        float64 `json:"chi_squared"`
}

// Value returns the field selected by stat.
func (w WordStat) Value(stat Statistic) float64 {
	switch stat {
	case ByMutualInformation:
		return w.MutualInformation
	case ByChiSquared:
		return w.ChiSquared
	default:
		return float64(w.Frequency)
	}
}

// Table holds one WordStat per vocabulary word, in vocabulary order.
type Table struct {
	rows  []WordStat
	index map[string]int
}

// NewTable zips per-column statistic vectors with their vocabulary terms.
func NewTable(terms []string, freq []int, mi, chi2 []float64) (*Table, error) {
	n := len(terms)
	if len(freq) != n || len(mi) != n || len(chi2) != n {
		return nil, fmt.Errorf("stats: column count mismatch: %d terms, %d frequencies, %d mi, %d chi2: %w",
			n, len(freq), len(mi), len(chi2), ErrInvalidCounts)
	}
	t := &Table{
		rows:  make([]WordStat, n),
		index: make(map[string]int, n),
	}
	for i, term := range terms {
		t.rows[i] = WordStat{
			Word:              term,
			Frequency:         freq[i],
			MutualInformation: mi[i],
			ChiSquared:        chi2[i],
		}
		t.index[term] = i
	}
	return t, nil
}

// Len returns the vocabulary size.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rank returns the k words with the highest stat, in non-increasing order.
// Ties fall back to higher frequency, then to lexical word order.
func (t *Table) Rank(stat Statistic, k int) []WordStat {
	if k <= 0 {
		k = DefaultTopK
	}
	sorted := make([]WordStat, len(t.rows))
	copy(sorted, t.rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Value(stat), sorted[j].Value(stat)
		if vi != vj {
			return vi > vj
		}
		if sorted[i].Frequency != sorted[j].Frequency {
			return sorted[i].Frequency > sorted[j].Frequency
		}
		return sorted[i].Word < sorted[j].Word
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

// Lookup returns the record of word after case folding, or a zero record carrying
// the folded word when it is not in the vocabulary.
func (t *Table) Lookup(word string) WordStat {
	w := textutil.NormalizeWord(word)
	if i, ok := t.index[w]; ok {
		return t.rows[i]
	}
	return WordStat{Word: w}
}
