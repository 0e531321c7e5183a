package lexis

import (
	"github.com/happyhackingspace/lexis/internal/stats"
	"github.com/happyhackingspace/lexis/internal/textutil"
)

// WordStat is the statistic record of one word.
type WordStat = stats.WordStat

// Statistic names a ranked statistic.
type Statistic = stats.Statistic

const (
	ByFrequency         = stats.ByFrequency
	ByMutualInformation = stats.ByMutualInformation
	ByChiSquared        = stats.ByChiSquared
)

// Statistics lists every Statistic in output order.
var Statistics = stats.Statistics

// ParseStatistic accepts a statistic name or its short alias (freq, mi, chi2).
func ParseStatistic(s string) (Statistic, error) {
	return stats.ParseStatistic(s)
}

// TopWords holds the highest ranked words by each statistic.
type TopWords struct {
	Frequency         []WordStat `json:"frequency"`
	MutualInformation []WordStat `json:"mutual_information"`
	ChiSquared        []WordStat `json:"chi_squared"`
}

// By returns the list ranked by stat.
func (t TopWords) By(stat Statistic) []WordStat {
	switch stat {
	case ByMutualInformation:
		return t.MutualInformation
	case ByChiSquared:
		return t.ChiSquared
	default:
		return t.Frequency
	}
}

// Result is the outcome of scoring one word against one category.
type Result struct {
	Category  string   `json:"category"`
	TopWords  TopWords `json:"top_words"`
	InputWord WordStat `json:"input_word"`
	Error     string   `json:"error,omitempty"`
}

// ErrorResult builds the zero-valued result reported for a failed call.
func ErrorResult(category, word string, err error) Result {
	res := Result{
		Category: category,
		TopWords: TopWords{
			Frequency:         []WordStat{},
			MutualInformation: []WordStat{},
			ChiSquared:        []WordStat{},
		},
		InputWord: WordStat{Word: textutil.NormalizeWord(word)},
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}
