package lexis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/happyhackingspace/lexis/corpus"
)

func rocketSource() corpus.Source {
	return corpus.NewMemorySource(map[string][]string{
		"space":  {"space rockets launch", "rocket fuel space"},
		"sports": {"baseball bat hit", "hockey puck ice"},
	})
}

func rank(ws []WordStat, word string) int {
	for i, w := range ws {
		if w.Word == word {
			return i
		}
	}
	return len(ws)
}

func TestScoreRocketScenario(t *testing.T) {
	a := New(rocketSource())
	res, err := a.Score(context.Background(), "space", "Rocket", 5)
	if err != nil {
		t.Fatal(err)
	}

	in := res.InputWord
	if in.Word != "rocket" {
		t.Errorf("InputWord.Word = %q, want rocket", in.Word)
	}
	// No stemming: "rocket" and "rockets" are separate tokens.
	if in.Frequency != 1 {
		t.Errorf("InputWord.Frequency = %d, want 1", in.Frequency)
	}
	if in.MutualInformation <= 0 || in.ChiSquared <= 0 {
		t.Errorf("InputWord scores = %+v, want positive", in)
	}

	mi := res.TopWords.MutualInformation
	for _, w := range []string{"rocket", "rockets"} {
		for _, other := range []string{"bat", "puck"} {
			if rank(mi, w) >= rank(mi, other) {
				t.Errorf("%q does not rank above %q by mutual information: %v", w, other, mi)
			}
		}
	}
	if res.TopWords.Frequency[0].Word != "space" || res.TopWords.Frequency[0].Frequency != 2 {
		t.Errorf("top frequency word = %+v, want space/2", res.TopWords.Frequency[0])
	}
	for _, stat := range []Statistic{ByFrequency, ByMutualInformation, ByChiSquared} {
		if got := len(res.TopWords.By(stat)); got != 5 {
			t.Errorf("len(TopWords.%s) = %d, want 5", stat, got)
		}
	}
	if res.Error != "" {
		t.Errorf("unexpected error field %q", res.Error)
	}
}

func TestScoreRankingOrder(t *testing.T) {
	res, err := New(rocketSource()).Score(context.Background(), "space", "space", 100)
	if err != nil {
		t.Fatal(err)
	}
	for _, stat := range []Statistic{ByFrequency, ByMutualInformation, ByChiSquared} {
		ws := res.TopWords.By(stat)
		if len(ws) != 11 {
			t.Errorf("%s: %d words, want the whole vocabulary of 11", stat, len(ws))
		}
		for i := 1; i < len(ws); i++ {
			if ws[i].Value(stat) > ws[i-1].Value(stat) {
				t.Errorf("%s: %v ranks above %v", stat, ws[i-1], ws[i])
			}
			if ws[i].MutualInformation < 0 || ws[i].ChiSquared < 0 {
				t.Errorf("%s: negative score in %+v", stat, ws[i])
			}
		}
	}
}

func TestScoreAbsentWord(t *testing.T) {
	res, err := New(rocketSource()).Score(context.Background(), "space", "Monkey", 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.InputWord != (WordStat{Word: "monkey"}) {
		t.Errorf("InputWord = %+v, want zero record for monkey", res.InputWord)
	}
}

func TestScoreDefaultTopK(t *testing.T) {
	res, err := New(rocketSource(), WithDefaultTopK(3)).Score(context.Background(), "space", "space", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(res.TopWords.ChiSquared); got != 3 {
		t.Errorf("len(ChiSquared) = %d, want 3", got)
	}
}

func TestScoreUnknownCategory(t *testing.T) {
	a := New(rocketSource())
	_, err := a.Score(context.Background(), "unknown_xyz", "rocket", 5)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("Score error = %v, want ErrUnknownCategory", err)
	}

	res := a.Analyze(context.Background(), "unknown_xyz", "Rocket", 5)
	if !strings.Contains(res.Error, "unknown category") {
		t.Errorf("Error = %q, want unknown category message", res.Error)
	}
	if res.InputWord != (WordStat{Word: "rocket"}) {
		t.Errorf("InputWord = %+v, want zero record", res.InputWord)
	}
	if len(res.TopWords.Frequency)+len(res.TopWords.MutualInformation)+len(res.TopWords.ChiSquared) != 0 {
		t.Errorf("TopWords = %+v, want empty", res.TopWords)
	}
}

func TestScoreEmptyCategory(t *testing.T) {
	src := corpus.NewMemorySource(map[string][]string{
		"space":  {},
		"sports": {"baseball bat hit"},
	})
	a := New(src)
	if _, err := a.Score(context.Background(), "space", "rocket", 5); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("Score error = %v, want ErrEmptyCorpus", err)
	}
	res := a.Analyze(context.Background(), "space", "rocket", 5)
	if !strings.Contains(res.Error, "empty corpus") {
		t.Errorf("Error = %q, want empty corpus message", res.Error)
	}
}

func TestScoreOnlyStopWords(t *testing.T) {
	src := corpus.NewMemorySource(map[string][]string{
		"space":  {"the of is"},
		"sports": {"and the"},
	})
	if _, err := New(src).Score(context.Background(), "space", "the", 5); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Score error = %v, want ErrEmptyCorpus", err)
	}
}

func TestScoreWithoutOtherCategories(t *testing.T) {
	src := corpus.NewMemorySource(map[string][]string{"space": {"rocket orbit", "rocket moon"}})
	res, err := New(src).Score(context.Background(), "space", "rocket", 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.InputWord.Frequency != 2 || res.InputWord.MutualInformation != 0 || res.InputWord.ChiSquared != 0 {
		t.Errorf("InputWord = %+v, want frequency 2 and no association", res.InputWord)
	}
}

func TestScoreMissingDirectory(t *testing.T) {
	res := New(corpus.NewDirSource(t.TempDir()+"/absent")).Analyze(context.Background(), "space", "rocket", 5)
	if !strings.Contains(res.Error, "documents directory not found") {
		t.Errorf("Error = %q", res.Error)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := New(rocketSource())
	first, err := json.Marshal(a.Analyze(context.Background(), "space", "rocket", 5))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(a.Analyze(context.Background(), "space", "rocket", 5))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("results differ:\n%s\n%s", first, second)
	}
}

func TestResultJSONShape(t *testing.T) {
	out, err := json.Marshal(ErrorResult("unknown_xyz", "Rocket", ErrUnknownCategory))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"category":"unknown_xyz","top_words":{"frequency":[],"mutual_information":[],"chi_squared":[]},` +
		`"input_word":{"word":"rocket","frequency":0,"mutual_information":0,"chi_squared":0},"error":"unknown category"}`
	if string(out) != want {
		t.Errorf("ErrorResult JSON =\n%s\nwant\n%s", out, want)
	}
}

func TestObserverStages(t *testing.T) {
	var stages []Stage
	var runIDs = map[string]bool{}
	obs := ObserverFunc(func(e Event) {
		stages = append(stages, e.Stage)
		runIDs[e.RunID] = true
		if e.Category != "space" || e.Message == "" {
			t.Errorf("incomplete event %+v", e)
		}
	})
	a := New(rocketSource(), WithObserver(obs))
	withObserver, err := a.Score(context.Background(), "space", "rocket", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []Stage{StageLoaded, StageVectorized, StageScored, StageRanked}
	if !reflect.DeepEqual(stages, want) {
		t.Errorf("stages = %v, want %v", stages, want)
	}
	if len(runIDs) != 1 {
		t.Errorf("expected one run ID, got %v", runIDs)
	}

	without, err := New(rocketSource()).Score(context.Background(), "space", "rocket", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(withObserver, without) {
		t.Error("observer changed the result")
	}
}

func TestCategories(t *testing.T) {
	cats, err := New(rocketSource()).Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cats, []string{"space", "sports"}) {
		t.Errorf("Categories = %v", cats)
	}
}
