package lexis

import (
	"context"
	"log/slog"
	"time"
)

// Stage names a pipeline boundary reported to an Observer.
type Stage string

const (
	StageLoaded     Stage = "loaded"
	StageVectorized Stage = "vectorized"
	StageScored     Stage = "scored"
	StageRanked     Stage = "ranked"
)

// Event describes a completed pipeline stage. Fields that do not apply to a
// stage are zero.
type Event struct {
	RunID      string        `json:"run_id"`
	Stage      Stage         `json:"stage"`
	Category   string        `json:"category"`
	Message    string        `json:"message"`
	Documents  int           `json:"documents,omitempty"`
	InCategory int           `json:"in_category,omitempty"`
	Features   int           `json:"features,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Observer receives stage events. It has no influence on the result.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) { f(e) }

// LogObserver logs each event to logger at level.
func LogObserver(logger *slog.Logger, level slog.Level) Observer {
	return ObserverFunc(func(e Event) {
		logger.Log(context.Background(), level, e.Message,
			"run", e.RunID,
			"stage", e.Stage,
			"category", e.Category,
			"elapsed", e.Elapsed,
		)
	})
}

// run carries the per-call identity stamped on events.
type run struct {
	id       string
	category string
	observer Observer
	start    time.Time
}

func (r *run) notify(e Event) {
	if r.observer == nil {
		return
	}
	e.RunID = r.id
	e.Category = r.category
	e.Elapsed = time.Since(r.start)
	r.observer.Observe(e)
}
