// Package metrics defines the per-episode records experiments produce and
// the CSV writers that persist them for external fitness aggregation.
package metrics

import "time"

// EpisodeMetric captures what happened in one episode.
type EpisodeMetric struct {
	StartTime time.Time
	Duration  time.Duration
	// MainSteps is how many main steps ran before the episode ended.
	MainSteps int
	Captured  bool
	// Payoffs per player; the game is zero-sum.
	PursuerPayoff float64
	EvaderPayoff  float64
}

// EpisodeRecord is one output row: an episode keyed by a unique ID plus the
// labels of the two policies that played it.
type EpisodeRecord struct {
	ID      string
	Pursuer string
	Evader  string
	EpisodeMetric
}

// RunMetric aggregates a whole experiment run.
type RunMetric struct {
	Episodes int
	Captures int
	Duration time.Duration
}
