package metrics

import (
	"sync/atomic"
	"time"
)

// Collector aggregates counters across concurrently running episodes.
type Collector interface {
	Start()
	AddEpisode()
	AddCapture()
	Complete() RunMetric
}

type collector struct {
	startTime time.Time
	episodes  atomic.Int32
	captures  atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) AddCapture() {
	c.captures.Add(1)
}

func (c *collector) Complete() RunMetric {
	return RunMetric{
		Episodes: int(c.episodes.Load()),
		Captures: int(c.captures.Load()),
		Duration: time.Since(c.startTime),
	}
}
