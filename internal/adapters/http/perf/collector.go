package perf

import (
	"sort"
	"sync"
)

// Kind distinguishes HTTP requests from store statements.
type Kind string

const (
	KindRequest Kind = "request"
	KindQuery   Kind = "query"
)

// MaxKeys bounds the number of distinct keys a collector tracks per kind.
const MaxKeys = 256

// OtherKey collects samples whose key arrived after MaxKeys was reached.
const OtherKey = "other"

// Stat aggregates timings recorded under one key.
type Stat struct {
	Kind    Kind    `json:"kind"`
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	TotalMs float64 `json:"total_ms"`
	MaxMs   float64 `json:"max_ms"`
	AvgMs   float64 `json:"avg_ms"`
}

// Collector keeps running timing totals per request path and per statement kind.
// It is safe for concurrent use; HTTP handlers record from many goroutines.
type Collector struct {
	mu     sync.Mutex
	stats  map[string]*Stat
	counts map[Kind]int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{stats: make(map[string]*Stat), counts: make(map[Kind]int)}
}

// Record adds one timing sample.
// PRE: durationMs >= 0
// POST: the sample is folded into the Stat for (kind, key), or (kind, OtherKey) once kind holds MaxKeys keys
// INVARIANT: each kind holds at most MaxKeys keys plus OtherKey
func (c *Collector) Record(kind Kind, key string, durationMs float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := string(kind) + " " + key
	s, ok := c.stats[id]
	if !ok && key != OtherKey && c.counts[kind] >= MaxKeys {
		key = OtherKey
		id = string(kind) + " " + key
		s, ok = c.stats[id]
	}
	if !ok {
		s = &Stat{Kind: kind, Key: key}
		c.stats[id] = s
		if key != OtherKey {
			c.counts[kind]++
		}
	}
	s.Count++
	s.TotalMs += durationMs
	if durationMs > s.MaxMs {
		s.MaxMs = durationMs
	}
}

// Snapshot returns the aggregated stats, slowest average first.
// POST: at most topN entries; topN <= 0 returns everything; a nil collector returns none
func (c *Collector) Snapshot(topN int) []Stat {
	if c == nil {
		return []Stat{}
	}
	c.mu.Lock()
	list := make([]Stat, 0, len(c.stats))
	for _, s := range c.stats {
		cp := *s
		cp.AvgMs = cp.TotalMs / float64(cp.Count)
		list = append(list, cp)
	}
	c.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Key < list[j].Key
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if topN > 0 && len(list) > topN {
		list = list[:topN]
	}
	return list
}
