package dispatch

import (
	"errors"

	"github.com/FrenchMajesty/turbo-kit/utils/priority_queue"
	"github.com/FrenchMajesty/turbo-kit/utils/retry"
)

// UpstreamStats aggregates the outcomes routed to one upstream.
type UpstreamStats struct {
	Name     string
	Expected float64 // percent, from the weights
	Hits     int
	Failed   int
	Attempts int
}

// Observed is the share of all requests routed here, in percent.
func (s UpstreamStats) Observed(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Report summarises a Run.
type Report struct {
	Requests  int
	Succeeded int
	Failed    int
	// Exhausted counts failures that used every attempt; Fatal counts those
	// aborted by a non-retryable error.
	Exhausted int
	Fatal     int
	Unrouted  int
	// Upstreams is in configuration order.
	Upstreams []UpstreamStats
}

// newReport seeds one row per upstream; percents is keyed by upstream index.
func newReport(upstreams []Upstream, percents map[int]float64) Report {
	r := Report{Upstreams: make([]UpstreamStats, len(upstreams))}
	for i, u := range upstreams {
		r.Upstreams[i] = UpstreamStats{Name: u.Name, Expected: percents[i]}
	}
	return r
}

func (r *Report) add(o Outcome) {
	r.Requests++

	switch {
	case o.Err == nil:
		r.Succeeded++
	case errors.Is(o.Err, ErrNoUpstream):
		r.Failed++
		r.Unrouted++
		return
	default:
		r.Failed++
		if errors.Is(o.Err, retry.ErrAttemptsExhausted) {
			r.Exhausted++
		} else if errors.Is(o.Err, retry.ErrUnrecoverable) {
			r.Fatal++
		}
	}

	if o.UpstreamIndex < 0 || o.UpstreamIndex >= len(r.Upstreams) {
		return
	}
	stats := &r.Upstreams[o.UpstreamIndex]
	stats.Hits++
	stats.Attempts += o.Attempts
	if o.Err != nil {
		stats.Failed++
	}
}

// Ranked returns the upstream stats ordered by hits, most first. Ties keep
// configuration order.
func (r Report) Ranked() []UpstreamStats {
	pq := priority_queue.NewMaxPriorityQueue[UpstreamStats]()
	for _, s := range r.Upstreams {
		pq.Push(s, s.Hits)
	}

	ranked := make([]UpstreamStats, 0, len(r.Upstreams))
	for _, item := range pq.Drain() {
		ranked = append(ranked, item.Item)
	}
	return ranked
}
