// Package deltacache memoizes the last histogram/summary sample observed
// per (URL, metric name, label set) so the scrape engine can emit the
// aggregate delta between consecutive scrapes instead of the raw
// cumulative value (spec.md §4.4, component C4).
package deltacache

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus-community/scrapeinput/internal/exposition"
)

// AggregatedDelta is the sum/count delta computed between two consecutive
// observations of the same histogram or summary series.
type AggregatedDelta struct {
	Name       string
	SumDelta   float64
	CountDelta int64
}

type entry struct {
	sum   float64
	count uint64
}

// Cache is safe for concurrent use by multiple scrape tasks. A single
// instance is shared across every configured URL for the engine's
// lifetime; distinct URLs occupy disjoint keys but share the underlying
// map, so access is guarded by a single mutex (spec.md §4.4/§5).
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// ObserveHistogram records the current histogram sample for (url, name,
// labels) and returns the delta against the previous observation, or nil
// on the key's first observation (spec.md §4.4).
func (c *Cache) ObserveHistogram(url, name string, labels []exposition.LabelPair, sum float64, count uint64) *AggregatedDelta {
	return c.observe(url, name, labels, sum, count)
}

// ObserveSummary behaves identically to ObserveHistogram; summaries and
// histograms share the same delta-cache contract (spec.md §4.4).
func (c *Cache) ObserveSummary(url, name string, labels []exposition.LabelPair, sum float64, count uint64) *AggregatedDelta {
	return c.observe(url, name, labels, sum, count)
}

func (c *Cache) observe(url, name string, labels []exposition.LabelPair, sum float64, count uint64) *AggregatedDelta {
	key := Key(url, name, labels)
	cur := entry{sum: sum, count: count}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.entries[key]
	c.entries[key] = cur
	if !ok {
		return nil
	}
	return &AggregatedDelta{
		Name:       name,
		SumDelta:   cur.sum - prev.sum,
		CountDelta: int64(cur.count) - int64(prev.count),
	}
}

// Key builds the deterministic cache key for (url, name, labels): labels
// are sorted by name so the key is independent of the order they appeared
// in on the wire (spec.md §4.4, §8 universal invariant).
func Key(url, name string, labels []exposition.LabelPair) string {
	sorted := make([]exposition.LabelPair, len(labels))
	copy(sorted, labels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString(url)
	b.WriteByte(';')
	b.WriteString(name)
	for _, l := range sorted {
		b.WriteByte(';')
		b.WriteString(l.Name)
		b.WriteByte(':')
		b.WriteString(l.Value)
	}
	return b.String()
}

func (d AggregatedDelta) String() string {
	return fmt.Sprintf("%s{sum=%v,count=%v}", d.Name, d.SumDelta, d.CountDelta)
}
