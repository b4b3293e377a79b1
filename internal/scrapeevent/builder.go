package scrapeevent

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/prometheus-community/scrapeinput/internal/deltacache"
	"github.com/prometheus-community/scrapeinput/internal/exposition"
)

// BuildEvents turns one parsed MetricFamily into zero or more output
// events, one per Metric, in the family's parse order (spec.md §4.5, §8
// "K metrics -> K events in family-then-metric order" invariant). A
// Histogram/Summary metric whose delta-cache observation is a first
// sample yields no event.
func BuildEvents(url string, scrapeTime time.Time, fam *exposition.MetricFamily, cache *deltacache.Cache) []Event {
	events := make([]Event, 0, len(fam.Metrics))
	for _, m := range fam.Metrics {
		ev, ok := buildEvent(url, scrapeTime, fam, m, cache)
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

func buildEvent(url string, scrapeTime time.Time, fam *exposition.MetricFamily, m exposition.Metric, cache *deltacache.Cache) (Event, bool) {
	payload := map[string]string{"Type": fam.Kind.String()}
	for _, l := range m.Labels {
		payload["label_"+l.Name] = l.Value
	}

	var metadata Metadata
	switch fam.Kind {
	case exposition.Counter, exposition.Gauge, exposition.Untyped:
		metadata = Metadata{
			Kind:        KindMetric,
			MetricName:  fam.Name,
			MetricValue: strconv.FormatFloat(m.Value, 'g', -1, 64),
		}
	case exposition.Histogram:
		for _, b := range m.Buckets {
			payload["bucket_"+formatBoundKey(b.UpperBound)] = strconv.FormatUint(b.CumulativeCount, 10)
		}
		delta := cache.ObserveHistogram(url, fam.Name, m.Labels, m.SampleSum, m.SampleCount)
		if delta == nil {
			return Event{}, false
		}
		metadata = aggregatedMetadata(fam.Name, delta)
	case exposition.Summary:
		for _, q := range m.Quantiles {
			payload["quantile_"+formatBoundKey(q.Quantile)] = strconv.FormatFloat(q.Value, 'g', -1, 64)
		}
		delta := cache.ObserveSummary(url, fam.Name, m.Labels, m.SampleSum, m.SampleCount)
		if delta == nil {
			return Event{}, false
		}
		metadata = aggregatedMetadata(fam.Name, delta)
	}

	ts := scrapeTime
	if m.TimestampMs != 0 {
		ts = time.UnixMilli(m.TimestampMs)
	}

	return Event{
		ID:           uuid.NewString(),
		ProviderName: url,
		Timestamp:    ts,
		Payload:      payload,
		Metadata:     metadata,
	}, true
}

func aggregatedMetadata(name string, delta *deltacache.AggregatedDelta) Metadata {
	return Metadata{
		Kind:            KindAggregatedMetric,
		AggregatedName:  name,
		AggregatedSum:   strconv.FormatFloat(delta.SumDelta, 'g', -1, 64),
		AggregatedCount: strconv.FormatInt(delta.CountDelta, 10),
	}
}

// formatBoundKey renders a histogram bucket upper bound or summary
// quantile for use in a payload key.
func formatBoundKey(v float64) string {
	if math.IsInf(v, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
