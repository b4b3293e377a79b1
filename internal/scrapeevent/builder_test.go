package scrapeevent

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus-community/scrapeinput/internal/deltacache"
	"github.com/prometheus-community/scrapeinput/internal/exposition"
)

func TestBuildEventsCounter(t *testing.T) {
	fam := &exposition.MetricFamily{
		Name: "http_requests_total",
		Kind: exposition.Counter,
		Metrics: []exposition.Metric{
			{Labels: []exposition.LabelPair{{Name: "method", Value: "get"}}, Value: 12},
		},
	}
	cache := deltacache.New()
	now := time.Now()

	events := BuildEvents("http://target", now, fam, cache)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "http://target", ev.ProviderName)
	assert.Equal(t, "counter", ev.Payload["Type"])
	assert.Equal(t, "get", ev.Payload["label_method"])
	assert.Equal(t, KindMetric, ev.Metadata.Kind)
	assert.Equal(t, "http_requests_total", ev.Metadata.MetricName)
	assert.Equal(t, "12", ev.Metadata.MetricValue)
	assert.Equal(t, now, ev.Timestamp)
	assert.NotEmpty(t, ev.ID)
}

func TestBuildEventsUsesSampleTimestampWhenSet(t *testing.T) {
	fam := &exposition.MetricFamily{
		Name: "foo",
		Kind: exposition.Gauge,
		Metrics: []exposition.Metric{
			{Value: 1, TimestampMs: 1395066363000},
		},
	}
	events := BuildEvents("u", time.Now(), fam, deltacache.New())
	require.Len(t, events, 1)
	assert.Equal(t, int64(1395066363000), events[0].Timestamp.UnixMilli())
}

func TestBuildEventsHistogramSuppressesFirstSample(t *testing.T) {
	fam := &exposition.MetricFamily{
		Name: "h",
		Kind: exposition.Histogram,
		Metrics: []exposition.Metric{
			{
				Labels:      []exposition.LabelPair{{Name: "l", Value: "x"}},
				SampleSum:   10,
				SampleCount: 2,
				Buckets:     []exposition.Bucket{{UpperBound: 1, CumulativeCount: 2}},
			},
		},
	}
	cache := deltacache.New()

	events := BuildEvents("u", time.Now(), fam, cache)
	assert.Empty(t, events)

	fam.Metrics[0].SampleSum = 17
	fam.Metrics[0].SampleCount = 5
	events = BuildEvents("u", time.Now(), fam, cache)
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, KindAggregatedMetric, ev.Metadata.Kind)
	assert.Equal(t, "h", ev.Metadata.AggregatedName)
	assert.Equal(t, "7", ev.Metadata.AggregatedSum)
	assert.Equal(t, "3", ev.Metadata.AggregatedCount)
	assert.Equal(t, "2", ev.Payload["bucket_1"])
}

func TestBuildEventsSummaryQuantilePayloadKeys(t *testing.T) {
	fam := &exposition.MetricFamily{
		Name: "rpc_duration_seconds",
		Kind: exposition.Summary,
		Metrics: []exposition.Metric{
			{
				SampleSum:   1,
				SampleCount: 1,
				Quantiles:   []exposition.Quantile{{Quantile: 0.5, Value: 4773}},
			},
		},
	}
	cache := deltacache.New()
	BuildEvents("u", time.Now(), fam, cache) // first sample suppressed
	fam.Metrics[0].SampleSum = 2
	fam.Metrics[0].SampleCount = 2
	events := BuildEvents("u", time.Now(), fam, cache)
	require.Len(t, events, 1)
	assert.Equal(t, "4773", events[0].Payload["quantile_0.5"])
}

func TestBuildEventsFamilyThenMetricOrder(t *testing.T) {
	fam := &exposition.MetricFamily{
		Name: "g",
		Kind: exposition.Gauge,
		Metrics: []exposition.Metric{
			{Labels: []exposition.LabelPair{{Name: "i", Value: "1"}}, Value: 1},
			{Labels: []exposition.LabelPair{{Name: "i", Value: "2"}}, Value: 2},
		},
	}
	events := BuildEvents("u", time.Now(), fam, deltacache.New())
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].Metadata.MetricValue)
	assert.Equal(t, "2", events[1].Metadata.MetricValue)

	wantPayloads := []map[string]string{
		{"Type": "gauge", "label_i": "1"},
		{"Type": "gauge", "label_i": "2"},
	}
	gotPayloads := []map[string]string{events[0].Payload, events[1].Payload}
	if diff := cmp.Diff(wantPayloads, gotPayloads); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}
