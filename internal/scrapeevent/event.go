// Package scrapeevent defines the normalized output event emitted for
// each scraped metric, and the Subject interface downstream pipelines
// implement to receive them (spec.md §1, §4.5, component C5).
package scrapeevent

import "time"

// MetadataKind distinguishes the two metric-metadata annotations an event
// can carry (spec.md §6).
type MetadataKind string

const (
	// KindMetric annotates a single-value Counter/Gauge/Untyped sample.
	KindMetric MetadataKind = "metric"
	// KindAggregatedMetric annotates a Histogram/Summary delta.
	KindAggregatedMetric MetadataKind = "aggregatedMetric"
)

// Metadata is the metric-metadata annotation attached to an event payload.
// Exactly one of the value pairs is populated, selected by Kind.
type Metadata struct {
	Kind MetadataKind

	// Populated when Kind == KindMetric.
	MetricName  string
	MetricValue string

	// Populated when Kind == KindAggregatedMetric.
	AggregatedName  string
	AggregatedSum   string
	AggregatedCount string
}

// Event is one normalized observation ready for publication to a Subject
// (spec.md §4.5/§6).
type Event struct {
	ID           string
	ProviderName string
	Timestamp    time.Time
	Payload      map[string]string
	Metadata     Metadata
}

// Subject is the external observer-multiplexing publish/subscribe sink
// spec.md §1 stubs as a collaborator; internal/subject ships the default
// in-process implementation.
type Subject interface {
	Publish(Event)
	Subscribe(observer func(Event)) (cancel func())
	Close()
}
