// Package healthreporter is the health-signal collaborator spec.md §1 and
// §7 treat as external: configuration, transport and parse failures are
// reported here rather than propagated to event observers.
package healthreporter

import "log/slog"

// Reporter receives the three failure kinds spec.md §7 defines. None of
// them propagate as events; the scrape loop that triggered them simply
// abandons the current cycle and resumes at the next interval.
type Reporter interface {
	// ReportConfigError is called once at startup when the engine
	// configuration is invalid; the engine starts no scrape tasks.
	ReportConfigError(err error)
	// ReportTransportError is called when an HTTP GET fails or returns an
	// unexpected status for url.
	ReportTransportError(url string, err error)
	// ReportParseError is called when decoding the response body (text or
	// protobuf) for url fails.
	ReportParseError(url string, err error)
}

// SlogReporter logs every reported failure through a structured logger.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter returns a Reporter that logs through logger.
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	return &SlogReporter{logger: logger}
}

func (r *SlogReporter) ReportConfigError(err error) {
	r.logger.Error("invalid scrape engine configuration", "err", err)
}

func (r *SlogReporter) ReportTransportError(url string, err error) {
	r.logger.Warn("scrape transport error", "url", url, "err", err)
}

func (r *SlogReporter) ReportParseError(url string, err error) {
	r.logger.Warn("scrape parse error", "url", url, "err", err)
}

var _ Reporter = (*SlogReporter)(nil)
