// Package scrapeengine drives one independent, timed scrape loop per
// configured URL: HTTP GET, content-type dispatch between delimited
// protobuf and Prometheus text format, delta computation, and event
// publication (spec.md §4.6, component C6).
package scrapeengine

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus-community/scrapeinput/internal/deltacache"
	"github.com/prometheus-community/scrapeinput/internal/exposition"
	"github.com/prometheus-community/scrapeinput/internal/healthreporter"
	"github.com/prometheus-community/scrapeinput/internal/httpclient"
	"github.com/prometheus-community/scrapeinput/internal/scrapeevent"
)

// Engine owns the per-URL scrape loops, the shared HTTP client, and the
// shared delta cache for the lifetime of the process (spec.md §5).
type Engine struct {
	cfg     Config
	client  *http.Client
	cache   *deltacache.Cache
	subject scrapeevent.Subject
	health  healthreporter.Reporter
	logger  *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// New validates cfg and builds an Engine. An invalid cfg is reported to
// health and returned as an error; the caller must not call Start on an
// Engine returned alongside a non-nil error — there is none (spec.md §7
// "Config error" makes the input inert, i.e. New simply fails).
func New(cfg Config, client *http.Client, subject scrapeevent.Subject, health healthreporter.Reporter, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		health.ReportConfigError(err)
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		client:  client,
		cache:   deltacache.New(),
		subject: subject,
		health:  health,
		logger:  logger,
	}, nil
}

// Start launches one independent periodic task per configured URL. ctx
// cancellation is the single shutdown signal every loop observes
// (spec.md §4.6 "Cancellation"). Start must be called at most once.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()

	for _, url := range e.cfg.Urls {
		e.wg.Add(1)
		go e.runLoop(ctx, url)
	}
}

// Stop signals cancellation, waits for every loop to exit, and closes the
// subject. The delta cache and the HTTP client are left as they are: the
// cache is not cleared and the client's connections are not closed.
// Idempotent (spec.md §4.6 "Shutdown").
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	cancel := e.cancel
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
	e.subject.Close()
}

func (e *Engine) runLoop(ctx context.Context, url string) {
	defer e.wg.Done()
	interval := time.Duration(e.cfg.ScrapeIntervalMsec) * time.Millisecond

	for {
		nextStart := time.Now().Add(interval)

		e.scrapeOnce(ctx, url)

		if ctx.Err() != nil {
			return
		}

		wait := time.Until(nextStart)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
	}
}

// scrapeOnce performs exactly one GET -> decode -> delta -> publish cycle
// for url (spec.md §4.6 "Single scrape"). Any failure abandons the whole
// cycle without publishing a partial payload.
func (e *Engine) scrapeOnce(ctx context.Context, url string) {
	requestTime := time.Now()

	logger := e.logger.With("url", url)

	resp, err := httpclient.Get(ctx, e.client, url)
	if err != nil {
		e.health.ReportTransportError(url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.health.ReportTransportError(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return
	}

	var families []*exposition.MetricFamily
	if exposition.IsProtoDelimited(resp.Header.Get("Content-Type")) {
		families, err = exposition.DecodeDelimitedProtobuf(resp.Body)
	} else {
		var p exposition.Parser
		families, err = p.TextToMetricFamilies(resp.Body)
	}
	if err != nil {
		e.health.ReportParseError(url, err)
		return
	}

	published := 0
	for _, fam := range families {
		for _, ev := range scrapeevent.BuildEvents(url, requestTime, fam, e.cache) {
			e.subject.Publish(ev)
			published++
		}
	}
	logger.Debug("scrape cycle complete", "families", len(families), "events", published)
}
