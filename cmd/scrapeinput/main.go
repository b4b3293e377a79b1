// Command scrapeinput runs the Prometheus-exposition scraping input as a
// standalone process: it loads a YAML config, scrapes every configured
// URL on its own schedule, and prints every published event to stdout as
// one line of JSON (its own log messages go to stderr).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/config"

	appconfig "github.com/prometheus-community/scrapeinput/internal/config"
	"github.com/prometheus-community/scrapeinput/internal/healthreporter"
	"github.com/prometheus-community/scrapeinput/internal/httpclient"
	"github.com/prometheus-community/scrapeinput/internal/logging"
	"github.com/prometheus-community/scrapeinput/internal/scrapeengine"
	"github.com/prometheus-community/scrapeinput/internal/scrapeevent"
	"github.com/prometheus-community/scrapeinput/internal/subject"
)

var (
	configFile = kingpin.Flag(
		"config.file",
		"Path to the scrapeinput YAML configuration file.",
	).Default("scrapeinput.yml").String()

	logLevel = kingpin.Flag(
		"log.level",
		"Only log messages with the given severity or above. One of: [debug, info, warn, error]",
	).Default("info").String()
)

func main() {
	kingpin.Version(version())
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	cfgFile, err := appconfig.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := *logLevel
	if cfgFile.LogLevel != "" {
		level = cfgFile.LogLevel
	}
	logger := logging.New(level)

	client, err := httpclient.New(config.DefaultHTTPClientConfig)
	if err != nil {
		logger.Error("failed to build http client", "err", err)
		os.Exit(1)
	}

	subj := subject.New()
	subj.Subscribe(func(ev scrapeevent.Event) {
		encoded, err := json.Marshal(ev)
		if err != nil {
			logger.Error("failed to encode event", "err", err)
			return
		}
		fmt.Println(string(encoded))
	})

	health := healthreporter.NewSlogReporter(logger)
	engine, err := scrapeengine.New(cfgFile.EngineConfig(), client, subj, health, logger)
	if err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine.Start(ctx)
	logger.Info("scrapeinput started", "urls", cfgFile.Urls)

	<-ctx.Done()
	logger.Info("shutting down")
	engine.Stop()
}

// version is overridden at link time in real release builds; the
// development default keeps kingpin's --version flag functional.
var buildVersion = "dev"

func version() string { return buildVersion }
