// Package config loads the scrape engine's YAML configuration file
// (spec.md §6), grounded on the flags+YAML+Validate split used by
// Prometheus component main packages for their own config layers.
package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v2"

	"github.com/prometheus-community/scrapeinput/internal/scrapeengine"
)

// File is the on-disk representation of the scrape engine configuration.
type File struct {
	Urls               []string `yaml:"urls"`
	ScrapeIntervalMsec int64    `yaml:"scrape_interval_msec"`
	LogLevel           string   `yaml:"log_level"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &f, nil
}

// EngineConfig converts the loaded file into a scrapeengine.Config.
func (f *File) EngineConfig() scrapeengine.Config {
	return scrapeengine.Config{
		Urls:               f.Urls,
		ScrapeIntervalMsec: f.ScrapeIntervalMsec,
	}
}
