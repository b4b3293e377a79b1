package scrapeengine

import "fmt"

// DefaultScrapeIntervalMsec is the minimum period between the starts of
// consecutive scrapes of the same URL, used when Config.ScrapeIntervalMsec
// is zero (spec.md §6).
const DefaultScrapeIntervalMsec = 5000

// Config is the scrape engine's external configuration (spec.md §6).
type Config struct {
	Urls               []string `yaml:"urls"`
	ScrapeIntervalMsec int64    `yaml:"scrape_interval_msec"`
}

// Validate checks Config for the minimum shape the engine requires and
// fills in ScrapeIntervalMsec's default. A Config failing validation
// prevents any scrape task from starting (spec.md §7 "Config error").
func (c *Config) Validate() error {
	if len(c.Urls) == 0 {
		return fmt.Errorf("scrapeengine: at least one url is required")
	}
	for i, u := range c.Urls {
		if u == "" {
			return fmt.Errorf("scrapeengine: urls[%d] is empty", i)
		}
	}
	if c.ScrapeIntervalMsec == 0 {
		c.ScrapeIntervalMsec = DefaultScrapeIntervalMsec
	}
	if c.ScrapeIntervalMsec < 0 {
		return fmt.Errorf("scrapeengine: scrape_interval_msec must be positive, got %d", c.ScrapeIntervalMsec)
	}
	return nil
}
