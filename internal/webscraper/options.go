package webscraper

import (
	"slices"
	"time"
)

// ScraperOptions configures fetching and crawling. Empty fields fall back to
// the defaults in WithDefaults.
type ScraperOptions struct {
	Subpaths          []string      // candidate subpaths, tried in order
	UserAgent         string        // User-Agent header sent with every request
	Timeout           time.Duration // bound on a single request
	PolitenessDelay   time.Duration // pause after each request
	SkipTrailingDelay bool          // do not pause after the last subpath of a site
}

func DefaultOptions() ScraperOptions {
	return ScraperOptions{
		Subpaths:        slices.Clone(DefaultSubpaths),
		UserAgent:       DefaultUserAgent,
		Timeout:         DefaultTimeout,
		PolitenessDelay: DefaultPolitenessDelay,
	}
}

// WithDefaults returns a copy with zero-value fields replaced by defaults.
// A zero PolitenessDelay is kept as is; use a negative value to mean the default.
func (o ScraperOptions) WithDefaults() ScraperOptions {
	if len(o.Subpaths) == 0 {
		o.Subpaths = slices.Clone(DefaultSubpaths)
	} else {
		o.Subpaths = slices.Clone(o.Subpaths)
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.PolitenessDelay < 0 {
		o.PolitenessDelay = DefaultPolitenessDelay
	}
	return o
}
