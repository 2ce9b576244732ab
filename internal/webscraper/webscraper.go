package webscraper

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/yingtu35/email-scraper/pkg/domain"
)

// SiteHunter collects the addresses published across one website.
type SiteHunter interface {
	HuntSite(ctx context.Context, website string) EmailSet
}

// EmailHunter visits the candidate subpaths of a site one at a time and
// merges what the fetcher finds on each.
type EmailHunter struct {
	fetcher Fetcher        // The fetcher used for every subpath
	pacer   Pacer          // The politeness policy applied after each request
	options ScraperOptions // The scraper options to use
	logger  *log.Logger
}

func NewEmailHunter(fetcher Fetcher, pacer Pacer, options ScraperOptions, logger *log.Logger) *EmailHunter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EmailHunter{
		fetcher: fetcher,
		pacer:   pacer,
		options: options.WithDefaults(),
		logger:  logger,
	}
}

// NewStaticEmailHunter wires an EmailHunter to a PageFetcher and a FixedDelay
// built from options.
func NewStaticEmailHunter(options ScraperOptions, logger *log.Logger) *EmailHunter {
	options = options.WithDefaults()
	return NewEmailHunter(
		NewPageFetcher(options, logger),
		FixedDelay{Delay: options.PolitenessDelay},
		options,
		logger,
	)
}

// Targets lists the URLs a crawl of website visits, in order. The homepage
// is always present exactly once, and no URL is visited twice.
func (h *EmailHunter) Targets(website string) ([]string, error) {
	base, err := domain.BaseOrigin(website)
	if err != nil {
		return nil, err
	}

	var targets []string
	seen := make(map[string]bool)
	add := func(target string) {
		if !seen[target] {
			seen[target] = true
			targets = append(targets, target)
		}
	}

	for _, subpath := range h.options.Subpaths {
		if subpath == "" {
			add(base)
			continue
		}
		target, err := domain.Resolve(base, subpath)
		if err != nil {
			h.logger.Debug("skipping subpath", "website", website, "subpath", subpath, "err", err)
			continue
		}
		add(target)
	}
	if !seen[base] {
		targets = append([]string{base}, targets...)
	}
	return targets, nil
}

// HuntSite fetches every target of website and returns the union of the
// addresses found. Unusable identifiers return an empty set without any
// request. Cancelling ctx stops the crawl and returns what was found so far.
func (h *EmailHunter) HuntSite(ctx context.Context, website string) EmailSet {
	found := NewEmailSet()

	targets, err := h.Targets(website)
	if err != nil {
		h.logger.Debug("skipping website", "website", website, "err", err)
		return found
	}

	for i, target := range targets {
		if ctx.Err() != nil {
			return found
		}
		if emails := h.fetcher.FetchEmails(ctx, target); emails != nil {
			found.Append(emails.ToSlice()...)
		}

		if h.options.SkipTrailingDelay && i == len(targets)-1 {
			break
		}
		if err := h.pacer.Pause(ctx); err != nil {
			return found
		}
	}
	return found
}
