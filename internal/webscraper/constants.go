package webscraper

import "time"

const (
	DefaultUserAgent       = "Mozilla/5.0 (compatible; EmailScraperBot/1.0)"
	DefaultTimeout         = 10 * time.Second       // per request
	DefaultPolitenessDelay = 500 * time.Millisecond // pause after every request
)

// emailPattern matches candidate addresses. Anything it matches is accepted.
const emailPattern = `[a-zA-Z0-9_.+\-]+@[a-zA-Z0-9\-]+\.[a-zA-Z0-9.\-]+`

// DefaultSubpaths are tried on every site, in order. "" is the homepage.
var DefaultSubpaths = []string{
	"",
	"contact",
	"about",
	"team",
	"support",
	"contact-us",
	"about-us",
	"our-team",
	"staff",
}
