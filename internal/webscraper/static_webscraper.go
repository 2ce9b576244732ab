package webscraper

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves the addresses published on a single page.
type Fetcher interface {
	FetchEmails(ctx context.Context, url string) EmailSet
}

// PageFetcher fetches pages over plain HTTP without rendering JavaScript.
type PageFetcher struct {
	client    *http.Client // The HTTP client to use
	userAgent string       // The User-Agent header to send
	logger    *log.Logger
}

func NewPageFetcher(options ScraperOptions, logger *log.Logger) *PageFetcher {
	options = options.WithDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &PageFetcher{
		client:    &http.Client{Timeout: options.Timeout},
		userAgent: options.UserAgent,
		logger:    logger,
	}
}

// FetchEmails issues one GET for url and extracts the addresses from its visible text.
// Every failure, including a status other than 200, yields an empty set.
func (f *PageFetcher) FetchEmails(ctx context.Context, url string) EmailSet {
	f.logger.Debug("fetching page", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Debug("error building request", "url", url, "err", err)
		return NewEmailSet()
	}
	req.Header.Set("User-Agent", f.userAgent)

	res, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("error fetching page", "url", url, "err", err)
		return NewEmailSet()
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		f.logger.Debug("unexpected status", "url", url, "status", res.StatusCode)
		return NewEmailSet()
	}

	body, err := charset.NewReader(res.Body, res.Header.Get("Content-Type"))
	if err != nil {
		f.logger.Debug("error decoding body", "url", url, "err", err)
		return NewEmailSet()
	}

	text, err := pageText(body)
	if err != nil {
		f.logger.Debug("error parsing page", "url", url, "err", err)
		return NewEmailSet()
	}

	emails := ExtractEmails(text)
	f.logger.Debug("page scraped", "url", url, "emails", emails.Cardinality())
	return emails
}

// invisible elements whose text content is not rendered.
var invisible = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
}

// pageText concatenates the text nodes of the document, skipping comments
// and the content of script, style and template elements.
func pageText(body io.Reader) (string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for n := range doc.Descendants() {
		if n.Type != html.TextNode {
			continue
		}
		if insideInvisible(n) {
			continue
		}
		sb.WriteString(n.Data)
	}
	return sb.String(), nil
}

func insideInvisible(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && invisible[p.Data] {
			return true
		}
	}
	return false
}
