package webscraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher returns canned results per URL and records every call.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string][]string
	calls   []string
	onFetch func()
}

func (f *fakeFetcher) FetchEmails(_ context.Context, url string) EmailSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.onFetch != nil {
		f.onFetch()
	}
	return NewEmailSet(f.results[url]...)
}

// recordingPacer counts pauses and records after which call each happened.
type recordingPacer struct {
	fetcher *fakeFetcher
	after   []int
}

func (p *recordingPacer) Pause(ctx context.Context) error {
	p.after = append(p.after, len(p.fetcher.calls))
	return ctx.Err()
}

func newTestHunter(results map[string][]string, options ScraperOptions) (*EmailHunter, *fakeFetcher, *recordingPacer) {
	fetcher := &fakeFetcher{results: results}
	pacer := &recordingPacer{fetcher: fetcher}
	return NewEmailHunter(fetcher, pacer, options, nil), fetcher, pacer
}

var firmTargets = []string{
	"http://firm.org",
	"http://firm.org/contact",
	"http://firm.org/about",
	"http://firm.org/team",
	"http://firm.org/support",
	"http://firm.org/contact-us",
	"http://firm.org/about-us",
	"http://firm.org/our-team",
	"http://firm.org/staff",
}

func TestHuntSiteVisitsEverySubpathWithPause(t *testing.T) {
	h, fetcher, pacer := newTestHunter(nil, DefaultOptions())

	emails := h.HuntSite(context.Background(), "firm.org")

	assert.Equal(t, 0, emails.Cardinality())
	assert.Equal(t, firmTargets, fetcher.calls)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, pacer.after)
}

func TestHuntSiteSkipTrailingDelay(t *testing.T) {
	options := DefaultOptions()
	options.SkipTrailingDelay = true
	h, fetcher, pacer := newTestHunter(nil, options)

	h.HuntSite(context.Background(), "firm.org")

	assert.Len(t, fetcher.calls, 9)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, pacer.after)
}

func TestHuntSiteSchemeIsOptional(t *testing.T) {
	h, _, _ := newTestHunter(nil, DefaultOptions())

	bare, err := h.Targets("example.com")
	require.NoError(t, err)
	prefixed, err := h.Targets("http://example.com")
	require.NoError(t, err)

	assert.Equal(t, prefixed, bare)
}

func TestHuntSiteKeepsHTTPS(t *testing.T) {
	h, _, _ := newTestHunter(nil, DefaultOptions())

	targets, err := h.Targets("https://firm.org/some/page?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https://firm.org", targets[0])
	assert.Equal(t, "https://firm.org/contact", targets[1])
}

func TestHuntSiteUnusableIdentifiers(t *testing.T) {
	for _, website := range []string{"", "   ", "\t\n", "http://"} {
		h, fetcher, pacer := newTestHunter(nil, DefaultOptions())

		emails := h.HuntSite(context.Background(), website)

		assert.Equal(t, 0, emails.Cardinality(), "website %q", website)
		assert.Empty(t, fetcher.calls, "website %q", website)
		assert.Empty(t, pacer.after, "website %q", website)
	}
}

func TestTargetsHomepageExactlyOnce(t *testing.T) {
	tests := []struct {
		name     string
		subpaths []string
	}{
		{"default", DefaultSubpaths},
		{"no homepage listed", []string{"contact", "about"}},
		{"homepage listed twice", []string{"", "contact", ""}},
		{"homepage last", []string{"contact", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := DefaultOptions()
			options.Subpaths = tt.subpaths
			h, _, _ := newTestHunter(nil, options)

			targets, err := h.Targets("firm.org")
			require.NoError(t, err)

			count := 0
			for _, target := range targets {
				if target == "http://firm.org" {
					count++
				}
			}
			assert.Equal(t, 1, count, "targets %v", targets)
		})
	}
}

func TestHuntSiteUnion(t *testing.T) {
	results := map[string][]string{
		"http://firm.org":          {"info@firm.org"},
		"http://firm.org/contact":  {"info@firm.org", "jane@firm.org"},
		"http://firm.org/team":     {"bob@firm.org"},
		"http://firm.org/our-team": {"Bob@firm.org"},
	}

	forward := DefaultOptions()
	reversed := DefaultOptions()
	reversed.Subpaths = slices.Clone(DefaultSubpaths)
	slices.Reverse(reversed.Subpaths)

	h1, _, _ := newTestHunter(results, forward)
	h2, _, _ := newTestHunter(results, reversed)

	got1 := h1.HuntSite(context.Background(), "firm.org")
	got2 := h2.HuntSite(context.Background(), "firm.org")

	want := []string{"Bob@firm.org", "bob@firm.org", "info@firm.org", "jane@firm.org"}
	assert.Equal(t, want, SortedEmails(got1))
	assert.True(t, got1.Equal(got2))
}

func TestHuntSiteStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{results: map[string][]string{"http://firm.org": {"a@firm.org"}}}
	fetcher.onFetch = cancel
	h := NewEmailHunter(fetcher, FixedDelay{Delay: DefaultPolitenessDelay}, DefaultOptions(), nil)

	emails := h.HuntSite(ctx, "firm.org")

	assert.Equal(t, []string{"a@firm.org"}, SortedEmails(emails))
	assert.Len(t, fetcher.calls, 1)
}

func TestStaticEmailHunterAgainstServer(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><footer>hello@firm.test</footer></body></html>`)
		case "/contact":
			fmt.Fprint(w, `<p>Sales: sales@firm.test</p><p>Support: hello@firm.test</p>`)
		case "/team":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `<p>error@firm.test</p>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	options := DefaultOptions()
	options.PolitenessDelay = 0
	h := NewStaticEmailHunter(options, nil)

	emails := h.HuntSite(context.Background(), server.URL+"/ignored/path")

	assert.Equal(t, []string{"hello@firm.test", "sales@firm.test"}, SortedEmails(emails))
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, paths, len(DefaultSubpaths))
}

func TestFixedDelayPause(t *testing.T) {
	assert.NoError(t, FixedDelay{}.Pause(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay{Delay: DefaultPolitenessDelay}.Pause(ctx), context.Canceled)
}
