package progress

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Reporter displays how far a batch has progressed.
type Reporter interface {
	Start(total int)
	Step(done int, website string)
	Stop()
}

// Spinner reports progress as a terminal spinner with an i/n counter.
type Spinner struct {
	spinner *spinner.Spinner
	total   int
}

// NewSpinner draws on f. Terminal detection also runs against f, so the
// spinner stays silent when f is redirected.
func NewSpinner(f *os.File) *Spinner {
	return &Spinner{
		spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriterFile(f)),
	}
}

func (s *Spinner) Start(total int) {
	s.total = total
	s.spinner.Prefix = "Scraping "
	s.spinner.Suffix = fmt.Sprintf(" 0/%d", total)
	s.spinner.Start()
}

// Step marks done records as finished and shows the website crawled next.
func (s *Spinner) Step(done int, website string) {
	s.spinner.Lock()
	s.spinner.Suffix = Suffix(done, s.total, website)
	s.spinner.Unlock()
}

func (s *Spinner) Stop() {
	s.spinner.Stop()
}

// Suffix renders " done/total website" with long URLs shortened.
func Suffix(done, total int, website string) string {
	if website == "" {
		return fmt.Sprintf(" %d/%d", done, total)
	}
	return fmt.Sprintf(" %d/%d %s", done, total, shorten(website))
}

func shorten(urlStr string) string {
	maxLen := 40
	if len(urlStr) <= maxLen {
		return urlStr
	}
	// Keep the domain, then truncate the path
	u, err := url.Parse(urlStr)
	if err == nil && u.Host != "" && len(u.Host) < maxLen-3 {
		path := u.Path
		if len(path) > maxLen-len(u.Host)-3 {
			path = "..." + path[len(path)-(maxLen-len(u.Host)-3):]
		}
		return u.Host + path
	}
	return "..." + urlStr[len(urlStr)-maxLen:]
}

// Noop discards progress.
type Noop struct{}

func (Noop) Start(int)        {}
func (Noop) Step(int, string) {}
func (Noop) Stop()            {}
