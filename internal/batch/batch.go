// Package batch runs the site crawler over every record of a table and
// stores the results in a new column.
package batch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rodaine/table"

	"github.com/yingtu35/email-scraper/internal/export"
	"github.com/yingtu35/email-scraper/internal/progress"
	"github.com/yingtu35/email-scraper/internal/records"
	"github.com/yingtu35/email-scraper/internal/webscraper"
)

// OutputColumn receives the scraped addresses of each record.
const OutputColumn = "scraped_emails"

// Result is the outcome for one record.
type Result struct {
	Website string
	Emails  []string // sorted, distinct
}

type Runner struct {
	hunter   webscraper.SiteHunter
	progress progress.Reporter
	logger   *log.Logger
}

func NewRunner(hunter webscraper.SiteHunter, reporter progress.Reporter, logger *log.Logger) *Runner {
	if reporter == nil {
		reporter = progress.Noop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{hunter: hunter, progress: reporter, logger: logger}
}

// Run crawls the website in column for every row of t, one row at a time,
// and sets OutputColumn. A missing column fails before any request is made.
// Individual sites never fail the batch; only cancellation of ctx does, in
// which case t is left unchanged.
func (r *Runner) Run(ctx context.Context, t *records.Table, column string) ([]Result, error) {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]Result, 0, t.Len())
	values := make([]string, 0, t.Len())

	r.progress.Start(t.Len())
	defer r.progress.Stop()

	for i := range t.Rows {
		website, _ := t.Value(i, col)
		r.progress.Step(i, website)

		emails := r.hunter.HuntSite(ctx, website)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sorted := webscraper.SortedEmails(emails)
		r.logger.Debug("site scraped", "row", i+1, "website", website, "emails", len(sorted))

		results = append(results, Result{Website: website, Emails: sorted})
		values = append(values, webscraper.FormatEmails(emails))
	}
	r.progress.Step(t.Len(), "")

	if err := t.SetColumn(OutputColumn, values); err != nil {
		return nil, err
	}
	r.logger.Info("batch finished", "records", t.Len(), "elapsed", time.Since(start))
	return results, nil
}

// SummaryRows converts results into rows for export.WriteSummary.
func SummaryRows(results []Result) []export.SiteRow {
	rows := make([]export.SiteRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, export.SiteRow{
			Website: res.Website,
			Count:   len(res.Emails),
			Emails:  strings.Join(res.Emails, ", "),
		})
	}
	return rows
}

// PrintResults writes a table of the websites and the addresses found on each.
func PrintResults(w io.Writer, results []Result) {
	found := 0
	for _, res := range results {
		if len(res.Emails) > 0 {
			found++
		}
	}
	if found == 0 {
		fmt.Fprintln(w, "No e-mail addresses found")
		return
	}

	tbl := table.New("Website", "Counts", "Emails").WithWriter(w)
	for _, res := range results {
		for i, email := range res.Emails {
			if i == 0 {
				tbl.AddRow(res.Website, len(res.Emails), email)
			} else {
				tbl.AddRow("", "", email)
			}
		}
	}
	tbl.Print()
}
