package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/yingtu35/email-scraper/internal/records"
)

type CSVExporter struct{}

func NewCSVExporter() Exporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(table *records.Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", filename, err)
	}
	defer file.Close()

	if err := table.Write(file); err != nil {
		return fmt.Errorf("error exporting data to CSV: %w", err)
	}
	return file.Close()
}

// SiteRow is one line of the per-website summary.
type SiteRow struct {
	Website string `csv:"Website"`
	Count   int    `csv:"Count"`
	Emails  string `csv:"Emails"`
}

// WriteSummary writes one row per crawled website to filename.
func WriteSummary(rows []SiteRow, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", filename, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error exporting summary to CSV: %w", err)
	}
	return file.Close()
}
