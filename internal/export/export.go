package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yingtu35/email-scraper/internal/records"
)

var ErrUnknownFormat = errors.New("unknown export format")

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type Exporter interface {
	// Export writes the table to the named file, replacing it if it exists
	Export(table *records.Table, filename string) error
}

// New returns the exporter for format. An empty format is inferred from filename.
func New(format, filename string) (Exporter, error) {
	if format == "" {
		format = FormatFromPath(filename)
	}
	switch strings.ToLower(format) {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatJSON:
		return NewJsonExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatFromPath picks json for .json files and csv for everything else.
func FormatFromPath(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatCSV
}
