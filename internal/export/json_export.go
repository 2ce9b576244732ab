package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yingtu35/email-scraper/internal/records"
)

type JsonExporter struct{}

func NewJsonExporter() Exporter {
	return &JsonExporter{}
}

// Export writes the rows as a JSON array of objects keyed by column name,
// keys in header order.
func (e *JsonExporter) Export(table *records.Table, filename string) error {
	resultJson, err := json.MarshalIndent(table.Records(), "", "    ")
	if err != nil {
		return fmt.Errorf("error marshalling data: %w", err)
	}

	if err := os.WriteFile(filename, resultJson, 0o644); err != nil {
		return fmt.Errorf("error exporting data to JSON: %w", err)
	}
	return nil
}
