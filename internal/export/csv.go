package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"jobscrape/internal/domain"
)

// WriteCSV writes the header row and one record per posting to path,
// replacing any existing file.
func WriteCSV(path string, postings []domain.JobPosting) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(domain.Header()); err != nil {
		return fmt.Errorf("failed to write header to CSV: %w", err)
	}
	for _, p := range postings {
		if err := writer.Write(p.Record()); err != nil {
			return fmt.Errorf("failed to write record to CSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}
