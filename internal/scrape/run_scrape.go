package scrape

import (
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jobscrape/internal/domain"
	"jobscrape/internal/export"
)

// Saver persists a whole artifact, the spreadsheet workbook here.
type Saver interface {
	Save() error
}

// Export is the final step of a run: save the workbook and, when postings
// were collected, write them all to csvPath. The two files are independent,
// so both writes run even if the other fails; every error is returned.
func Export(wb Saver, csvPath string, postings []domain.JobPosting, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	var g errgroup.Group
	var wbErr, csvErr error

	g.Go(func() error {
		if wbErr = wb.Save(); wbErr != nil {
			log.Error("[export] workbook save failed", "err", wbErr)
			return wbErr
		}
		log.Info("[export] workbook saved")
		return nil
	})

	g.Go(func() error {
		if len(postings) == 0 {
			log.Warn("[export] no job data scraped; csv skipped")
			return nil
		}
		if csvErr = export.WriteCSV(csvPath, postings); csvErr != nil {
			log.Error("[export] csv write failed", "path", csvPath, "err", csvErr)
			return csvErr
		}
		log.Info("[export] csv written", "path", csvPath, "rows", len(postings))
		return nil
	})

	if err := g.Wait(); err != nil {
		// Wait keeps only the first failure
		return errors.Join(wbErr, csvErr)
	}
	return nil
}
