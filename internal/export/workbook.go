package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"jobscrape/internal/domain"
)

// Workbook is the spreadsheet sink: one sheet, a fixed header row, one row
// per posting. Every Write re-saves the file so rows are on disk as soon as
// they are written.
type Workbook struct {
	f     *excelize.File
	path  string
	sheet string
	next  int
}

// NewWorkbook creates the workbook at path with the header row already
// written and saved.
func NewWorkbook(path, sheet string) (*Workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	w := &Workbook{f: f, path: path, sheet: sheet, next: 1}
	if err := w.appendRow(domain.Header()); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := w.Save(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workbook) Name() string { return "xlsx" }

func (w *Workbook) Write(_ context.Context, p domain.JobPosting) error {
	if err := w.appendRow(p.Record()); err != nil {
		return err
	}
	return w.Save()
}

// Rows is the number of data rows written, header excluded.
func (w *Workbook) Rows() int { return w.next - 2 }

func (w *Workbook) Path() string { return w.path }

func (w *Workbook) Save() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) appendRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &row); err != nil {
		return fmt.Errorf("xlsx row %d: %w", w.next, err)
	}
	w.next++
	return nil
}

// ReadRows returns every row of sheet in the workbook at path, header
// included.
func ReadRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(sheet)
}
