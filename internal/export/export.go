// Package export serializes collected check outcomes to delimited files.
// Exporters are called with the complete result set; writes are buffered,
// not streamed, because completeness matters more than latency here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/probelab/urlcheck/internal/checker"
)

// header names the three outcome fields in every export format.
var header = []string{"Status Code or Error", "URL", "Error"}

// WriteFile serializes outcomes to path, picking the format from the file
// extension: .xlsx gets a workbook, everything else gets CSV.
func WriteFile(path string, outcomes []checker.Outcome) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from the CLI flag
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		if err := WriteXLSX(f, outcomes); err != nil {
			return fmt.Errorf("write xlsx %s: %w", path, err)
		}
	} else {
		if err := WriteCSV(f, outcomes); err != nil {
			return fmt.Errorf("write csv %s: %w", path, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes the header row followed by one row per outcome.
func WriteCSV(w io.Writer, outcomes []checker.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range outcomes {
		if err := cw.Write([]string{o.StatusText(), o.URL, o.ErrorDetail}); err != nil {
			return fmt.Errorf("write row for %s: %w", o.URL, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the same three columns into a single-sheet workbook.
func WriteXLSX(w io.Writer, outcomes []checker.Outcome) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	setCell := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		return nil
	}

	for i, h := range header {
		if err := setCell(i+1, 1, h); err != nil {
			return err
		}
	}
	for i, o := range outcomes {
		row := i + 2
		if err := setCell(1, row, o.StatusText()); err != nil {
			return err
		}
		if err := setCell(2, row, o.URL); err != nil {
			return err
		}
		if err := setCell(3, row, o.ErrorDetail); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
