package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// defaultWorksheet is the worksheet excelize creates in a new workbook.
const defaultWorksheet = "Sheet1"

// WriteXLSX writes rows into a single-worksheet workbook named title and
// streams it to w. Every cell is written as a string so values round-trip
// exactly as they appear in the CSV output.
func WriteXLSX(w io.Writer, title string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if title != "" && title != defaultWorksheet {
		if err := f.SetSheetName(defaultWorksheet, title); err != nil {
			return fmt.Errorf("sheet: naming worksheet %q: %w", title, err)
		}
	} else {
		title = defaultWorksheet
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("sheet: row %d: %w", i+1, err)
		}

		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}

		if err := f.SetSheetRow(title, cell, &values); err != nil {
			return fmt.Errorf("sheet: writing row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("sheet: writing workbook: %w", err)
	}

	return nil
}
