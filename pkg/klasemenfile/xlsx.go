package klasemenfile

import (
	"fmt"
	"io"

	"crbklasemen/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Klasemen"

// WriteXLSX writes the entries as a single-sheet workbook with the same
// columns as the CSV export. Numbers are stored as numeric cells.
func WriteXLSX(w io.Writer, entries []models.Klasemen) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for col, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for i, k := range entries {
		values := []any{k.Top, k.UserID, k.Winloss, k.Turnover, k.Hadiah, k.Catatan, string(k.Keterangan)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := styleSheet(f, len(entries)); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

var columnWidths = []float64{8, 20, 14, 16, 24, 30, 14}

// styleSheet bolds the header, adds an autofilter, formats the winloss and
// turnover columns as #,##0 and sets the column widths.
func styleSheet(f *excelize.File, rows int) error {
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.AutoFilter(sheetName, "A1:"+last, nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}
	if rows > 0 {
		num, err := f.NewStyle(&excelize.Style{NumFmt: 3})
		if err != nil {
			return fmt.Errorf("number style: %w", err)
		}
		end, _ := excelize.CoordinatesToCellName(4, rows+1)
		if err := f.SetCellStyle(sheetName, "C2", end, num); err != nil {
			return fmt.Errorf("style numbers: %w", err)
		}
	}
	for col, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("column %s width: %w", name, err)
		}
	}
	return nil
}
