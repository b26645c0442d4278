package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

// excelMaxRows is the number of data rows written per sheet. With the
// header row added, each sheet stays under the format's hard limit of
// 1,048,576 rows.
const excelMaxRows = 1_048_000

func writeXLSX(tbl *coltable.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	names := tbl.Names()
	cols := tbl.Columns()
	total := tbl.Height()

	sheetIdx := 1
	firstSheet := true
	for start := 0; start < total || firstSheet; start += excelMaxRows {
		end := start + excelMaxRows
		if end > total {
			end = total
		}

		sheetName := fmt.Sprintf("Sheet%d", sheetIdx)
		if firstSheet {
			f.SetSheetName(f.GetSheetName(0), sheetName)
		} else if _, err := f.NewSheet(sheetName); err != nil {
			return colerr.WrapWriter(err, "failed to create sheet %q", sheetName)
		}

		for c, name := range names {
			cellRef, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(sheetName, cellRef, name); err != nil {
				return colerr.WrapWriter(err, "failed to write header for column %q", name)
			}
		}
		for r := start; r < end; r++ {
			excelRow := (r - start) + 2
			for c, col := range cols {
				cellRef, _ := excelize.CoordinatesToCellName(c+1, excelRow)
				if err := f.SetCellValue(sheetName, cellRef, cellValue(col, r)); err != nil {
					return colerr.WrapWriter(err, "failed to write row %d of sheet %q", r, sheetName)
				}
			}
		}

		sheetIdx++
		firstSheet = false
		if total == 0 {
			break
		}
	}

	if err := f.SaveAs(path); err != nil {
		return colerr.WrapWriter(err, "failed to save xlsx file")
	}
	return nil
}
