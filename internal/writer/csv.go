package writer

import (
	"encoding/csv"
	"os"

	"github.com/colmap/colmap/internal/colerr"
	"github.com/colmap/colmap/internal/coltable"
)

func writeCSV(tbl *coltable.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return colerr.WrapWriter(err, "failed to create CSV file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tbl.Names()); err != nil {
		return colerr.WrapWriter(err, "failed to write CSV header")
	}
	rows := rowStrings(tbl)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return colerr.WrapWriter(err, "failed to write CSV row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return colerr.WrapWriter(err, "failed to write CSV")
	}
	return nil
}

// rowStrings renders every row of tbl to its text representation, in
// column-declared order, for writers that work row-at-a-time.
func rowStrings(tbl *coltable.Table) [][]string {
	cols := tbl.Columns()
	height := tbl.Height()
	out := make([][]string, height)
	for r := 0; r < height; r++ {
		row := make([]string, len(cols))
		for c, col := range cols {
			row[c] = cellText(col, r)
		}
		out[r] = row
	}
	return out
}
